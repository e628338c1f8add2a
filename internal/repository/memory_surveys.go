package repository

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"kimoncrm-survey/internal/domain"
)

// MemorySurveysRepo supports local dev / tests when DB is disabled.
// 快照深拷贝存取（JSON 往返），避免调用方和仓库共享可变树。
type MemorySurveysRepo struct {
	mu      sync.RWMutex
	surveys map[string][]byte // surveyID -> snapshot JSON
}

func NewMemorySurveysRepo() *MemorySurveysRepo {
	return &MemorySurveysRepo{
		surveys: map[string][]byte{},
	}
}

var _ SurveysRepository = (*MemorySurveysRepo)(nil)

func (r *MemorySurveysRepo) GetSurvey(_ context.Context, surveyID string) (*domain.SurveySnapshot, error) {
	r.mu.RLock()
	raw, ok := r.surveys[surveyID]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	var snapshot domain.SurveySnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (r *MemorySurveysRepo) SaveSurvey(_ context.Context, surveyID string, snapshot *domain.SurveySnapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.surveys[surveyID] = raw
	r.mu.Unlock()
	return nil
}

func (r *MemorySurveysRepo) DeleteSurvey(_ context.Context, surveyID string) error {
	r.mu.Lock()
	delete(r.surveys, surveyID)
	r.mu.Unlock()
	return nil
}

func (r *MemorySurveysRepo) ListSurveyIDs(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.surveys))
	for id := range r.surveys {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
