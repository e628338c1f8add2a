package repository

import (
	"context"
	"errors"

	"kimoncrm-survey/internal/domain"
)

// ErrNotFound 快照不存在
var ErrNotFound = errors.New("survey not found")

// SurveysRepository 勘测快照Repository接口。
// 快照整体读写（JSONB 全量），与前端防抖保存的 last-write-wins 语义对应。
type SurveysRepository interface {
	GetSurvey(ctx context.Context, surveyID string) (*domain.SurveySnapshot, error)
	SaveSurvey(ctx context.Context, surveyID string, snapshot *domain.SurveySnapshot) error
	DeleteSurvey(ctx context.Context, surveyID string) error
	ListSurveyIDs(ctx context.Context) ([]string, error)
}
