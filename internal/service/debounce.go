package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"kimoncrm-survey/internal/domain"
	"kimoncrm-survey/internal/repository"
)

// debouncedWriter 把一个防抖窗口内对同一份勘测的多次保存合并为一次
// 全量快照写入，last write wins。没有版本校验：两个并发编辑方中后写的
// 会整体覆盖先写的——沿用既有行为，不在这里偷偷加锁（见 DESIGN.md）。
type debouncedWriter struct {
	repo   repository.SurveysRepository
	window time.Duration
	logger *zap.Logger

	mu      sync.Mutex
	pending map[string]*domain.SurveySnapshot
	timers  map[string]*time.Timer
}

func newDebouncedWriter(repo repository.SurveysRepository, window time.Duration, logger *zap.Logger) *debouncedWriter {
	return &debouncedWriter{
		repo:    repo,
		window:  window,
		logger:  logger,
		pending: map[string]*domain.SurveySnapshot{},
		timers:  map[string]*time.Timer{},
	}
}

// Enqueue 记录最新快照并（重新）起防抖计时，窗口内只保留最后一份
func (w *debouncedWriter) Enqueue(surveyID string, snapshot *domain.SurveySnapshot) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[surveyID] = snapshot
	if timer, ok := w.timers[surveyID]; ok {
		timer.Reset(w.window)
		return
	}
	w.timers[surveyID] = time.AfterFunc(w.window, func() {
		w.flush(surveyID)
	})
}

// Peek 返回尚未落库的最新快照（文档生成要读到窗口内的编辑）
func (w *debouncedWriter) Peek(surveyID string) *domain.SurveySnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending[surveyID]
}

func (w *debouncedWriter) flush(surveyID string) {
	w.mu.Lock()
	snapshot, ok := w.pending[surveyID]
	delete(w.pending, surveyID)
	delete(w.timers, surveyID)
	w.mu.Unlock()
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := w.repo.SaveSurvey(ctx, surveyID, snapshot); err != nil {
		w.logger.Error("Failed to flush survey snapshot",
			zap.String("survey_id", surveyID),
			zap.Error(err),
		)
	}
}

// FlushAll 立即写出全部挂起快照（服务关停路径）
func (w *debouncedWriter) FlushAll(ctx context.Context) error {
	w.mu.Lock()
	snapshots := make(map[string]*domain.SurveySnapshot, len(w.pending))
	for id, s := range w.pending {
		snapshots[id] = s
	}
	w.pending = map[string]*domain.SurveySnapshot{}
	for id, timer := range w.timers {
		timer.Stop()
		delete(w.timers, id)
	}
	w.mu.Unlock()

	var lastErr error
	for id, snapshot := range snapshots {
		if err := w.repo.SaveSurvey(ctx, id, snapshot); err != nil {
			w.logger.Error("Failed to flush survey snapshot on shutdown",
				zap.String("survey_id", id),
				zap.Error(err),
			)
			lastErr = err
		}
	}
	return lastErr
}
