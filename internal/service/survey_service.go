package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"kimoncrm-survey/internal/aggregator"
	"kimoncrm-survey/internal/catalog"
	"kimoncrm-survey/internal/export"
	"kimoncrm-survey/internal/repository"
	"kimoncrm-survey/internal/store"

	"kimoncrm-survey/internal/domain"
)

// DocumentType 可生成的文档种类
type DocumentType string

const (
	DocumentBOM      DocumentType = "bom"      // 完整物料清单（全部节点）
	DocumentRFP      DocumentType = "rfp"      // 询价书（仅方案层）
	DocumentProposal DocumentType = "proposal" // 完整报价方案（仅方案层，含毛利）
)

// SurveyService 勘测快照与文档生成服务接口
type SurveyService interface {
	GetSurvey(ctx context.Context, req GetSurveyRequest) (*GetSurveyResponse, error)
	SaveSurvey(ctx context.Context, req SaveSurveyRequest) (*SaveSurveyResponse, error)
	GenerateDocument(ctx context.Context, req GenerateDocumentRequest) (*GenerateDocumentResponse, error)

	// Flush 立即落盘全部挂起的防抖写（关停路径）
	Flush(ctx context.Context) error
}

type GetSurveyRequest struct {
	SurveyID string // 必填
}

type GetSurveyResponse struct {
	Snapshot *domain.SurveySnapshot `json:"snapshot"`
}

type SaveSurveyRequest struct {
	SurveyID string                 // 必填
	Snapshot *domain.SurveySnapshot // 必填
}

type SaveSurveyResponse struct {
	Accepted bool `json:"accepted"`
}

type GenerateDocumentRequest struct {
	SurveyID        string       // 必填
	Type            DocumentType // 必填
	IncludeWorkbook bool         // 是否附 xlsx 字节
}

type GenerateDocumentResponse struct {
	Result   aggregator.Result `json:"result"`
	Workbook []byte            `json:"-"`
}

// surveyService 实现
type surveyService struct {
	repo     repository.SurveysRepository
	cache    *store.SnapshotCache
	catalogs catalog.Provider
	writer   *debouncedWriter
	logger   *zap.Logger
}

// NewSurveyService 创建 SurveyService 实例。
// cache 可为 nil（无 Redis 的本地联测）；debounceWindow ≤0 时用 500ms。
func NewSurveyService(
	repo repository.SurveysRepository,
	cache *store.SnapshotCache,
	catalogs catalog.Provider,
	debounceWindow time.Duration,
	logger *zap.Logger,
) SurveyService {
	if debounceWindow <= 0 {
		debounceWindow = 500 * time.Millisecond
	}
	return &surveyService{
		repo:     repo,
		cache:    cache,
		catalogs: catalogs,
		writer:   newDebouncedWriter(repo, debounceWindow, logger),
		logger:   logger,
	}
}

// GetSurvey 读取快照：挂起的防抖写 → 缓存 → 权威存储
func (s *surveyService) GetSurvey(ctx context.Context, req GetSurveyRequest) (*GetSurveyResponse, error) {
	if req.SurveyID == "" {
		return nil, fmt.Errorf("survey_id is required")
	}

	snapshot, err := s.loadSnapshot(ctx, req.SurveyID)
	if err != nil {
		return nil, err
	}
	return &GetSurveyResponse{Snapshot: snapshot}, nil
}

// SaveSurvey 接收全量快照，进防抖窗口延迟落库；缓存立即更新，
// 保证同一编辑方的后续读取读到自己的写。
func (s *surveyService) SaveSurvey(ctx context.Context, req SaveSurveyRequest) (*SaveSurveyResponse, error) {
	if req.SurveyID == "" {
		return nil, fmt.Errorf("survey_id is required")
	}
	if req.Snapshot == nil {
		return nil, fmt.Errorf("snapshot is required")
	}

	s.writer.Enqueue(req.SurveyID, req.Snapshot)
	if s.cache != nil {
		if err := s.cache.Put(ctx, req.SurveyID, req.Snapshot); err != nil {
			s.logger.Warn("Failed to update snapshot cache",
				zap.String("survey_id", req.SurveyID),
				zap.Error(err),
			)
		}
	}
	return &SaveSurveyResponse{Accepted: true}, nil
}

// GenerateDocument 快照 + 目录快照 → 聚合 → 台账（可附 xlsx）。
// 聚合本身是纯函数且同步完成；只有取快照/取目录是外部调用。
func (s *surveyService) GenerateDocument(ctx context.Context, req GenerateDocumentRequest) (*GenerateDocumentResponse, error) {
	if req.SurveyID == "" {
		return nil, fmt.Errorf("survey_id is required")
	}

	var pred aggregator.Predicate
	var title string
	switch req.Type {
	case DocumentBOM:
		pred, title = aggregator.AllElements, "Bill of Materials"
	case DocumentRFP:
		pred, title = aggregator.ProposalOnly, "RFP"
	case DocumentProposal:
		pred, title = aggregator.ProposalOnly, "Proposal"
	default:
		return nil, fmt.Errorf("unknown document type: %q", req.Type)
	}

	snapshot, err := s.loadSnapshot(ctx, req.SurveyID)
	if err != nil {
		return nil, err
	}

	cat, err := s.catalogs.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}

	overrides := snapshot.Overrides()
	results := make([]aggregator.Result, 0, len(snapshot.Buildings))
	for _, building := range snapshot.Buildings {
		results = append(results, aggregator.Aggregate(building, pred, overrides, cat))
	}
	merged := aggregator.Merge(results...)

	s.logger.Info("Document generated",
		zap.String("survey_id", req.SurveyID),
		zap.String("type", string(req.Type)),
		zap.Int("line_items", len(merged.LineItems)),
		zap.Int("skipped", len(merged.Skipped)),
	)

	resp := &GenerateDocumentResponse{Result: merged}
	if req.IncludeWorkbook {
		workbook, err := export.GenerateLedgerWorkbook(title, merged)
		if err != nil {
			return nil, fmt.Errorf("failed to render workbook: %w", err)
		}
		resp.Workbook = workbook
	}
	return resp, nil
}

func (s *surveyService) Flush(ctx context.Context) error {
	return s.writer.FlushAll(ctx)
}

// loadSnapshot 防抖挂起 → 缓存 → 权威存储（回填缓存）
func (s *surveyService) loadSnapshot(ctx context.Context, surveyID string) (*domain.SurveySnapshot, error) {
	if pending := s.writer.Peek(surveyID); pending != nil {
		return pending, nil
	}

	if s.cache != nil {
		if snapshot, err := s.cache.Get(ctx, surveyID); err == nil {
			return snapshot, nil
		} else if err != store.ErrMiss {
			s.logger.Warn("Snapshot cache read failed",
				zap.String("survey_id", surveyID),
				zap.Error(err),
			)
		}
	}

	snapshot, err := s.repo.GetSurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Put(ctx, surveyID, snapshot); err != nil {
			s.logger.Warn("Failed to backfill snapshot cache",
				zap.String("survey_id", surveyID),
				zap.Error(err),
			)
		}
	}
	return snapshot, nil
}
