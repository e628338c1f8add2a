package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"kimoncrm-survey/internal/domain"
)

// PostgresSurveysRepository 勘测快照Repository实现（surveys 表，快照存 JSONB）
type PostgresSurveysRepository struct {
	db *sql.DB
}

// NewPostgresSurveysRepository 创建勘测快照Repository
func NewPostgresSurveysRepository(db *sql.DB) *PostgresSurveysRepository {
	return &PostgresSurveysRepository{db: db}
}

// 确保实现了接口
var _ SurveysRepository = (*PostgresSurveysRepository)(nil)

// GetSurvey 读取整份快照
func (r *PostgresSurveysRepository) GetSurvey(ctx context.Context, surveyID string) (*domain.SurveySnapshot, error) {
	if surveyID == "" {
		return nil, fmt.Errorf("survey_id is required")
	}

	query := `
		SELECT snapshot
		FROM surveys
		WHERE survey_id = $1
	`

	var raw json.RawMessage
	err := r.db.QueryRowContext(ctx, query, surveyID).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get survey: %w", err)
	}

	var snapshot domain.SurveySnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode survey snapshot: %w", err)
	}
	return &snapshot, nil
}

// SaveSurvey 全量覆盖写入（last write wins，无版本校验——与前端防抖保存
// 的既有语义一致，见 DESIGN.md）
func (r *PostgresSurveysRepository) SaveSurvey(ctx context.Context, surveyID string, snapshot *domain.SurveySnapshot) error {
	if surveyID == "" {
		return fmt.Errorf("survey_id is required")
	}

	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode survey snapshot: %w", err)
	}

	query := `
		INSERT INTO surveys (survey_id, snapshot, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (survey_id)
		DO UPDATE SET snapshot = EXCLUDED.snapshot,
		              updated_at = NOW()
	`

	if _, err := r.db.ExecContext(ctx, query, surveyID, raw); err != nil {
		return fmt.Errorf("failed to save survey: %w", err)
	}
	return nil
}

// DeleteSurvey 删除快照（快照整体是一个所有权单元，随勘测一起删）
func (r *PostgresSurveysRepository) DeleteSurvey(ctx context.Context, surveyID string) error {
	if surveyID == "" {
		return fmt.Errorf("survey_id is required")
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM surveys WHERE survey_id = $1`, surveyID); err != nil {
		return fmt.Errorf("failed to delete survey: %w", err)
	}
	return nil
}

// ListSurveyIDs 列出全部勘测ID（按更新时间倒序）
func (r *PostgresSurveysRepository) ListSurveyIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT survey_id FROM surveys ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list surveys: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan survey_id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate surveys: %w", err)
	}
	return ids, nil
}
