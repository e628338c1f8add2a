package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"kimoncrm-survey/internal/domain"
	"kimoncrm-survey/internal/repository"
	"kimoncrm-survey/internal/service"
)

// SurveyHandler 勘测快照与文档生成 Handler（薄路由层，核心逻辑在 service）
type SurveyHandler struct {
	surveys service.SurveyService
	logger  *zap.Logger
}

// NewSurveyHandler 创建 SurveyHandler
func NewSurveyHandler(surveys service.SurveyService, logger *zap.Logger) *SurveyHandler {
	return &SurveyHandler{
		surveys: surveys,
		logger:  logger,
	}
}

// GetSurvey GET /proposal/api/v1/surveys/{id}
func (h *SurveyHandler) GetSurvey(w http.ResponseWriter, r *http.Request, surveyID string) {
	resp, err := h.surveys.GetSurvey(r.Context(), service.GetSurveyRequest{SurveyID: surveyID})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, Fail("survey not found"))
			return
		}
		h.logger.Error("GetSurvey failed", zap.String("survey_id", surveyID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to load survey"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp.Snapshot))
}

// SaveSurvey PUT /proposal/api/v1/surveys/{id}
// 全量快照，进防抖窗口（last write wins）
func (h *SurveyHandler) SaveSurvey(w http.ResponseWriter, r *http.Request, surveyID string) {
	var snapshot domain.SurveySnapshot
	if err := readBodyJSON(r, 16<<20, &snapshot); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid snapshot payload"))
		return
	}

	resp, err := h.surveys.SaveSurvey(r.Context(), service.SaveSurveyRequest{
		SurveyID: surveyID,
		Snapshot: &snapshot,
	})
	if err != nil {
		h.logger.Error("SaveSurvey failed", zap.String("survey_id", surveyID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to save survey"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

// GenerateDocument POST /proposal/api/v1/surveys/{id}/documents/{type}
// ?format=xlsx 时返回工作簿字节流，否则返回 JSON 台账
func (h *SurveyHandler) GenerateDocument(w http.ResponseWriter, r *http.Request, surveyID, docType string) {
	wantXlsx := r.URL.Query().Get("format") == "xlsx"

	resp, err := h.surveys.GenerateDocument(r.Context(), service.GenerateDocumentRequest{
		SurveyID:        surveyID,
		Type:            service.DocumentType(docType),
		IncludeWorkbook: wantXlsx,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, Fail("survey not found"))
			return
		}
		h.logger.Error("GenerateDocument failed",
			zap.String("survey_id", surveyID),
			zap.String("type", docType),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, Fail("failed to generate document"))
		return
	}

	if wantXlsx {
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-%s.xlsx"`, surveyID, docType))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(resp.Workbook)
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp.Result))
}
