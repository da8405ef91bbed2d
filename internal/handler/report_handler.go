package handler

import (
	"fmt"
	"net/http"

	"github.com/demandify-media/caller-voice-service/internal/repository"
	"github.com/demandify-media/caller-voice-service/internal/storage"
	"github.com/demandify-media/caller-voice-service/pkg/logger"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// ReportHandler serves downloadable PDF reports for finished calls.
type ReportHandler struct {
	repo repository.CallRecordRepository
}

// NewReportHandler creates a new report handler
func NewReportHandler(repo repository.CallRecordRepository) *ReportHandler {
	return &ReportHandler{repo: repo}
}

// SetupReportRoutes registers the report routes on the /api subrouter
func (h *ReportHandler) SetupReportRoutes(apiRouter *mux.Router) {
	apiRouter.HandleFunc("/calls/{id}/report.pdf", h.HandleCallReport).Methods("GET")
}

// HandleCallReport renders one call record and its transcript as a PDF
func (h *ReportHandler) HandleCallReport(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	record, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		logger.Base().Error("failed to load call record for report", zap.String("call_id", id), zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "failed to load call")
		return
	}
	if record == nil {
		writeJSONError(w, http.StatusNotFound, "call not found")
		return
	}

	turns, err := h.repo.GetTurns(r.Context(), id)
	if err != nil {
		logger.Base().Error("failed to load call turns for report", zap.String("call_id", id), zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "failed to load call turns")
		return
	}

	body, err := storage.RenderCallReport(record, turns)
	if err != nil {
		logger.Base().Error("failed to render call report", zap.String("call_id", id), zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "failed to render report")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="call-%s.pdf"`, id))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
