package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"leadflow/internal/infra/http/middleware"
	"leadflow/internal/scoring"
	"leadflow/internal/usecase"
)

type QualifyLeadExecutor interface {
	Execute(ctx context.Context, input usecase.QualifyLeadInput) (*usecase.QualifyLeadOutput, error)
}

type ScoreHandler struct {
	QualifyUC QualifyLeadExecutor
}

func NewScoreHandler(qualifyUC QualifyLeadExecutor) *ScoreHandler {
	return &ScoreHandler{QualifyUC: qualifyUC}
}

// ScoreRequest carries optional weight overrides; an absent field keeps its
// default, so pointers distinguish "missing" from an explicit 0.
type ScoreRequest struct {
	IndustryFit   *float64 `json:"industry_fit"`
	SizeFit       *float64 `json:"size_fit"`
	IntentSignals *float64 `json:"intent_signals"`
	DataQuality   *float64 `json:"data_quality"`
}

func (h *ScoreHandler) Handle(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "leadID")

	var req ScoreRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON: " + err.Error()})
			return
		}
	}

	weights := scoring.DefaultWeights()
	if req.IndustryFit != nil {
		weights.IndustryFit = *req.IndustryFit
	}
	if req.SizeFit != nil {
		weights.SizeFit = *req.SizeFit
	}
	if req.IntentSignals != nil {
		weights.IntentSignals = *req.IntentSignals
	}
	if req.DataQuality != nil {
		weights.DataQuality = *req.DataQuality
	}

	output, err := h.QualifyUC.Execute(r.Context(), usecase.QualifyLeadInput{
		LeadID:  leadID,
		Weights: weights,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordLeadScored(output.Stage)
	writeJSON(w, http.StatusOK, output)
}
