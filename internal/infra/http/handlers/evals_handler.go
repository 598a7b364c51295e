package handlers

import (
	"context"
	"net/http"

	"leadflow/internal/usecase"
)

type RunEvalsExecutor interface {
	Execute(ctx context.Context) ([]usecase.EvalRow, error)
}

type EvalsHandler struct {
	RunUC RunEvalsExecutor
}

func NewEvalsHandler(runUC RunEvalsExecutor) *EvalsHandler {
	return &EvalsHandler{RunUC: runUC}
}

func (h *EvalsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	rows, err := h.RunUC.Execute(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rows)
}
