package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"leadflow/internal/infra/http/middleware"
	"leadflow/internal/usecase"
)

type DraftOutreachExecutor interface {
	Execute(ctx context.Context, input usecase.DraftOutreachInput) (*usecase.DraftOutreachOutput, error)
}

type SendOutreachExecutor interface {
	Execute(ctx context.Context, leadID, messageID string) error
}

type OutreachHandler struct {
	DraftUC DraftOutreachExecutor
	SendUC  SendOutreachExecutor
}

func NewOutreachHandler(draftUC DraftOutreachExecutor, sendUC SendOutreachExecutor) *OutreachHandler {
	return &OutreachHandler{DraftUC: draftUC, SendUC: sendUC}
}

func (h *OutreachHandler) HandleDraft(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "leadID")

	var input usecase.DraftOutreachInput
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON: " + err.Error()})
			return
		}
	}
	input.LeadID = leadID

	output, err := h.DraftUC.Execute(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordOutreachDraft()
	writeJSON(w, http.StatusOK, output)
}

func (h *OutreachHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "leadID")
	messageID := chi.URLParam(r, "messageID")

	if err := h.SendUC.Execute(r.Context(), leadID, messageID); err != nil {
		var domainErr *usecase.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == usecase.CodeMailFailed {
			middleware.RecordIntegrationError("smtp")
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}
