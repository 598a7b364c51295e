package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"leadflow/internal/entity"
	"leadflow/internal/usecase"
)

type CreateLeadExecutor interface {
	Execute(ctx context.Context, input usecase.CreateLeadInput) (*entity.Lead, error)
}

type UpdateStageExecutor interface {
	Execute(ctx context.Context, leadID, stage string) (*entity.Lead, error)
}

type ScheduleMeetingExecutor interface {
	Execute(ctx context.Context, input usecase.ScheduleMeetingInput) (*entity.Lead, error)
}

type LeadHandler struct {
	CreateUC  CreateLeadExecutor
	StageUC   UpdateStageExecutor
	MeetingUC ScheduleMeetingExecutor

	Leads      entity.LeadRepositoryInterface
	Messages   entity.MessageRepositoryInterface
	Activities entity.ActivityRepositoryInterface
}

func NewLeadHandler(
	createUC CreateLeadExecutor,
	stageUC UpdateStageExecutor,
	meetingUC ScheduleMeetingExecutor,
	leads entity.LeadRepositoryInterface,
	messages entity.MessageRepositoryInterface,
	activities entity.ActivityRepositoryInterface,
) *LeadHandler {
	return &LeadHandler{
		CreateUC:   createUC,
		StageUC:    stageUC,
		MeetingUC:  meetingUC,
		Leads:      leads,
		Messages:   messages,
		Activities: activities,
	}
}

func (h *LeadHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON: " + err.Error()})
		return
	}

	lead, err := h.CreateUC.Execute(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, lead)
}

func (h *LeadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	leads, err := h.Leads.Search(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	if leads == nil {
		leads = []*entity.Lead{}
	}

	writeJSON(w, http.StatusOK, leads)
}

type LeadDetailResponse struct {
	Lead       *entity.Lead       `json:"lead"`
	Messages   []*entity.Message  `json:"messages"`
	Activities []*entity.Activity `json:"activities"`
}

func (h *LeadHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "leadID")

	lead, err := h.Leads.FindByID(r.Context(), leadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "lead not found"})
			return
		}
		writeError(w, err)
		return
	}

	messages, err := h.Messages.ListByLead(r.Context(), leadID)
	if err != nil {
		writeError(w, err)
		return
	}

	activities, err := h.Activities.ListByLead(r.Context(), leadID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, LeadDetailResponse{
		Lead:       lead,
		Messages:   messages,
		Activities: activities,
	})
}

type UpdateStageRequest struct {
	Stage string `json:"stage"`
}

func (h *LeadHandler) HandleUpdateStage(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "leadID")

	var req UpdateStageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON: " + err.Error()})
		return
	}

	lead, err := h.StageUC.Execute(r.Context(), leadID, req.Stage)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

type ScheduleMeetingRequest struct {
	When string `json:"when"`
	Link string `json:"link"`
}

func (h *LeadHandler) HandleMeeting(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "leadID")

	req := ScheduleMeetingRequest{
		When: "Next Tue 2pm CT",
		Link: "https://cal.example/intro",
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON: " + err.Error()})
			return
		}
	}

	lead, err := h.MeetingUC.Execute(r.Context(), usecase.ScheduleMeetingInput{
		LeadID: leadID,
		When:   req.When,
		Link:   req.Link,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}
