package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"leadflow/internal/entity"
	"leadflow/internal/infra/queue"
)

// UpdateStageUseCase handles explicit, caller-driven stage transitions.
// The only score-driven transition lives in QualifyLeadUseCase.
type UpdateStageUseCase struct {
	Leads      entity.LeadRepositoryInterface
	Activities entity.ActivityRepositoryInterface
	Producer   EventProducer
	Logger     *zap.Logger
}

func NewUpdateStageUseCase(
	leads entity.LeadRepositoryInterface,
	activities entity.ActivityRepositoryInterface,
	producer EventProducer,
	logger *zap.Logger,
) *UpdateStageUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UpdateStageUseCase{Leads: leads, Activities: activities, Producer: producer, Logger: logger}
}

func (uc *UpdateStageUseCase) Execute(ctx context.Context, leadID, stage string) (*entity.Lead, error) {
	if !entity.IsValidStage(stage) {
		return nil, &DomainError{Code: CodeInvalidStage, Message: "invalid stage: " + stage}
	}

	lead, err := uc.Leads.FindByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, NewLeadNotFoundError(leadID)
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	lead.Stage = stage
	lead.UpdatedAt = time.Now().UTC()
	if err := uc.Leads.UpdateStage(ctx, lead.ID, stage, lead.UpdatedAt); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to update stage: " + err.Error()}
	}

	detail := "Stage -> " + stage
	if err := uc.Activities.Create(ctx, entity.NewActivity(lead.ID, entity.ActivityStageChange, detail)); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to record activity: " + err.Error()}
	}

	if uc.Producer != nil {
		payload := queue.LeadEventPayload{
			LeadID:     lead.ID,
			Event:      queue.EventStageChanged,
			Stage:      stage,
			Score:      lead.Score,
			Detail:     detail,
			OccurredAt: lead.UpdatedAt,
		}
		if err := uc.Producer.PublishLeadEvent(ctx, payload); err != nil {
			uc.Logger.Warn("lead event publish failed", zap.String("lead_id", lead.ID), zap.Error(err))
		}
	}

	return lead, nil
}

// ScheduleMeetingUseCase proposes a meeting: stage -> meeting plus an audit
// record carrying the proposed slot and link.
type ScheduleMeetingUseCase struct {
	Leads      entity.LeadRepositoryInterface
	Activities entity.ActivityRepositoryInterface
}

func NewScheduleMeetingUseCase(
	leads entity.LeadRepositoryInterface,
	activities entity.ActivityRepositoryInterface,
) *ScheduleMeetingUseCase {
	return &ScheduleMeetingUseCase{Leads: leads, Activities: activities}
}

func (uc *ScheduleMeetingUseCase) Execute(ctx context.Context, input ScheduleMeetingInput) (*entity.Lead, error) {
	lead, err := uc.Leads.FindByID(ctx, input.LeadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, NewLeadNotFoundError(input.LeadID)
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	lead.Stage = entity.StageMeeting
	lead.UpdatedAt = time.Now().UTC()
	if err := uc.Leads.UpdateStage(ctx, lead.ID, lead.Stage, lead.UpdatedAt); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to update stage: " + err.Error()}
	}

	detail := fmt.Sprintf("Proposed: %s — %s", input.When, input.Link)
	if err := uc.Activities.Create(ctx, entity.NewActivity(lead.ID, entity.ActivityMeeting, detail)); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to record activity: " + err.Error()}
	}

	return lead, nil
}
