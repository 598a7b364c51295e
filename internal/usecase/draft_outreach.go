package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"leadflow/internal/entity"
	"leadflow/internal/infra/integration/grok"
	"leadflow/internal/infra/queue"
	"leadflow/internal/prompts"
)

const (
	defaultTone = "concise, helpful, human"
	defaultCTA  = "Would you be open to a 20-minute intro call this week?"
)

type DraftOutreachUseCase struct {
	Leads      entity.LeadRepositoryInterface
	Messages   entity.MessageRepositoryInterface
	Activities entity.ActivityRepositoryInterface
	Gateway    CompletionGateway
	Producer   EventProducer
	Logger     *zap.Logger
}

func NewDraftOutreachUseCase(
	leads entity.LeadRepositoryInterface,
	messages entity.MessageRepositoryInterface,
	activities entity.ActivityRepositoryInterface,
	gateway CompletionGateway,
	producer EventProducer,
	logger *zap.Logger,
) *DraftOutreachUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DraftOutreachUseCase{
		Leads:      leads,
		Messages:   messages,
		Activities: activities,
		Gateway:    gateway,
		Producer:   producer,
		Logger:     logger,
	}
}

// Execute drafts a first-touch email for the lead: one chat call at a higher
// temperature (free text, no JSON recovery), the draft saved as an assistant
// Message, the stage moved to contacted unconditionally.
func (uc *DraftOutreachUseCase) Execute(ctx context.Context, input DraftOutreachInput) (*DraftOutreachOutput, error) {
	lead, err := uc.Leads.FindByID(ctx, input.LeadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, NewLeadNotFoundError(input.LeadID)
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	tone := prompts.OrPlaceholder(input.Tone, defaultTone)
	cta := prompts.OrPlaceholder(input.CallToAction, defaultCTA)

	// Context fallback chain: caller input, then the lead's notes, then an
	// explicit marker.
	extraContext := input.ExtraContext
	if extraContext == "" {
		extraContext = lead.Notes
	}
	if extraContext == "" {
		extraContext = "No extra context"
	}

	userPrompt, err := prompts.RenderOutreach(prompts.OutreachData{
		ContactName: lead.ContactName,
		Company:     lead.Company,
		Title:       prompts.OrPlaceholder(lead.Title, "Unknown"),
		Context:     extraContext,
		Tone:        tone,
		CTA:         cta,
	})
	if err != nil {
		return nil, err
	}

	// 0.4: some creative variance is wanted here, unlike scoring.
	content, err := uc.Gateway.Chat(ctx, []grok.Message{
		{Role: entity.RoleSystem, Content: prompts.SalesSystemPrompt},
		{Role: entity.RoleUser, Content: userPrompt},
	}, 0.4, 300)
	if err != nil {
		return nil, fmt.Errorf("outreach chat call: %w", err)
	}

	msg := entity.NewMessage(lead.ID, entity.RoleAssistant, content)
	if err := uc.Messages.Create(ctx, msg); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to save draft: " + err.Error()}
	}

	lead.Stage = entity.StageContacted
	lead.UpdatedAt = time.Now().UTC()
	if err := uc.Leads.UpdateStage(ctx, lead.ID, lead.Stage, lead.UpdatedAt); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to update stage: " + err.Error()}
	}

	if err := uc.Activities.Create(ctx, entity.NewActivity(lead.ID, entity.ActivityMessaged, "Generated outreach email")); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to record activity: " + err.Error()}
	}

	uc.publish(ctx, queue.LeadEventPayload{
		LeadID:     lead.ID,
		Event:      queue.EventLeadContacted,
		Stage:      lead.Stage,
		Score:      lead.Score,
		Detail:     "Generated outreach email",
		OccurredAt: lead.UpdatedAt,
	})

	return &DraftOutreachOutput{Message: msg}, nil
}

func (uc *DraftOutreachUseCase) publish(ctx context.Context, payload queue.LeadEventPayload) {
	if uc.Producer == nil {
		return
	}
	if err := uc.Producer.PublishLeadEvent(ctx, payload); err != nil {
		uc.Logger.Warn("lead event publish failed",
			zap.String("lead_id", payload.LeadID),
			zap.String("event", payload.Event),
			zap.Error(err),
		)
	}
}
