package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"leadflow/internal/entity"
	"leadflow/internal/infra/integration/grok"
	"leadflow/internal/infra/queue"
	"leadflow/internal/prompts"
	"leadflow/internal/scoring"
)

// Stage moves to qualified only when the weighted score reaches this value.
const qualifiedThreshold = 60.0

const rationaleExcerptLimit = 220

type QualifyLeadUseCase struct {
	Leads      entity.LeadRepositoryInterface
	Activities entity.ActivityRepositoryInterface
	Gateway    CompletionGateway
	Producer   EventProducer
	Logger     *zap.Logger
}

func NewQualifyLeadUseCase(
	leads entity.LeadRepositoryInterface,
	activities entity.ActivityRepositoryInterface,
	gateway CompletionGateway,
	producer EventProducer,
	logger *zap.Logger,
) *QualifyLeadUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QualifyLeadUseCase{
		Leads:      leads,
		Activities: activities,
		Gateway:    gateway,
		Producer:   producer,
		Logger:     logger,
	}
}

// Execute runs the qualification workflow: prompt -> chat (responses fallback
// when empty) -> JSON recovery -> weighted score -> persist score+stage ->
// audit record. On a terminal recovery failure the lead stays untouched, the
// failure is still audited, and the caller gets a SCORING_FAILED outcome.
func (uc *QualifyLeadUseCase) Execute(ctx context.Context, input QualifyLeadInput) (*QualifyLeadOutput, error) {
	if err := input.Weights.Validate(); err != nil {
		return nil, &DomainError{Code: CodeValidation, Message: err.Error()}
	}

	lead, err := uc.Leads.FindByID(ctx, input.LeadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, NewLeadNotFoundError(input.LeadID)
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	userPrompt, err := prompts.RenderQualification(prompts.QualificationData{
		Company:     lead.Company,
		ContactName: lead.ContactName,
		Title:       prompts.OrPlaceholder(lead.Title, "Unknown"),
		Website:     prompts.OrPlaceholder(lead.Website, "N/A"),
		Notes:       prompts.OrPlaceholder(lead.Notes, "N/A"),
	})
	if err != nil {
		return nil, err
	}

	// Temperature 0: scoring is meant to be deterministic.
	content, err := uc.Gateway.Chat(ctx, []grok.Message{
		{Role: entity.RoleSystem, Content: prompts.SalesSystemPrompt},
		{Role: entity.RoleUser, Content: userPrompt},
	}, 0.0, 300)
	if err != nil {
		return nil, fmt.Errorf("qualification chat call: %w", err)
	}

	if strings.TrimSpace(content) == "" {
		content, err = uc.Gateway.Respond(ctx, prompts.ResponsesFallbackPreamble+userPrompt, 0.0, 300)
		if err != nil {
			return nil, fmt.Errorf("qualification responses fallback: %w", err)
		}
	}

	payload, err := uc.Gateway.RecoverJSON(ctx, content)
	if err != nil {
		if errors.Is(err, grok.ErrNonJSON) {
			// Terminal: audit the failure, leave the lead unmodified.
			uc.audit(ctx, lead.ID, entity.ActivityScored, "Model returned non-JSON twice")
			return nil, &DomainError{Code: CodeScoringFailed, Message: "scoring failed: model returned non-JSON output"}
		}
		return nil, fmt.Errorf("qualification recovery: %w", err)
	}

	rawParts, err := scoring.SubScoresFromPayload(payload)
	if err != nil {
		return nil, fmt.Errorf("qualification sub-scores: %w", err)
	}
	parts := rawParts.Clamped()

	score := scoring.WeightedScore(parts, input.Weights)

	stage := entity.StageNew
	if score >= qualifiedThreshold {
		stage = entity.StageQualified
	}

	lead.Score = score
	lead.Stage = stage
	lead.UpdatedAt = time.Now().UTC()

	if err := uc.Leads.UpdateScoreStage(ctx, lead); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to persist score: " + err.Error()}
	}

	rationale := truncate(rationaleFrom(payload), rationaleExcerptLimit)
	detail := fmt.Sprintf("Parts=%+v -> weighted=%.2f. Rationale: %s", parts, score, rationale)
	if err := uc.audit(ctx, lead.ID, entity.ActivityScored, detail); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to record activity: " + err.Error()}
	}

	uc.publish(ctx, queue.LeadEventPayload{
		LeadID:     lead.ID,
		Event:      queue.EventLeadScored,
		Stage:      stage,
		Score:      score,
		Detail:     detail,
		OccurredAt: lead.UpdatedAt,
	})

	return &QualifyLeadOutput{
		Score:     score,
		Stage:     stage,
		Parts:     parts,
		Rationale: rationale,
	}, nil
}

func (uc *QualifyLeadUseCase) audit(ctx context.Context, leadID, activityType, detail string) error {
	return uc.Activities.Create(ctx, entity.NewActivity(leadID, activityType, detail))
}

// publish is side-effect-only: a broker failure is logged, never surfaced.
func (uc *QualifyLeadUseCase) publish(ctx context.Context, payload queue.LeadEventPayload) {
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

func rationaleFrom(payload map[string]any) string {
	raw, ok := payload["rationale"]
	if !ok || raw == nil {
		return ""
	}
	return fmt.Sprintf("%v", raw)
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
