package usecase

import (
	"context"

	"leadflow/internal/entity"
	"leadflow/internal/infra/integration/grok"
	"leadflow/internal/infra/queue"
	"leadflow/internal/scoring"
)

// CompletionGateway is the LLM port: primary chat call, single-shot responses
// fallback, and the sanitize/parse/repair recovery pipeline.
type CompletionGateway interface {
	Chat(ctx context.Context, messages []grok.Message, temperature float64, maxTokens int) (string, error)
	Respond(ctx context.Context, input string, temperature float64, maxTokens int) (string, error)
	RecoverJSON(ctx context.Context, raw string) (map[string]any, error)
}

// EventProducer publishes lead lifecycle events after a successful commit.
// Optional: use cases must tolerate a nil producer.
type EventProducer interface {
	PublishLeadEvent(ctx context.Context, payload queue.LeadEventPayload) error
}

// OutreachMailer delivers an approved draft to the lead's inbox.
type OutreachMailer interface {
	SendDraft(to, contactName, company, body string) error
}

// --- Inputs / Outputs ---

type CreateLeadInput struct {
	Company     string `json:"company"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Title       string `json:"title"`
	Website     string `json:"website"`
	Notes       string `json:"notes"`
}

type QualifyLeadInput struct {
	LeadID  string
	Weights scoring.ScoreWeights
}

type QualifyLeadOutput struct {
	Score     float64           `json:"score"`
	Stage     string            `json:"stage"`
	Parts     scoring.SubScores `json:"parts"`
	Rationale string            `json:"rationale"`
}

type DraftOutreachInput struct {
	LeadID       string
	Tone         string `json:"tone"`
	CallToAction string `json:"call_to_action"`
	ExtraContext string `json:"extra_context"`
}

type DraftOutreachOutput struct {
	Message *entity.Message `json:"message"`
}

type ScheduleMeetingInput struct {
	LeadID string
	When   string `json:"when"`
	Link   string `json:"link"`
}

type EvalRow struct {
	Scenario string `json:"scenario"`
	OK       bool   `json:"ok"`
	Notes    string `json:"notes"`
}
