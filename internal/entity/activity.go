package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Activity types
const (
	ActivityCreated     = "created"
	ActivityScored      = "scored"
	ActivityMessaged    = "messaged"
	ActivityStageChange = "stage_change"
	ActivityMeeting     = "meeting"
)

// Activity is the immutable audit trail of a Lead. Every workflow step that
// mutates a Lead must append one.
type Activity struct {
	ID        string    `json:"id"`
	LeadID    string    `json:"lead_id"`
	Type      string    `json:"type"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}

func NewActivity(leadID, activityType, detail string) *Activity {
	return &Activity{
		ID:        uuid.New().String(),
		LeadID:    leadID,
		Type:      activityType,
		Detail:    detail,
		CreatedAt: time.Now().UTC(),
	}
}

type ActivityRepositoryInterface interface {
	Create(ctx context.Context, activity *Activity) error
	ListByLead(ctx context.Context, leadID string) ([]*Activity, error)
}
