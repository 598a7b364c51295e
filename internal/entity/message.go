package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

var ErrMessageNotFound = errors.New("message not found")

// Message is an append-only record of generated (or received) content,
// owned exclusively by its Lead.
type Message struct {
	ID        string    `json:"id"`
	LeadID    string    `json:"lead_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func NewMessage(leadID, role, content string) *Message {
	return &Message{
		ID:        uuid.New().String(),
		LeadID:    leadID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
}

type MessageRepositoryInterface interface {
	Create(ctx context.Context, msg *Message) error
	FindByID(ctx context.Context, id string) (*Message, error)
	ListByLead(ctx context.Context, leadID string) ([]*Message, error)
}
