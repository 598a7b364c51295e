package entity

import (
	"context"
	"errors"
	"net/mail"
	"time"

	"github.com/google/uuid"
	// IMPORTANT: no usecase or infra imports here!
)

// Pipeline stages. new -> qualified -> contacted -> meeting -> won/lost
const (
	StageNew       = "new"
	StageQualified = "qualified"
	StageContacted = "contacted"
	StageMeeting   = "meeting"
	StageWon       = "won"
	StageLost      = "lost"
)

func IsValidStage(stage string) bool {
	switch stage {
	case StageNew, StageQualified, StageContacted, StageMeeting, StageWon, StageLost:
		return true
	}
	return false
}

var ErrLeadNotFound = errors.New("lead not found")

// Entity: Lead
type Lead struct {
	ID          string    `json:"id"`
	Company     string    `json:"company"`
	ContactName string    `json:"contact_name"`
	Email       string    `json:"email"`
	Title       string    `json:"title,omitempty"`
	Website     string    `json:"website,omitempty"`
	Notes       string    `json:"notes"`
	Score       float64   `json:"score"`
	Stage       string    `json:"stage"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Factory
func NewLead(company, contactName, email, title, website, notes string) (*Lead, error) {
	now := time.Now().UTC()
	lead := &Lead{
		ID:          uuid.New().String(),
		Company:     company,
		ContactName: contactName,
		Email:       email,
		Title:       title,
		Website:     website,
		Notes:       notes,
		Score:       0,
		Stage:       StageNew,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := lead.Validate(); err != nil {
		return nil, err
	}

	return lead, nil
}

func (l *Lead) Validate() error {
	if l.Company == "" {
		return errors.New("company is required")
	}
	if l.ContactName == "" {
		return errors.New("contact name is required")
	}
	if l.Email == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(l.Email); err != nil {
		return errors.New("email is invalid")
	}
	return nil
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id string) (*Lead, error)
	// Search lists leads ordered by updated_at DESC; q filters as a
	// substring across company, contact_name and notes.
	Search(ctx context.Context, q string) ([]*Lead, error)
	// UpdateScoreStage persists score, stage and updated_at in one statement.
	UpdateScoreStage(ctx context.Context, lead *Lead) error
	UpdateStage(ctx context.Context, id, stage string, updatedAt time.Time) error
}
