package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"leadflow/internal/entity"
	"leadflow/internal/infra/integration/grok"
	"leadflow/internal/infra/queue"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Search(ctx context.Context, q string) ([]*entity.Lead, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) UpdateScoreStage(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) UpdateStage(ctx context.Context, id, stage string, updatedAt time.Time) error {
	args := m.Called(ctx, id, stage, updatedAt)
	return args.Error(0)
}

// MockMessageRepository
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, msg *entity.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockMessageRepository) FindByID(ctx context.Context, id string) (*entity.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Message), args.Error(1)
}

func (m *MockMessageRepository) ListByLead(ctx context.Context, leadID string) ([]*entity.Message, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Message), args.Error(1)
}

// MockActivityRepository
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Create(ctx context.Context, activity *entity.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) ListByLead(ctx context.Context, leadID string) ([]*entity.Activity, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Activity), args.Error(1)
}

// MockCompletionGateway
type MockCompletionGateway struct {
	mock.Mock
}

func (m *MockCompletionGateway) Chat(ctx context.Context, messages []grok.Message, temperature float64, maxTokens int) (string, error) {
	args := m.Called(ctx, messages, temperature, maxTokens)
	return args.String(0), args.Error(1)
}

func (m *MockCompletionGateway) Respond(ctx context.Context, input string, temperature float64, maxTokens int) (string, error) {
	args := m.Called(ctx, input, temperature, maxTokens)
	return args.String(0), args.Error(1)
}

func (m *MockCompletionGateway) RecoverJSON(ctx context.Context, raw string) (map[string]any, error) {
	args := m.Called(ctx, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

// MockEventProducer
type MockEventProducer struct {
	mock.Mock
}

func (m *MockEventProducer) PublishLeadEvent(ctx context.Context, payload queue.LeadEventPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// MockOutreachMailer
type MockOutreachMailer struct {
	mock.Mock
}

func (m *MockOutreachMailer) SendDraft(to, contactName, company, body string) error {
	args := m.Called(to, contactName, company, body)
	return args.Error(0)
}

func testLead() *entity.Lead {
	now := time.Now().UTC()
	return &entity.Lead{
		ID:          "lead-123",
		Company:     "Contoso",
		ContactName: "Jane Doe",
		Email:       "jane@contoso.com",
		Title:       "Head of Sales",
		Website:     "https://contoso.com",
		Notes:       "Hiring SDRs, uses a modern data stack",
		Score:       0,
		Stage:       entity.StageNew,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
