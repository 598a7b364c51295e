package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"leadflow/internal/entity"
	"leadflow/internal/infra/queue"
)

func TestUpdateStageSuccess(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockActivities := new(MockActivityRepository)
	mockProducer := new(MockEventProducer)

	lead := testLead()
	mockLeads.On("FindByID", ctx, "lead-123").Return(lead, nil)
	mockLeads.On("UpdateStage", ctx, "lead-123", entity.StageQualified, mock.Anything).Return(nil)
	mockActivities.On("Create", ctx, mock.MatchedBy(func(a *entity.Activity) bool {
		return a.Type == entity.ActivityStageChange && a.Detail == "Stage -> qualified"
	})).Return(nil)
	mockProducer.On("PublishLeadEvent", ctx, mock.MatchedBy(func(p queue.LeadEventPayload) bool {
		return p.Event == queue.EventStageChanged && p.Stage == entity.StageQualified
	})).Return(nil)

	uc := NewUpdateStageUseCase(mockLeads, mockActivities, mockProducer, nil)

	updated, err := uc.Execute(ctx, "lead-123", entity.StageQualified)

	assert.NoError(t, err)
	assert.Equal(t, entity.StageQualified, updated.Stage)
	mockProducer.AssertExpectations(t)
}

func TestUpdateStageRejectsUnknownStage(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	uc := NewUpdateStageUseCase(mockLeads, new(MockActivityRepository), nil, nil)

	_, err := uc.Execute(ctx, "lead-123", "frozen")

	assert.Error(t, err)
	var domainErr *DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, CodeInvalidStage, domainErr.Code)
	mockLeads.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestUpdateStagePublishFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockActivities := new(MockActivityRepository)
	mockProducer := new(MockEventProducer)

	mockLeads.On("FindByID", ctx, "lead-123").Return(testLead(), nil)
	mockLeads.On("UpdateStage", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mockActivities.On("Create", ctx, mock.Anything).Return(nil)
	mockProducer.On("PublishLeadEvent", ctx, mock.Anything).Return(errors.New("broker down"))

	uc := NewUpdateStageUseCase(mockLeads, mockActivities, mockProducer, nil)

	_, err := uc.Execute(ctx, "lead-123", entity.StageLost)

	assert.NoError(t, err)
}

func TestScheduleMeetingSuccess(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockActivities := new(MockActivityRepository)

	lead := testLead()
	mockLeads.On("FindByID", ctx, "lead-123").Return(lead, nil)
	mockLeads.On("UpdateStage", ctx, "lead-123", entity.StageMeeting, mock.Anything).Return(nil)
	mockActivities.On("Create", ctx, mock.MatchedBy(func(a *entity.Activity) bool {
		return a.Type == entity.ActivityMeeting &&
			a.Detail == "Proposed: Next Tue 2pm CT — https://cal.example/intro"
	})).Return(nil)

	uc := NewScheduleMeetingUseCase(mockLeads, mockActivities)

	updated, err := uc.Execute(ctx, ScheduleMeetingInput{
		LeadID: "lead-123",
		When:   "Next Tue 2pm CT",
		Link:   "https://cal.example/intro",
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.StageMeeting, updated.Stage)
	mockActivities.AssertExpectations(t)
}

func TestScheduleMeetingUnknownLead(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockLeads.On("FindByID", ctx, "missing").Return(nil, entity.ErrLeadNotFound)

	uc := NewScheduleMeetingUseCase(mockLeads, new(MockActivityRepository))

	_, err := uc.Execute(ctx, ScheduleMeetingInput{LeadID: "missing"})

	assert.Error(t, err)
	var domainErr *DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, CodeLeadNotFound, domainErr.Code)
}
