package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"leadflow/internal/entity"
	"leadflow/internal/infra/integration/grok"
	"leadflow/internal/scoring"
)

func TestQualifyLeadSuccess(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockActivities := new(MockActivityRepository)
	mockGateway := new(MockCompletionGateway)
	mockProducer := new(MockEventProducer)

	lead := testLead()
	mockLeads.On("FindByID", ctx, "lead-123").Return(lead, nil)
	mockGateway.On("Chat", ctx, mock.Anything, 0.0, 300).Return(`{"industry":80,"size":60}`, nil)
	mockGateway.On("RecoverJSON", ctx, `{"industry":80,"size":60}`).Return(map[string]any{
		"industry":     80.0,
		"size":         60.0,
		"intent":       70.0,
		"data_quality": 90.0,
		"rationale":    "strong AI alignment and buying signals",
	}, nil)
	mockLeads.On("UpdateScoreStage", ctx, mock.Anything).Return(nil)
	mockActivities.On("Create", ctx, mock.Anything).Return(nil)
	mockProducer.On("PublishLeadEvent", ctx, mock.Anything).Return(nil)

	uc := NewQualifyLeadUseCase(mockLeads, mockActivities, mockGateway, mockProducer, nil)

	output, err := uc.Execute(ctx, QualifyLeadInput{
		LeadID:  "lead-123",
		Weights: scoring.DefaultWeights(),
	})

	assert.NoError(t, err)
	assert.Greater(t, output.Score, 70.0)
	assert.Equal(t, entity.StageQualified, output.Stage)
	assert.Equal(t, entity.StageQualified, lead.Stage)
	assert.Equal(t, output.Score, lead.Score)

	// No fallback needed when chat returned content.
	mockGateway.AssertNotCalled(t, "Respond", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockActivities.AssertNumberOfCalls(t, "Create", 1)
}

func TestQualifyLeadThresholdBoundary(t *testing.T) {
	cases := []struct {
		name      string
		industry  float64
		wantStage string
	}{
		{"JustBelowThreshold", 59.99, entity.StageNew},
		{"ExactlyAtThreshold", 60.00, entity.StageQualified},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()

			mockLeads := new(MockLeadRepository)
			mockActivities := new(MockActivityRepository)
			mockGateway := new(MockCompletionGateway)

			lead := testLead()
			mockLeads.On("FindByID", ctx, "lead-123").Return(lead, nil)
			mockGateway.On("Chat", ctx, mock.Anything, 0.0, 300).Return("raw", nil)
			mockGateway.On("RecoverJSON", ctx, "raw").Return(map[string]any{
				"industry": tc.industry,
			}, nil)
			mockLeads.On("UpdateScoreStage", ctx, mock.Anything).Return(nil)
			mockActivities.On("Create", ctx, mock.Anything).Return(nil)

			uc := NewQualifyLeadUseCase(mockLeads, mockActivities, mockGateway, nil, nil)

			// Industry alone carries all the weight, so the score equals
			// the sub-score exactly.
			output, err := uc.Execute(ctx, QualifyLeadInput{
				LeadID:  "lead-123",
				Weights: scoring.ScoreWeights{IndustryFit: 1},
			})

			assert.NoError(t, err)
			assert.Equal(t, tc.industry, output.Score)
			assert.Equal(t, tc.wantStage, output.Stage)
		})
	}
}

func TestQualifyLeadEmptyChatFallsBackToRespond(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockActivities := new(MockActivityRepository)
	mockGateway := new(MockCompletionGateway)

	lead := testLead()
	mockLeads.On("FindByID", ctx, "lead-123").Return(lead, nil)
	mockGateway.On("Chat", ctx, mock.Anything, 0.0, 300).Return("  ", nil)
	mockGateway.On("Respond", ctx, mock.Anything, 0.0, 300).Return(`{"industry":50}`, nil)
	mockGateway.On("RecoverJSON", ctx, `{"industry":50}`).Return(map[string]any{"industry": 50.0}, nil)
	mockLeads.On("UpdateScoreStage", ctx, mock.Anything).Return(nil)
	mockActivities.On("Create", ctx, mock.Anything).Return(nil)

	uc := NewQualifyLeadUseCase(mockLeads, mockActivities, mockGateway, nil, nil)

	_, err := uc.Execute(ctx, QualifyLeadInput{LeadID: "lead-123", Weights: scoring.DefaultWeights()})

	assert.NoError(t, err)
	mockGateway.AssertCalled(t, "Respond", ctx, mock.Anything, 0.0, 300)
}

func TestQualifyLeadRecoveryFailureIsTerminal(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockActivities := new(MockActivityRepository)
	mockGateway := new(MockCompletionGateway)

	lead := testLead()
	mockLeads.On("FindByID", ctx, "lead-123").Return(lead, nil)
	mockGateway.On("Chat", ctx, mock.Anything, 0.0, 300).Return("garbage", nil)
	mockGateway.On("RecoverJSON", ctx, "garbage").Return(nil, grok.ErrNonJSON)
	mockActivities.On("Create", ctx, mock.MatchedBy(func(a *entity.Activity) bool {
		return a.Type == entity.ActivityScored && a.Detail == "Model returned non-JSON twice"
	})).Return(nil)

	uc := NewQualifyLeadUseCase(mockLeads, mockActivities, mockGateway, nil, nil)

	output, err := uc.Execute(ctx, QualifyLeadInput{LeadID: "lead-123", Weights: scoring.DefaultWeights()})

	assert.Nil(t, output)
	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeScoringFailed, domainErr.Code)

	// Lead must remain untouched; the failure is still audited.
	mockLeads.AssertNotCalled(t, "UpdateScoreStage", mock.Anything, mock.Anything)
	mockActivities.AssertNumberOfCalls(t, "Create", 1)
	assert.Equal(t, entity.StageNew, lead.Stage)
	assert.Equal(t, 0.0, lead.Score)
}

func TestQualifyLeadUnknownLead(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockActivities := new(MockActivityRepository)
	mockGateway := new(MockCompletionGateway)

	mockLeads.On("FindByID", ctx, "missing").Return(nil, entity.ErrLeadNotFound)

	uc := NewQualifyLeadUseCase(mockLeads, mockActivities, mockGateway, nil, nil)

	_, err := uc.Execute(ctx, QualifyLeadInput{LeadID: "missing", Weights: scoring.DefaultWeights()})

	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeLeadNotFound, domainErr.Code)

	// No lead, no audit record.
	mockActivities.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestQualifyLeadNegativeWeightsRejected(t *testing.T) {
	uc := NewQualifyLeadUseCase(new(MockLeadRepository), new(MockActivityRepository), new(MockCompletionGateway), nil, nil)

	_, err := uc.Execute(context.Background(), QualifyLeadInput{
		LeadID:  "lead-123",
		Weights: scoring.ScoreWeights{IndustryFit: -1},
	})

	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeValidation, domainErr.Code)
}

func TestQualifyLeadClampsOutOfRangeSubScores(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockActivities := new(MockActivityRepository)
	mockGateway := new(MockCompletionGateway)

	lead := testLead()
	mockLeads.On("FindByID", ctx, "lead-123").Return(lead, nil)
	mockGateway.On("Chat", ctx, mock.Anything, 0.0, 300).Return("raw", nil)
	mockGateway.On("RecoverJSON", ctx, "raw").Return(map[string]any{
		"industry": 180.0,
		"size":     -40.0,
	}, nil)
	mockLeads.On("UpdateScoreStage", ctx, mock.Anything).Return(nil)
	mockActivities.On("Create", ctx, mock.Anything).Return(nil)

	uc := NewQualifyLeadUseCase(mockLeads, mockActivities, mockGateway, nil, nil)

	output, err := uc.Execute(ctx, QualifyLeadInput{
		LeadID:  "lead-123",
		Weights: scoring.ScoreWeights{IndustryFit: 1, SizeFit: 1},
	})

	assert.NoError(t, err)
	assert.Equal(t, scoring.SubScores{Industry: 100, Size: 0}, output.Parts)
	assert.Equal(t, 50.0, output.Score)
}
