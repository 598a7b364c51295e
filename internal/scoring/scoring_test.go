package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeightedScoreZeroWeights(t *testing.T) {
	w := ScoreWeights{}
	parts := SubScores{Industry: 90, Size: 90, Intent: 90, DataQuality: 90}

	assert.Equal(t, 0.0, WeightedScore(parts, w))
}

func TestWeightedScoreSingleWeightIsIdentity(t *testing.T) {
	w := ScoreWeights{IndustryFit: 1}
	parts := SubScores{Industry: 50}

	assert.Equal(t, 50.0, WeightedScore(parts, w))
}

func TestWeightedScoreScaleInvariant(t *testing.T) {
	parts := SubScores{Industry: 80, Size: 60, Intent: 70, DataQuality: 90}
	w := DefaultWeights()
	scaled := ScoreWeights{
		IndustryFit:   w.IndustryFit * 10,
		SizeFit:       w.SizeFit * 10,
		IntentSignals: w.IntentSignals * 10,
		DataQuality:   w.DataQuality * 10,
	}

	assert.Equal(t, WeightedScore(parts, w), WeightedScore(parts, scaled))
}

func TestWeightedScoreDefaultWeights(t *testing.T) {
	parts := SubScores{Industry: 80, Size: 60, Intent: 70, DataQuality: 90}
	score := WeightedScore(parts, DefaultWeights())

	assert.Greater(t, score, 70.0)
	assert.Equal(t, 74.0, score)
}

func TestWeightedScoreRoundsToTwoDecimals(t *testing.T) {
	parts := SubScores{Industry: 33, Size: 33, Intent: 34, DataQuality: 0}
	w := ScoreWeights{IndustryFit: 1, SizeFit: 1, IntentSignals: 1}

	score := WeightedScore(parts, w)
	assert.Equal(t, score, math.Round(score*100)/100)
	assert.Equal(t, 33.33, score)
}

func TestSubScoresClamped(t *testing.T) {
	parts := SubScores{Industry: -10, Size: 150, Intent: 70, DataQuality: 100}
	clamped := parts.Clamped()

	assert.Equal(t, SubScores{Industry: 0, Size: 100, Intent: 70, DataQuality: 100}, clamped)
}

func TestSubScoresFromPayload(t *testing.T) {
	payload := map[string]any{
		"industry":     80.0,
		"size":         "60",
		"data_quality": 90.0,
		"rationale":    "strong fit",
	}

	parts, err := SubScoresFromPayload(payload)
	assert.NoError(t, err)
	assert.Equal(t, SubScores{Industry: 80, Size: 60, Intent: 0, DataQuality: 90}, parts)
}

func TestSubScoresFromPayloadNonNumeric(t *testing.T) {
	payload := map[string]any{"industry": "very high"}

	_, err := SubScoresFromPayload(payload)
	assert.Error(t, err)
}

func TestSubScoresFromPayloadUnexpectedType(t *testing.T) {
	payload := map[string]any{"size": []any{60}}

	_, err := SubScoresFromPayload(payload)
	assert.Error(t, err)
}

func TestScoreWeightsValidate(t *testing.T) {
	assert.NoError(t, DefaultWeights().Validate())
	assert.Error(t, ScoreWeights{IndustryFit: -0.1}.Validate())
}
