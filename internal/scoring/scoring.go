package scoring

import (
	"fmt"
	"math"
	"strconv"
)

// ScoreWeights holds the four qualification weights. Weights do not need to
// sum to 1; WeightedScore divides by the total, so only their ratio matters.
type ScoreWeights struct {
	IndustryFit   float64 `json:"industry_fit"`
	SizeFit       float64 `json:"size_fit"`
	IntentSignals float64 `json:"intent_signals"`
	DataQuality   float64 `json:"data_quality"`
}

func DefaultWeights() ScoreWeights {
	return ScoreWeights{
		IndustryFit:   0.4,
		SizeFit:       0.2,
		IntentSignals: 0.3,
		DataQuality:   0.1,
	}
}

func (w ScoreWeights) Validate() error {
	if w.IndustryFit < 0 || w.SizeFit < 0 || w.IntentSignals < 0 || w.DataQuality < 0 {
		return fmt.Errorf("weights must be non-negative")
	}
	return nil
}

// SubScores are the four partial scores extracted from model output.
// Each is meant to be 0-100 but that is not enforced here; Clamped bounds them.
type SubScores struct {
	Industry    float64 `json:"industry"`
	Size        float64 `json:"size"`
	Intent      float64 `json:"intent"`
	DataQuality float64 `json:"data_quality"`
}

func (s SubScores) Clamped() SubScores {
	return SubScores{
		Industry:    clamp(s.Industry),
		Size:        clamp(s.Size),
		Intent:      clamp(s.Intent),
		DataQuality: clamp(s.DataQuality),
	}
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// WeightedScore collapses the four sub-scores into a single number, rounded
// to 2 decimals. A zero weight total divides by 1.0 instead, so an all-zero
// weight request yields 0 rather than an error.
func WeightedScore(parts SubScores, w ScoreWeights) float64 {
	total := w.IndustryFit + w.SizeFit + w.IntentSignals + w.DataQuality
	if total == 0 {
		total = 1.0
	}

	score := (parts.Industry*w.IndustryFit +
		parts.Size*w.SizeFit +
		parts.Intent*w.IntentSignals +
		parts.DataQuality*w.DataQuality) / total

	return math.Round(score*100) / 100
}

// SubScoresFromPayload pulls the four sub-score keys out of a parsed model
// payload. A missing key counts as 0; a present but non-numeric value is an
// error, never a silent 0 that would skew the weighted score.
func SubScoresFromPayload(payload map[string]any) (SubScores, error) {
	var out SubScores
	var err error

	if out.Industry, err = numericField(payload, "industry"); err != nil {
		return SubScores{}, err
	}
	if out.Size, err = numericField(payload, "size"); err != nil {
		return SubScores{}, err
	}
	if out.Intent, err = numericField(payload, "intent"); err != nil {
		return SubScores{}, err
	}
	if out.DataQuality, err = numericField(payload, "data_quality"); err != nil {
		return SubScores{}, err
	}

	return out, nil
}

func numericField(payload map[string]any, key string) (float64, error) {
	raw, ok := payload[key]
	if !ok || raw == nil {
		return 0, nil
	}

	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("sub-score %q is not numeric: %q", key, v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("sub-score %q has unexpected type %T", key, raw)
	}
}
