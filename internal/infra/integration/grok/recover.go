package grok

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNonJSON is terminal: the model failed to produce a JSON object even
// after one repair round trip. Callers must not retry past it.
var ErrNonJSON = errors.New("grok: non-JSON output after repair")

const repairInstruction = "Convert the following to a single JSON object with keys: " +
	"overall, industry, size, intent, data_quality, rationale. " +
	"Return ONLY JSON and nothing else.\n\n"

// RecoverJSON turns raw model text into a parsed JSON object. It sanitizes
// and parses first; on failure it issues exactly one repair call asking the
// model to re-emit strict JSON, then sanitizes and parses that. A second
// parse failure is terminal (ErrNonJSON).
func (c *Client) RecoverJSON(ctx context.Context, raw string) (map[string]any, error) {
	if payload, err := parseObject(Sanitize(raw)); err == nil {
		return payload, nil
	}

	llmRepairsTotal.Inc()
	repaired, err := c.Chat(ctx, []Message{
		{Role: "system", Content: "Return ONLY a JSON object."},
		{Role: "user", Content: repairInstruction + raw},
	}, 0.0, 200)
	if err != nil {
		return nil, fmt.Errorf("repair call: %w", err)
	}

	payload, err := parseObject(Sanitize(repaired))
	if err != nil {
		return nil, ErrNonJSON
	}
	return payload, nil
}

// Sanitize trims whitespace and strips markdown code fences, plus a leading
// "json" language tag left over after the fence.
func Sanitize(text string) string {
	t := strings.TrimSpace(text)
	if strings.HasPrefix(t, "```") {
		t = strings.Trim(t, "`")
		t = strings.TrimSpace(t)
		if strings.HasPrefix(strings.ToLower(t), "json") {
			t = strings.TrimSpace(t[4:])
		}
	}
	return t
}

func parseObject(text string) (map[string]any, error) {
	var payload map[string]any
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, err
	}
	return payload, nil
}
