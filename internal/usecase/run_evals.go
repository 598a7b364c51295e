package usecase

import (
	"context"
	"fmt"
	"strings"

	"leadflow/internal/entity"
	"leadflow/internal/infra/integration/grok"
	"leadflow/internal/prompts"
)

// EvalScenario is one fixed regression scenario for the completion client.
type EvalScenario struct {
	Name           string
	Prompt         string
	MustInclude    string
	MustNotInclude string
}

// Scenarios are literal on purpose: the harness is a smoke test against the
// live endpoint, not a configurable eval framework.
var evalScenarios = []EvalScenario{
	{
		Name:           "Personalization",
		Prompt:         "Write a 1-paragraph first-touch email to Jane at Contoso about AI SDR automation.",
		MustInclude:    "Jane",
		MustNotInclude: "[[FILL]",
	},
	{
		Name:        "LengthLimit",
		Prompt:      "In <=120 words, pitch AI SDR assistant benefits for a data infra startup.",
		MustInclude: "SDR",
	},
}

type RunEvalsUseCase struct {
	Gateway CompletionGateway
}

func NewRunEvalsUseCase(gateway CompletionGateway) *RunEvalsUseCase {
	return &RunEvalsUseCase{Gateway: gateway}
}

func (uc *RunEvalsUseCase) Execute(ctx context.Context) ([]EvalRow, error) {
	rows := make([]EvalRow, 0, len(evalScenarios))

	for _, sc := range evalScenarios {
		out, err := uc.Gateway.Chat(ctx, []grok.Message{
			{Role: entity.RoleSystem, Content: prompts.SalesSystemPrompt},
			{Role: entity.RoleUser, Content: sc.Prompt},
		}, 0.3, 250)
		if err != nil {
			return nil, fmt.Errorf("eval %q: %w", sc.Name, err)
		}

		rows = append(rows, evaluate(sc, out))
	}

	return rows, nil
}

func evaluate(sc EvalScenario, out string) EvalRow {
	ok := true
	var notes []string

	if sc.MustInclude != "" && !strings.Contains(out, sc.MustInclude) {
		ok = false
		notes = append(notes, "missing personalization")
	}
	if sc.MustNotInclude != "" && strings.Contains(out, sc.MustNotInclude) {
		ok = false
		notes = append(notes, "placeholder leaked")
	}
	// Implicit word ceiling when the prompt encodes a 120-word budget.
	if strings.Contains(sc.Prompt, "120") && len(strings.Fields(out)) > 130 {
		ok = false
		notes = append(notes, "over length")
	}

	note := strings.Join(notes, "; ")
	if note == "" {
		note = "pass"
	}

	return EvalRow{Scenario: sc.Name, OK: ok, Notes: note}
}
