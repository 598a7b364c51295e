package prompts

import (
	"bytes"
	"fmt"
	"text/template"
)

// SalesSystemPrompt frames every completion call made on behalf of an SDR.
const SalesSystemPrompt = `You are an expert Sales Development Representative assistant.
- Be factual, concise, and tailored.
- Always personalize with the contact's name, company, and role if provided.
- Offer a clear next step (calendar link placeholder: https://cal.example/intro).
- Avoid over-promising; do not claim features that do not exist.
`

// ResponsesFallbackPreamble prefixes the qualification prompt when the chat
// endpoint returned nothing and the single-shot responses endpoint is used.
const ResponsesFallbackPreamble = "You are an SDR assistant. Reply with ONLY one JSON object with keys: " +
	"overall, industry, size, intent, data_quality, rationale.\n\n"

const qualificationPrompt = `You must reply with a single JSON object and nothing else. Given the following lead data, assess qualification on 0-100 and explain briefly.

Lead:
Company: {{.Company}}
Contact: {{.ContactName}} ({{.Title}})
Website: {{.Website}}
Notes: {{.Notes}}

Scoring Definition:
- Industry fit (0-100): alignment with AI/automation/analytics or adjacent
- Size fit (0-100): likely budget & org maturity
- Intent (0-100): hiring, blog posts, product pages, tech stack signals
- Data quality (0-100): completeness & confidence

Return JSON with keys: overall, industry, size, intent, data_quality, rationale.
Only JSON, no extra text.
`

const outreachPrompt = `Write a first-touch email to {{.ContactName}} at {{.Company}} ({{.Title}}).
Context: {{.Context}}
Tone: {{.Tone}}
CTA: {{.CTA}}
Constraints:
- <150 words.
- 1 paragraph + bullet CTA options (2).
- Mention one specific, relevant benefit of an AI assistant for SDRs (lead triage, summarization, or personalized drafts).
`

var (
	qualificationTmpl = template.Must(template.New("qualification").Parse(qualificationPrompt))
	outreachTmpl      = template.Must(template.New("outreach").Parse(outreachPrompt))
)

// QualificationData feeds the qualification template. Optional lead fields
// must already carry their placeholder ("Unknown"/"N/A"), never be blank.
type QualificationData struct {
	Company     string
	ContactName string
	Title       string
	Website     string
	Notes       string
}

func RenderQualification(data QualificationData) (string, error) {
	return render(qualificationTmpl, data)
}

type OutreachData struct {
	ContactName string
	Company     string
	Title       string
	Context     string
	Tone        string
	CTA         string
}

func RenderOutreach(data OutreachData) (string, error) {
	return render(outreachTmpl, data)
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

// OrPlaceholder substitutes an explicit placeholder for empty optional lead
// fields so the prompt never carries a blank slot.
func OrPlaceholder(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return value
}
