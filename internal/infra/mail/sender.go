package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"
)

const outreachBodyTemplate = `Hi {{.ContactName}},

{{.Draft}}

--
Sent via Leadflow
`

var outreachTmpl = template.Must(template.New("outreach_email").Parse(outreachBodyTemplate))

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

// SendDraft delivers an approved outreach draft over SMTP.
func (s *EmailSender) SendDraft(to, contactName, company, draft string) error {
	data := OutreachEmailData{
		ContactName: contactName,
		Company:     company,
		Draft:       draft,
	}

	var body bytes.Buffer
	if err := outreachTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Quick idea for %s", company))
	m.SetBody("text/plain", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send SMTP email: %w", err)
	}

	return nil
}
