package mail

// OutreachEmailData feeds the outreach email template.
type OutreachEmailData struct {
	ContactName string
	Company     string
	Draft       string
}
