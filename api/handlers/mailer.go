package handlers

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	templates "github.com/Dipto6969/Police-Positive/templates/html"
)

// Mailer sends transactional mail for lifecycle events
type Mailer interface {
	SendOfficerAssigned(toEmail, toName, officerName, caseNumber string) error
}

type sendGridMailer struct {
	apiKey string
}

// NewSendGridMailer returns a SendGrid backed mailer, or nil when no
// API key is configured so callers can skip email entirely.
func NewSendGridMailer(apiKey string) Mailer {
	if apiKey == "" {
		zap.S().Info("sendgrid api key not set, assignment emails disabled")
		return nil
	}
	return &sendGridMailer{apiKey: apiKey}
}

func (m *sendGridMailer) SendOfficerAssigned(toEmail, toName, officerName, caseNumber string) error {
	from := mail.NewEmail("Police Positive", "no-reply@police-positive.app")
	to := mail.NewEmail(toName, toEmail)
	subject := fmt.Sprintf("Officer assigned to your case %s", caseNumber)
	plain := fmt.Sprintf("Hello %s,\n\n%s has been assigned to your case %s. You can follow progress on the tracking page.\n", toName, officerName, caseNumber)
	html := templates.RenderOfficerAssignedEmail(toName, officerName, caseNumber)

	message := mail.NewSingleEmail(from, subject, to, plain, html)
	client := sendgrid.NewSendClient(m.apiKey)
	resp, err := client.Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	zap.S().Infow("assignment email sent", "caseNumber", caseNumber, "status", resp.StatusCode)
	return nil
}
