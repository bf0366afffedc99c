package email

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendgridConfig holds SendGrid settings.
type SendgridConfig struct {
	APIKey    string
	FromName  string
	FromEmail string
}

type sendgridService struct {
	client *sendgrid.Client
	from   *sgmail.Email
	logger zerolog.Logger
}

var _ Service = (*sendgridService)(nil)

// NewSendgridService creates a Service backed by the SendGrid API.
func NewSendgridService(cfg SendgridConfig, logger zerolog.Logger) Service {
	return &sendgridService{
		client: sendgrid.NewSendClient(cfg.APIKey),
		from:   sgmail.NewEmail(cfg.FromName, cfg.FromEmail),
		logger: logger,
	}
}

func (s *sendgridService) SendGradeUpdated(toEmail, firstName, lastName string, classNumber int64) error {
	subject := "Grade Update"
	body := gradeUpdatedBody(firstName, lastName, classNumber)
	return s.send(toEmail, fmt.Sprintf("%s %s", firstName, lastName), subject, body)
}

func (s *sendgridService) SendAccountCreated(toEmail, firstName, username string) error {
	subject := "Your Grading System Account"
	body := accountCreatedBody(firstName, username)
	return s.send(toEmail, firstName, subject, body)
}

func (s *sendgridService) send(toEmail, toName, subject, htmlBody string) error {
	to := sgmail.NewEmail(toName, toEmail)
	msg := sgmail.NewSingleEmail(s.from, subject, to, "", htmlBody)

	resp, err := s.client.Send(msg)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}

	s.logger.Debug().Str("to", toEmail).Str("subject", subject).Int("status", resp.StatusCode).Msg("Email sent")
	return nil
}
