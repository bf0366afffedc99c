package email

import "github.com/rs/zerolog"

type consoleService struct {
	logger zerolog.Logger
}

var _ Service = (*consoleService)(nil)

// NewConsoleService creates a Service that only logs messages. Used when no
// SendGrid key is configured (development, tests).
func NewConsoleService(logger zerolog.Logger) Service {
	return &consoleService{logger: logger}
}

func (s *consoleService) SendGradeUpdated(toEmail, firstName, lastName string, classNumber int64) error {
	s.logger.Info().
		Str("to", toEmail).
		Int64("classNumber", classNumber).
		Msg("Grade update email (console delivery)")
	return nil
}

func (s *consoleService) SendAccountCreated(toEmail, firstName, username string) error {
	s.logger.Info().
		Str("to", toEmail).
		Str("username", username).
		Msg("Account created email (console delivery)")
	return nil
}
