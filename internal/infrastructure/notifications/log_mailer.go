package notifications

import (
	"context"
	"log/slog"

	"github.com/keaton678/research-hub/domain"
)

// LogMailer writes messages to the log instead of sending them. Used in
// development and whenever no Postmark token is configured.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a mailer that only logs.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send implements domain.Mailer.
func (m *LogMailer) Send(_ context.Context, msg domain.Email) error {
	m.logger.Info("email not sent, delivery disabled",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.String("tag", msg.Tag),
	)
	return nil
}
