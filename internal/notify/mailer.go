package notify

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Message is a rendered email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers a message and returns the provider's message id.
type Mailer interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// LogMailer writes messages to the log instead of delivering them.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(ctx context.Context, msg Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id := "mock-" + uuid.New().String()
	m.logger.Info("mock email", "message_id", id, "to", msg.To, "subject", msg.Subject, "body", msg.Body)
	return id, nil
}
