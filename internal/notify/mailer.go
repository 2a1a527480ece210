package notify

import (
	"context"
	"log/slog"
)

// Mailer delivers the author-notice emails. Delivery is best effort and
// out of scope here; the real transport lives behind this interface.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogMailer is the stand-in Mailer used until a real transport is wired in.
// It records every send in the log and always succeeds.
type LogMailer struct {
	log *slog.Logger
}

func NewLogMailer(log *slog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	m.log.Info("mail sent", "to", to, "subject", subject)
	return nil
}
