package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/mzidar/adriatic-eod/internal/config"
	"github.com/mzidar/adriatic-eod/internal/pipeline"
)

// Mailer emails run outcomes over SMTP.
type Mailer struct {
	cfg    config.SMTPConfig
	logger *slog.Logger
}

// NewMailer creates a Mailer from SMTP config.
func NewMailer(cfg config.SMTPConfig, logger *slog.Logger) *Mailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mailer{cfg: cfg, logger: logger}
}

// Notify sends the outcome mail.
func (m *Mailer) Notify(ctx context.Context, o pipeline.Outcome) error {
	subject, body := formatOutcome(o)

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("set from address: %w", err)
	}
	if err := msg.To(m.cfg.To...); err != nil {
		return fmt.Errorf("set to addresses: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
	)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send outcome mail: %w", err)
	}

	m.logger.Info("outcome mail sent", "run_id", o.RunID, "status", o.Status)
	return nil
}

// formatOutcome builds the mail subject and plain-text body.
func formatOutcome(o pipeline.Outcome) (subject, body string) {
	if o.Success() {
		subject = "Daily prices updated successfully"
		body = fmt.Sprintf(
			"Daily prices have been updated.\n\nrun id:    %s\nprocessed: %d\nskipped:   %d\nfailed:    %d\nduration:  %s\n",
			o.RunID, o.Processed, o.Skipped, o.Failed, o.Duration.Round(time.Millisecond),
		)
		return subject, body
	}

	subject = "Daily price sync failed"
	body = fmt.Sprintf(
		"The daily price sync aborted.\n\nrun id: %s\ncause:  %v\n",
		o.RunID, o.Err,
	)
	return subject, body
}
