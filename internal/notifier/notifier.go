// Package notifier delivers one-off messages such as verification codes and
// password reset links. Delivery failures are reported to the caller, which
// decides whether they matter.
package notifier

import (
	"context"

	"vyaha-be/internal/config"
	"vyaha-be/internal/logger"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// New returns an SMTP notifier when SMTP_HOST is configured and a logging
// notifier otherwise.
func New(cfg *config.Config) Notifier {
	if cfg.SMTPHost == "" {
		logger.L().Warn("SMTP_HOST not set, messages will only be logged")
		return &LogNotifier{}
	}
	return NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
}

type SMTPNotifier struct {
	from string
	send func(m *gomail.Message) error
}

func NewSMTP(host string, port int, user, pass, from string) *SMTPNotifier {
	if from == "" {
		from = user
	}
	d := gomail.NewDialer(host, port, user, pass)
	return &SMTPNotifier{
		from: from,
		send: func(m *gomail.Message) error { return d.DialAndSend(m) },
	}
}

func (n *SMTPNotifier) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := n.send(m); err != nil {
		logger.FromCtx(ctx).Error("smtp send failed",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// LogNotifier writes messages to the log. Used in development.
type LogNotifier struct{}

func (LogNotifier) Send(ctx context.Context, to, subject, body string) error {
	logger.FromCtx(ctx).Info("notification",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}
