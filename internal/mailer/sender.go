package mailer

import (
	"context"
	"os"
	"strconv"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"
)

// Sender delivers a single rendered message to one recipient.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

type smtpSender struct {
	dialer *gomail.Dialer
	from   string
	logger *zap.Logger
}

// NewSenderFromEnv builds an SMTP sender from SMTP_* variables. Without
// SMTP_HOST the mailer falls back to logging messages instead of sending,
// which keeps local compose setups working without a mail relay.
func NewSenderFromEnv(logger *zap.Logger) Sender {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		logger.Warn("SMTP_HOST not set, mail delivery falls back to logging")
		return &logSender{logger: logger.Named("mailer.log")}
	}

	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port == 0 {
		port = 587
	}

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = os.Getenv("SMTP_USER")
	}

	return &smtpSender{
		dialer: gomail.NewDialer(host, port, os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASSWORD")),
		from:   from,
		logger: logger.Named("mailer.smtp"),
	}
}

func (s *smtpSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error("smtp send failed", zap.String("to", to), zap.Error(err))
		return err
	}

	s.logger.Info("mail sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

type logSender struct {
	logger *zap.Logger
}

func (s *logSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	s.logger.Info("mail delivery skipped, smtp not configured",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return nil
}
