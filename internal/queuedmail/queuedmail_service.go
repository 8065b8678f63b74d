package queuedmail

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"timecraft/internal/mailer"
)

const maxSendTries = 3

//go:generate mockgen -source=queuedmail_service.go -destination=mock/queuedmail_service_mock.go -package=mock
type Service interface {
	Deliver(ctx context.Context, to, subject, body string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	sender mailer.Sender
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, sender mailer.Sender, logger ...*zap.Logger) Service {
	l := zap.L().Named("queuedmail.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("queuedmail.service")
	}
	return &service{db: db, repo: repo, sender: sender, logger: l}
}

// Deliver records the message, attempts the send with a bounded number of
// retries and persists the outcome. A mail relay failure is absorbed into
// the FAILED row rather than returned, so callers only see storage errors.
func (s *service) Deliver(ctx context.Context, to, subject, body string) error {
	m := &QueuedMail{
		ID:        uuid.New(),
		Recipient: to,
		Subject:   subject,
		Body:      body,
		Status:    StatusQueued,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("deliver mail begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, m); err != nil {
		s.logger.Error("record queued mail failed", zap.String("to", to), zap.Error(err))
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	var sendErr error
	for m.SendTries < maxSendTries {
		m.SendTries++
		if sendErr = s.sender.Send(ctx, to, subject, body); sendErr == nil {
			break
		}
		s.logger.Warn("mail send attempt failed",
			zap.String("mail_id", m.ID.String()),
			zap.String("to", to),
			zap.Int("try", m.SendTries),
			zap.Error(sendErr),
		)
	}

	if sendErr == nil {
		now := time.Now().UTC()
		m.Status = StatusSent
		m.SentAt = &now
		m.LastError = ""
	} else {
		m.Status = StatusFailed
		m.LastError = sendErr.Error()
	}

	if err := s.repo.Update(ctx, m); err != nil {
		s.logger.Error("update queued mail failed", zap.String("mail_id", m.ID.String()), zap.Error(err))
		return err
	}

	if sendErr != nil {
		s.logger.Error("mail delivery exhausted retries",
			zap.String("mail_id", m.ID.String()),
			zap.String("to", to),
			zap.Int("tries", m.SendTries),
		)
	}
	return nil
}
