package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"timecraft/internal/events"
	"timecraft/internal/mailer"
	"timecraft/internal/queuedmail"
)

// ConsumeTimeoffRequestUser acknowledges every submitted request to the
// requester by mail.
func ConsumeTimeoffRequestUser(
	ctx context.Context,
	reader *kafkago.Reader,
	mailService queuedmail.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.timeoff_request_user")
	log.Info("timeoff request user consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("timeoff request user consumer stopped")
				return
			}
			log.Error("fetch timeoff request user message failed", zap.Error(err))
			continue
		}

		var event events.TimeoffRequestUserEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode timeoff request user event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		body, err := mailer.Render(mailer.TimeoffRequestUserTemplate, event)
		if err != nil {
			log.Error("render timeoff request user mail failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		subject := fmt.Sprintf("Your %s time off request was received", event.Type)
		if err := mailService.Deliver(ctx, event.Email, subject, body); err != nil {
			log.Error("deliver timeoff request user mail failed",
				zap.String("to", event.Email),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit timeoff request user message failed", zap.Error(err))
			continue
		}

		log.Info("timeoff request acknowledged to user", zap.String("to", event.Email))
	}
}

// ConsumeTimeoffHR notifies the HR inbox about every new request so someone
// picks it up for review.
func ConsumeTimeoffHR(
	ctx context.Context,
	reader *kafkago.Reader,
	mailService queuedmail.Service,
	hrEmail string,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.timeoff_hr")
	log.Info("timeoff hr consumer started", zap.String("hr_email", hrEmail))

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("timeoff hr consumer stopped")
				return
			}
			log.Error("fetch timeoff hr message failed", zap.Error(err))
			continue
		}

		var event events.TimeoffHREvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode timeoff hr event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		body, err := mailer.Render(mailer.TimeoffHRTemplate, event)
		if err != nil {
			log.Error("render timeoff hr mail failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		subject := fmt.Sprintf("New %s time off request from %s %s",
			event.Type, event.UserFirstName, event.UserLastName)
		if err := mailService.Deliver(ctx, hrEmail, subject, body); err != nil {
			log.Error("deliver timeoff hr mail failed", zap.Error(err))
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit timeoff hr message failed", zap.Error(err))
			continue
		}

		log.Info("timeoff request forwarded to hr",
			zap.String("employee", event.UserFirstName+" "+event.UserLastName),
		)
	}
}
