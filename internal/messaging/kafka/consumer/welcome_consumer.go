package consumer

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"timecraft/internal/events"
	"timecraft/internal/mailer"
	"timecraft/internal/queuedmail"
)

// ConsumeWelcomeUser greets freshly registered accounts.
func ConsumeWelcomeUser(
	ctx context.Context,
	reader *kafkago.Reader,
	mailService queuedmail.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.welcome_user")
	log.Info("welcome user consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("welcome user consumer stopped")
				return
			}
			log.Error("fetch welcome user message failed", zap.Error(err))
			continue
		}

		var event events.WelcomeUserEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode welcome user event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		body, err := mailer.Render(mailer.WelcomeUserTemplate, event)
		if err != nil {
			log.Error("render welcome mail failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := mailService.Deliver(ctx, event.Email, "Welcome to TimeCraft", body); err != nil {
			log.Error("deliver welcome mail failed",
				zap.String("to", event.Email),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit welcome user message failed", zap.Error(err))
			continue
		}

		log.Info("welcome mail queued", zap.String("to", event.Email))
	}
}
