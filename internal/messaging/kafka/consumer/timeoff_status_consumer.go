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

// ConsumeTimeoffStatus tells the requester how their request was decided.
func ConsumeTimeoffStatus(
	ctx context.Context,
	reader *kafkago.Reader,
	mailService queuedmail.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.timeoff_status")
	log.Info("timeoff status consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("timeoff status consumer stopped")
				return
			}
			log.Error("fetch timeoff status message failed", zap.Error(err))
			continue
		}

		var event events.TimeoffStatusEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode timeoff status event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		body, err := mailer.Render(mailer.TimeoffStatusTemplate, event)
		if err != nil {
			log.Error("render timeoff status mail failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		subject := fmt.Sprintf("Your %s time off request is now %s", event.Type, event.ToStatus)
		if err := mailService.Deliver(ctx, event.Email, subject, body); err != nil {
			log.Error("deliver timeoff status mail failed",
				zap.String("to", event.Email),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit timeoff status message failed", zap.Error(err))
			continue
		}

		log.Info("timeoff decision mailed",
			zap.String("to", event.Email),
			zap.String("to_status", event.ToStatus),
		)
	}
}
