package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"timecraft/internal/events"
	"timecraft/internal/mailer"
	"timecraft/internal/messaging/kafka/consumer"
	"timecraft/internal/queuedmail"
	"timecraft/internal/shared/connection"
)

const mailerGroupID = "timecraft-mailer"

// RunMailer consumes the notification topics and turns events into mail.
// One consumer group, one reader per topic, all sharing a delivery log.
func RunMailer() error {
	logger := zap.L().Named("app.mailer")

	gormDB, err := connection.ConnectGORMWithRetry(5, 3*time.Second)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	sender := mailer.NewSenderFromEnv(logger)
	mailRepo := queuedmail.NewRepository(gormDB)
	mailService := queuedmail.NewService(sqlDB, mailRepo, sender)

	hrEmail := os.Getenv("HR_NOTIFY_EMAIL")
	if hrEmail == "" {
		hrEmail = "hr@timecraft.local"
	}

	requestUserReader := connection.NewKafkaReader(events.TimeoffRequestUserTopic, mailerGroupID)
	defer requestUserReader.Close()
	hrReader := connection.NewKafkaReader(events.TimeoffHRTopic, mailerGroupID)
	defer hrReader.Close()
	statusReader := connection.NewKafkaReader(events.TimeoffRequestStatusTopic, mailerGroupID)
	defer statusReader.Close()
	welcomeReader := connection.NewKafkaReader(events.WelcomeUserTopic, mailerGroupID)
	defer welcomeReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeTimeoffRequestUser(ctx, requestUserReader, mailService, logger)
	go consumer.ConsumeTimeoffHR(ctx, hrReader, mailService, hrEmail, logger)
	go consumer.ConsumeTimeoffStatus(ctx, statusReader, mailService, logger)
	go consumer.ConsumeWelcomeUser(ctx, welcomeReader, mailService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("mailer shutting down")
	cancel()

	return nil
}
