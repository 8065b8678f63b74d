package main

import (
	"timecraft/internal/app"
	"timecraft/internal/shared/apperror"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	if err := app.RunMailer(); err != nil {
		logger.Fatal("run mailer failed", zap.Error(err))
	}
}
