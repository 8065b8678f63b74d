package main

import (
	"timecraft/internal/app"
	"timecraft/internal/bootstrap"
	"timecraft/internal/middleware"
	"timecraft/internal/shared/apperror"

	"github.com/gin-gonic/gin"
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

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(bootstrap.AuditMiddleware(bootstrap.NewZapAuditLogger(logger)))

	if err := app.BuildApp(r); err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}

	if err := bootstrap.StartHTTPServer(r, bootstrap.DefaultServerConfig(), logger); err != nil {
		logger.Fatal("http server failed", zap.Error(err))
	}
}
