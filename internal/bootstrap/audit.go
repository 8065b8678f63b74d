package bootstrap

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"timecraft/internal/shared/contextutil"
)

// AuditLog is one completed request as seen at the edge.
type AuditLog struct {
	RequestID string
	Method    string
	Path      string
	Status    int
	UserID    string
	ClientIP  string
	Latency   time.Duration
}

type AuditLogger interface {
	Log(entry AuditLog)
}

// ZapAuditLogger writes access entries through the shared zap logger.
type ZapAuditLogger struct {
	logger *zap.Logger
}

func NewZapAuditLogger(logger *zap.Logger) *ZapAuditLogger {
	return &ZapAuditLogger{logger: logger.Named("audit")}
}

func (a *ZapAuditLogger) Log(entry AuditLog) {
	a.logger.Info("request",
		zap.String("request_id", entry.RequestID),
		zap.String("method", entry.Method),
		zap.String("path", entry.Path),
		zap.Int("status", entry.Status),
		zap.String("user_id", entry.UserID),
		zap.String("client_ip", entry.ClientIP),
		zap.Duration("latency", entry.Latency),
	)
}

// AuditMiddleware records every request after the handler chain finishes.
func AuditMiddleware(audit AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		userID, _ := contextutil.UserID(c)
		audit.Log(AuditLog{
			RequestID: contextutil.RequestID(c),
			Method:    c.Request.Method,
			Path:      c.FullPath(),
			Status:    c.Writer.Status(),
			UserID:    userID,
			ClientIP:  c.ClientIP(),
			Latency:   time.Since(start),
		})
	}
}
