package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"timecraft/internal/shared/contextutil"
)

const requestIDHeader = "X-Request-ID"

// RequestID attaches a correlation id to every request, reusing the caller's
// header when present so ids survive proxy hops.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(contextutil.RequestIDKey, id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}
