package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"stockmaster/pkg/logger"
)

// HeaderRequestID carries the client-supplied or generated request id.
const HeaderRequestID = "X-Request-ID"

// RequestID attaches a request id to the context so every log line emitted
// while serving the request can be correlated. The id is echoed back in the
// response headers.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := logger.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Set("request_id", requestID)
		c.Header(HeaderRequestID, requestID)

		c.Next()
	}
}
