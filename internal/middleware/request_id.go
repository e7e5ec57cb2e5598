package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the correlation id on both request and response.
const RequestIDHeader = "X-Request-ID"

// RequestID attaches a correlation id to every request: the client's
// own id when it sends one, a fresh UUID otherwise. The id is echoed in
// the response headers and stored in the context for log lines.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("requestID", id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}
