package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// requestIDMiddleware tags every request with an id and writes one access log
// line per request. An id supplied by the client is kept, otherwise a fresh
// uuid is generated.
func (h *Handler) requestIDMiddleware(c *gin.Context) {
	reqID := c.GetHeader(requestIDHeader)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	c.Writer.Header().Set(requestIDHeader, reqID)
	c.Set("requestId", reqID)

	start := time.Now()
	c.Next()

	if h.log != nil {
		h.log.Infow("http_request",
			"request_id", reqID,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
