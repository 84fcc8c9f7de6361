package middleware

import (
	"net/http"
	"time"

	"datasentry/internal"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestIDHeader carries the request id back to the client
const RequestIDHeader = "X-Request-Id"

// Wrap puts the net/http middleware stack in front of the gin engine:
// request ids, client IP from proxy headers, and panic recovery.
func Wrap(h http.Handler) http.Handler {
	return chi.Chain(chimw.RequestID, chimw.RealIP, chimw.Recoverer).Handler(h)
}

// RequestLogger logs one line per request at Info, or Warn for 5xx
func RequestLogger(logger *internal.Logger) gin.HandlerFunc {
	logger = logger.OrDefault()
	return func(c *gin.Context) {
		start := time.Now()
		reqID := chimw.GetReqID(c.Request.Context())
		if reqID != "" {
			c.Header(RequestIDHeader, reqID)
		}

		c.Next()

		status := c.Writer.Status()
		if status >= http.StatusInternalServerError {
			logger.Warn("[API] %s %s -> %d in %v (request %s): %s",
				c.Request.Method, c.Request.URL.Path, status, time.Since(start), reqID, c.Errors.String())
			return
		}
		logger.Info("[API] %s %s -> %d in %v (request %s)",
			c.Request.Method, c.Request.URL.Path, status, time.Since(start), reqID)
	}
}
