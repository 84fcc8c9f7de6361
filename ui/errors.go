package ui

import (
	stderrors "errors"
	"net/http"

	"datasentry/internal/errors"

	"github.com/gin-gonic/gin"
)

// statusForCode maps an application error code to its HTTP status
func statusForCode(code string) int {
	switch {
	case errors.IsNotFound(code):
		return http.StatusNotFound
	case code == errors.CodeFileTooLarge:
		return http.StatusRequestEntityTooLarge
	case errors.IsInputError(code):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error", "code"}. Internal failures are logged and
// answered with a generic message.
func (s *Server) respondError(c *gin.Context, err error) {
	code := errors.CodeInternalError
	if errors.IsAppError(err) {
		code = errors.GetCode(err)
	}
	status := statusForCode(code)

	message := err.Error()
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		message = appErr.Message
	}
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		s.logger.Error("[API] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		message = "Internal server error"
	}

	c.AbortWithStatusJSON(status, gin.H{"error": message, "code": code})
}
