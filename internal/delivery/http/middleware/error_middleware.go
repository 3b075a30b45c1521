package middleware

import (
	"errors"
	"net/http"

	"ninetytozero-backend/internal/delivery/http/response"
	"ninetytozero-backend/pkg/apperror"
	"ninetytozero-backend/pkg/logger"
	"ninetytozero-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error a handler attached with c.Error.
// Role violations are also reported to secLog.
func ErrorHandler(secLog *security.SecurityLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Kind != apperror.KindInternal {
			if appErr.Kind == apperror.KindForbidden {
				secLog.Log(c.Request.Context(), security.SecurityEvent{
					Event:        security.EventForbidden,
					SubjectType:  "user_id",
					SubjectValue: c.GetString(userIDKey),
					IP:           c.ClientIP(),
					RequestID:    c.GetString(requestIDKey),
					Details:      map[string]any{"method": c.Request.Method, "path": c.FullPath()},
				})
			}
			response.AppError(c, appErr)
			return
		}

		// Never expose internal error details to clients.
		logger.Log.Errorw("internal server error",
			"error", err,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"request_id", c.GetString(requestIDKey),
		)
		response.Error(c, http.StatusInternalServerError, apperror.KindInternal,
			"An unexpected error occurred. Please try again later.", nil)
	}
}

// Recovery turns panics into the opaque 500 envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Log.Errorw("panic recovered",
			"panic", recovered,
			"path", c.Request.URL.Path,
			"request_id", c.GetString(requestIDKey),
		)
		response.Error(c, http.StatusInternalServerError, apperror.KindInternal,
			"An unexpected error occurred. Please try again later.", nil)
		c.Abort()
	})
}
