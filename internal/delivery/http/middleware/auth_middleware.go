package middleware

import (
	"strings"

	"ninetytozero-backend/internal/delivery/http/response"
	"ninetytozero-backend/internal/domain"
	"ninetytozero-backend/pkg/apperror"
	"ninetytozero-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

const (
	userKey     = string(domain.KeyUser)
	userIDKey   = string(domain.KeyUserID)
	userRoleKey = string(domain.KeyUserRole)
)

// AuthMiddleware requires a valid bearer access token for an active user
// and stores that user on the context. Rejected tokens are reported to secLog.
func AuthMiddleware(authUC domain.AuthUsecase, secLog *security.SecurityLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Header("WWW-Authenticate", "Bearer")
			response.AppError(c, apperror.Unauthorized("Authorization header with Bearer token required"))
			c.Abort()
			return
		}

		user, err := authUC.Authenticate(c.Request.Context(), token)
		if err != nil {
			if kind := apperror.KindOf(err); kind == apperror.KindUnauthorized {
				c.Header("WWW-Authenticate", "Bearer")
				secLog.Log(c.Request.Context(), security.SecurityEvent{
					Event:     security.EventTokenRejected,
					IP:        c.ClientIP(),
					UserAgent: c.GetHeader("User-Agent"),
					RequestID: c.GetString(requestIDKey),
					Details:   map[string]any{"reason": err.Error()},
				})
			}
			_ = c.Error(err)
			c.Abort()
			return
		}

		c.Set(userKey, user)
		c.Set(userIDKey, user.ID)
		c.Set(userRoleKey, string(user.Role))
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// CurrentUser returns the user set by AuthMiddleware.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok && user != nil
}
