package v1

import (
	"encoding/json"
	"errors"
	"io"

	"ninetytozero-backend/internal/delivery/http/middleware"
	"ninetytozero-backend/internal/domain"
	"ninetytozero-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// bindJSON decodes the request body into dst. Malformed bodies are reported
// as validation errors; field rules are checked later by the usecases.
func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		_ = c.Error(apperror.Validation("Request body is required"))
	case errors.As(err, &typeErr) && typeErr.Field != "":
		_ = c.Error(apperror.Validation("Invalid request body", typeErr.Field+": must be of type "+typeErr.Type.String()))
	default:
		_ = c.Error(apperror.Validation("Invalid request body", "body: malformed JSON"))
	}
	return false
}

// currentUser fetches the authenticated user or records an Unauthorized error.
func currentUser(c *gin.Context) (*domain.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		_ = c.Error(apperror.Unauthorized("User not authenticated"))
	}
	return user, ok
}
