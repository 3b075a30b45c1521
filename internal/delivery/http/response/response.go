package response

import (
	"ninetytozero-backend/internal/domain"
	"ninetytozero-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// Response standardizes the API JSON response
type Response struct {
	Success   bool         `json:"success"`
	Message   string       `json:"message"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	RequestID string       `json:"requestId,omitempty"`
} // @name Response

// ErrorDetail is the machine readable part of a failed response.
type ErrorDetail struct {
	Kind    apperror.Kind `json:"kind"`
	Details []string      `json:"details,omitempty"`
} // @name ErrorDetail

func requestID(c *gin.Context) string {
	id, _ := c.Get(string(domain.KeyRequestID))
	idStr, _ := id.(string)
	return idStr
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: requestID(c),
	})
}

// Error sends an error response
func Error(c *gin.Context, code int, kind apperror.Kind, message string, details []string) {
	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		Error:     &ErrorDetail{Kind: kind, Details: details},
		RequestID: requestID(c),
	})
}

// AppError renders e with its own status code.
func AppError(c *gin.Context, e *apperror.AppError) {
	Error(c, e.Code, e.Kind, e.Message, e.Details)
}
