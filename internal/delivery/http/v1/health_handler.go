package v1

import (
	"context"
	"net/http"
	"time"

	"ninetytozero-backend/internal/delivery/http/response"
	"ninetytozero-backend/internal/domain"
	"ninetytozero-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// HealthChecker reports per-dependency status.
type HealthChecker interface {
	Check(ctx context.Context) (map[string]string, bool)
}

type HealthHandler struct {
	checker HealthChecker
}

func NewHealthHandler(public *gin.RouterGroup, checker HealthChecker) {
	handler := &HealthHandler{checker: checker}
	public.GET("/health", handler.Health)
}

// Health godoc
// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status, healthy := h.checker.Check(ctx)
	if !healthy {
		c.JSON(http.StatusServiceUnavailable, response.Response{
			Success:   false,
			Message:   "System degraded",
			Data:      status,
			Error:     &response.ErrorDetail{Kind: apperror.KindUnavailable},
			RequestID: c.GetString(string(domain.KeyRequestID)),
		})
		return
	}
	response.Success(c, http.StatusOK, "System operational", status)
}
