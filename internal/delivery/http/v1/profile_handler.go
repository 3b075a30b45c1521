package v1

import (
	"net/http"

	"ninetytozero-backend/internal/delivery/http/response"
	"ninetytozero-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// ProfileHandler serves create/get/update for one profile kind. The usecase
// enforces ownership and role; the handler only decodes and renders.
type ProfileHandler[P any, C any, U any] struct {
	profileUC domain.ProfileUsecase[P, C, U]
	label     string
}

// NewProfileHandler registers POST, GET and PUT on path under protected.
func NewProfileHandler[P any, C any, U any](
	protected *gin.RouterGroup,
	path string,
	label string,
	profileUC domain.ProfileUsecase[P, C, U],
) {
	handler := &ProfileHandler[P, C, U]{profileUC: profileUC, label: label}

	protected.POST(path, handler.Create)
	protected.GET(path, handler.Get)
	protected.PUT(path, handler.Update)
}

func (h *ProfileHandler[P, C, U]) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req C
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.profileUC.Create(c.Request.Context(), user, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, h.label+" profile created successfully", profile)
}

func (h *ProfileHandler[P, C, U]) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	profile, err := h.profileUC.Get(c.Request.Context(), user)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, h.label+" profile retrieved successfully", profile)
}

func (h *ProfileHandler[P, C, U]) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req U
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.profileUC.Update(c.Request.Context(), user, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, h.label+" profile updated successfully", profile)
}
