package v1

import (
	"net/http"
	"strconv"

	"ninetytozero-backend/internal/delivery/http/response"
	"ninetytozero-backend/internal/domain"
	"ninetytozero-backend/pkg/apperror"
	"ninetytozero-backend/pkg/logger"
	"ninetytozero-backend/pkg/metrics"
	"ninetytozero-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC   domain.AuthUsecase
	tracker  *security.LoginTracker
	security *security.SecurityLogger
	metrics  *metrics.Metrics
}

// NewAuthHandler registers the auth routes. loginLimit guards the login route.
func NewAuthHandler(
	public *gin.RouterGroup,
	protected *gin.RouterGroup,
	authUC domain.AuthUsecase,
	tracker *security.LoginTracker,
	secLog *security.SecurityLogger,
	m *metrics.Metrics,
	loginLimit gin.HandlerFunc,
) {
	handler := &AuthHandler{
		authUC:   authUC,
		tracker:  tracker,
		security: secLog,
		metrics:  m,
	}

	publicAuth := public.Group("/auth")
	{
		publicAuth.POST("/register", handler.Register)
		publicAuth.POST("/login", loginLimit, handler.Login)
		publicAuth.POST("/refresh", handler.Refresh)
	}

	protected.GET("/auth/me", handler.Me)
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
} // @name RefreshRequest

// Register godoc
// @Summary      Register a user
// @Description  Create a company, candidate or NBFC account.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        register  body      domain.RegisterInput  true  "Registration details"
// @Success      201       {object}  response.Response{data=domain.User}
// @Failure      409       {object}  response.Response
// @Failure      422       {object}  response.Response
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req domain.RegisterInput
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authUC.Register(c.Request.Context(), &req)
	if err != nil {
		h.metrics.AuthEvent("register", string(apperror.KindOf(err)))
		_ = c.Error(err)
		return
	}

	h.metrics.AuthEvent("register", "success")
	h.security.Log(c.Request.Context(), security.SecurityEvent{
		Event:        security.EventRegistered,
		SubjectType:  "user_id",
		SubjectValue: user.ID,
		IP:           c.ClientIP(),
		RequestID:    c.GetString(string(domain.KeyRequestID)),
		Details:      map[string]any{"role": string(user.Role)},
	})
	response.Success(c, http.StatusCreated, "User registered successfully", user)
}

// Login godoc
// @Summary      Log in
// @Description  Exchange email and password for an access and refresh token pair.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login  body      domain.LoginInput  true  "Credentials"
// @Success      200    {object}  response.Response{data=domain.LoginResult}
// @Failure      401    {object}  response.Response
// @Failure      429    {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginInput
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	email := domain.NormalizeEmail(req.Email)
	ip := c.ClientIP()
	requestID := c.GetString(string(domain.KeyRequestID))

	blocked, err := h.tracker.IsBlocked(ctx, email, ip)
	if err != nil {
		// fail open: the rate limiter still bounds attempts
		logger.Log.Warnw("login block check failed", "error", err, "request_id", requestID)
	}
	if blocked {
		h.rejectBlocked(c, email)
		return
	}

	result, err := h.authUC.Login(ctx, &req)
	if err != nil {
		if apperror.KindOf(err) == apperror.KindUnauthorized {
			h.metrics.AuthEvent("login", "failure")
			nowBlocked, _, trackErr := h.tracker.RecordFailedAttempt(ctx, email, ip, c.GetHeader("User-Agent"), requestID)
			if trackErr != nil {
				logger.Log.Warnw("failed to record login attempt", "error", trackErr, "request_id", requestID)
			}
			if nowBlocked {
				h.rejectBlocked(c, email)
				return
			}
		}
		_ = c.Error(err)
		return
	}

	if err := h.tracker.ClearAttempts(ctx, email, ip); err != nil {
		logger.Log.Warnw("failed to clear login attempts", "error", err, "request_id", requestID)
	}
	h.metrics.AuthEvent("login", "success")
	h.security.LogLoginSuccess(ctx, result.User.ID, ip, requestID)

	response.Success(c, http.StatusOK, "Login successful", result)
}

func (h *AuthHandler) rejectBlocked(c *gin.Context, email string) {
	ctx := c.Request.Context()
	h.metrics.AuthEvent("login", "blocked")
	h.security.LogLoginBlocked(ctx, email, c.ClientIP(), c.GetHeader("User-Agent"), c.GetString(string(domain.KeyRequestID)))

	if ttl, ok, err := h.tracker.GetBlockTTL(ctx, email); err == nil && ok {
		c.Header("Retry-After", strconv.Itoa(int(ttl.Seconds())+1))
	}
	_ = c.Error(apperror.TooManyRequests("Too many failed login attempts. Please try again later."))
}

// Refresh godoc
// @Summary      Refresh tokens
// @Description  Exchange a refresh token for a new access token and a rotated refresh token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        refresh  body      RefreshRequest  true  "Refresh token"
// @Success      200      {object}  response.Response{data=domain.TokenPair}
// @Failure      401      {object}  response.Response
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.RefreshToken == "" {
		_ = c.Error(apperror.Validation("Validation failed", "refreshToken: is required"))
		return
	}

	pair, err := h.authUC.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.metrics.AuthEvent("refresh", "failure")
		_ = c.Error(err)
		return
	}

	h.metrics.AuthEvent("refresh", "success")
	response.Success(c, http.StatusOK, "Token refreshed successfully", pair)
}

// Me godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      401  {object}  response.Response
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, "User retrieved successfully", user)
}
