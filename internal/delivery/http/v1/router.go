package v1

import (
	"net/http"
	"time"

	"ninetytozero-backend/config"
	"ninetytozero-backend/internal/delivery/http/middleware"
	"ninetytozero-backend/internal/delivery/http/response"
	"ninetytozero-backend/internal/domain"
	"ninetytozero-backend/pkg/apperror"
	"ninetytozero-backend/pkg/metrics"
	"ninetytozero-backend/pkg/security"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type RouterDeps struct {
	Config      *config.Config
	AuthUC      domain.AuthUsecase
	CompanyUC   domain.CompanyProfileUsecase
	CandidateUC domain.CandidateProfileUsecase
	NBFCUC      domain.NBFCProfileUsecase
	BuyoutUC    domain.BuyoutUsecase
	Health      HealthChecker

	RateLimiter  *middleware.RateLimiter
	LoginTracker *security.LoginTracker
	SecurityLog  *security.SecurityLogger
	Metrics      *metrics.Metrics
	Logger       *zap.SugaredLogger
}

// NewRouter wires middleware and all routes under cfg.APIPrefix.
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	if deps.Logger == nil {
		deps.Logger = zap.NewNop().Sugar()
	}
	if deps.RateLimiter == nil {
		deps.RateLimiter = middleware.NewRateLimiter(nil, deps.SecurityLog)
	}
	if deps.LoginTracker == nil {
		deps.LoginTracker = security.NewLoginTracker(nil, security.DefaultLoginTrackerConfig(), deps.SecurityLog)
	}

	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second

	r := gin.New()
	r.HandleMethodNotAllowed = true

	// CORS must be first so preflights short-circuit.
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins, cfg.IsProduction()))
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger(deps.Logger))
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}
	r.Use(middleware.SecurityHeadersMiddleware(cfg.IsProduction()))
	r.Use(middleware.ErrorHandler(deps.SecurityLog))

	r.NoRoute(func(c *gin.Context) {
		response.AppError(c, apperror.NotFound("Route not found"))
	})
	r.NoMethod(func(c *gin.Context) {
		response.Error(c, http.StatusMethodNotAllowed, apperror.KindNotFound, "Method not allowed", nil)
	})

	api := r.Group(cfg.APIPrefix)

	// Operational endpoints are not rate limited.
	NewHealthHandler(api, deps.Health)
	if deps.Metrics != nil {
		api.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	public := api.Group("")
	public.Use(deps.RateLimiter.Middleware(middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, window)))

	protected := public.Group("")
	protected.Use(middleware.AuthMiddleware(deps.AuthUC, deps.SecurityLog))

	NewAuthHandler(public, protected, deps.AuthUC, deps.LoginTracker, deps.SecurityLog, deps.Metrics,
		deps.RateLimiter.Middleware(middleware.LoginRateLimitConfig(cfg.RateLimitLoginThreshold, window)))
	NewBuyoutHandler(public, deps.BuyoutUC)

	NewProfileHandler(protected, "/companies/profile", "Company", deps.CompanyUC)
	NewProfileHandler(protected, "/candidates/profile", "Candidate", deps.CandidateUC)
	NewProfileHandler(protected, "/nbfc/profile", "NBFC", deps.NBFCUC)

	return r
}
