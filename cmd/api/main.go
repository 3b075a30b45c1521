package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ninetytozero-backend/config"
	_ "ninetytozero-backend/docs" // registers the swagger doc
	"ninetytozero-backend/internal/delivery/http/middleware"
	v1 "ninetytozero-backend/internal/delivery/http/v1"
	"ninetytozero-backend/internal/domain"
	"ninetytozero-backend/internal/repository/memory"
	"ninetytozero-backend/internal/repository/postgres"
	"ninetytozero-backend/internal/usecase"
	"ninetytozero-backend/pkg/auth"
	"ninetytozero-backend/pkg/database"
	"ninetytozero-backend/pkg/logger"
	"ninetytozero-backend/pkg/metrics"
	"ninetytozero-backend/pkg/redis"
	"ninetytozero-backend/pkg/security"
	"ninetytozero-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// @title           NinetyToZero API
// @version         1.0
// @description     Notice-period buyout marketplace connecting companies, candidates and NBFCs.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

type stores struct {
	users      domain.UserRepository
	companies  domain.ProfileRepository[domain.CompanyProfile]
	candidates domain.ProfileRepository[domain.CandidateProfile]
	nbfcs      domain.ProfileRepository[domain.NBFCProfile]
	ping       usecase.Pinger
	close      func()

	// nil when events are only logged
	persistEvents func(context.Context, security.SecurityEvent) error
}

func run() error {
	// 1. Config
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// 2. Logger
	if err := logger.Init(cfg.Environment); err != nil {
		return err
	}
	defer logger.Sync()
	for _, w := range cfg.Warnings() {
		logger.Log.Warn(w)
	}
	logger.Log.Infow("starting ninetytozero backend", "port", cfg.Port, "store", cfg.StoreDriver, "env", cfg.Environment)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Storage
	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close()

	// 4. Redis (optional)
	var redisClient *goredis.Client
	if cfg.UpstashRedisURL != "" {
		redisClient, err = redis.NewClient(ctx, redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword})
		if err != nil {
			logger.Log.Warnw("redis unavailable, continuing without it", "error", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	// 5. Security and metrics
	baseLogger := logger.Log.Desugar()
	secLog := security.NewSecurityLogger(baseLogger)
	if st.persistEvents != nil {
		secLog.SetPersistFunc(st.persistEvents)
	}
	tracker := security.NewLoginTracker(redisClient, security.LoginTrackerConfig{
		MaxAttempts:   cfg.FailedLoginMaxAttempts,
		AttemptWindow: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
		BlockDuration: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
		UseIPTracking: true,
	}, secLog)
	limiter := middleware.NewRateLimiter(redisClient, secLog)
	limiter.StartCleanup(ctx, 5*time.Minute)

	m, err := metrics.NewMetrics("ninetytozero")
	if err != nil {
		return err
	}

	// 6. Usecases
	tokens, err := auth.NewTokenManager(auth.TokenConfig{
		AccessSecret:  cfg.JWTSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
		Algorithm:     cfg.JWTAlgorithm,
		AccessTTL:     cfg.AccessTokenTTL,
		RefreshTTL:    cfg.RefreshTokenTTL,
		Issuer:        "ninetytozero",
	})
	if err != nil {
		return err
	}
	validate := validation.New()

	healthDeps := map[string]usecase.Pinger{"store": st.ping}
	if redisClient != nil {
		healthDeps["redis"] = usecase.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	router := v1.NewRouter(v1.RouterDeps{
		Config:       cfg,
		AuthUC:       usecase.NewAuthUsecase(st.users, auth.NewPasswordHasher(cfg.BcryptCost), tokens, validate),
		CompanyUC:    usecase.NewCompanyProfileUsecase(st.companies, validate),
		CandidateUC:  usecase.NewCandidateProfileUsecase(st.candidates, validate),
		NBFCUC:       usecase.NewNBFCProfileUsecase(st.nbfcs, validate),
		BuyoutUC:     usecase.NewBuyoutUsecase(validate),
		Health:       usecase.NewHealthUsecase(healthDeps),
		RateLimiter:  limiter,
		LoginTracker: tracker,
		SecurityLog:  secLog,
		Metrics:      m,
		Logger:       logger.Log,
	})

	// 7. Serve
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Infow("listening", "addr", srv.Addr, "prefix", cfg.APIPrefix)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("server forced to shutdown", "error", err)
		return err
	}
	logger.Log.Info("server exited")
	return nil
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		users := memory.NewUserRepository()
		return &stores{
			users:      users,
			companies:  memory.NewCompanyProfileRepository(),
			candidates: memory.NewCandidateProfileRepository(),
			nbfcs:      memory.NewNBFCProfileRepository(),
			ping:       users,
			close:      func() {},
		}, nil
	}

	pool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return &stores{
		users:      postgres.NewUserRepository(pool),
		companies:  postgres.NewCompanyProfileRepository(pool),
		candidates: postgres.NewCandidateRepository(pool),
		nbfcs:      postgres.NewNBFCProfileRepository(pool),
		ping:       pool,
		close:      pool.Close,

		persistEvents: security.NewSecurityEventRepository(pool).PersistEvent,
	}, nil
}
