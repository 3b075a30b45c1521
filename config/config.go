package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config is built once at startup and handed to the components that need it.
// Nothing mutates it after LoadConfig returns.
type Config struct {
	Port        string
	APIPrefix   string
	Environment string
	// Persistence
	StoreDriver string
	DBUrl       string
	// Token signing
	JWTSecret        string
	JWTRefreshSecret string
	JWTAlgorithm     string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration
	BcryptCost       int
	// HTTP
	CORSAllowedOrigins []string
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitLoginThreshold  int
	RateLimitGlobalThreshold int
	FailedLoginBlockMinutes  int
	FailedLoginMaxAttempts   int
}

var supportedAlgorithms = map[string]bool{
	"HS256": true,
	"HS384": true,
	"HS512": true,
}

func LoadConfig() (*Config, error) {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()

	secret := getEnv("JWT_SECRET_KEY", getEnv("SECRET_KEY", ""))

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		APIPrefix:   strings.TrimRight(getEnv("API_PREFIX", "/api/v1"), "/"),
		Environment: getEnv("ENVIRONMENT", "development"),

		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres)),
		DBUrl:       getEnv("DATABASE_URL", ""),

		JWTSecret:        secret,
		JWTRefreshSecret: getEnv("JWT_REFRESH_SECRET_KEY", refreshSecretFallback(secret)),
		JWTAlgorithm:     strings.ToUpper(getEnv("JWT_ALGORITHM", getEnv("ALGORITHM", "HS256"))),
		AccessTokenTTL:   time.Duration(getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,
		RefreshTokenTTL:  time.Duration(getEnvInt("REFRESH_TOKEN_EXPIRE_DAYS", 7)) * 24 * time.Hour,
		BcryptCost:       getEnvInt("BCRYPT_COST", bcrypt.DefaultCost),

		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),

		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),

		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),    // 1 minute window
		RateLimitLoginThreshold:  getEnvInt("RATE_LIMIT_LOGIN_THRESHOLD", 10),   // login attempts per window
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100), // requests per window
		FailedLoginBlockMinutes:  getEnvInt("FAILED_LOGIN_BLOCK_MINUTES", 15),
		FailedLoginMaxAttempts:   getEnvInt("FAILED_LOGIN_MAX_ATTEMPTS", 5),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Warnings lists settings that are allowed but degrade the service. They are
// returned rather than printed because the logger is built from this config.
func (c *Config) Warnings() []string {
	var warnings []string
	if c.StoreDriver == StoreDriverPostgres && c.DBUrl == "" {
		warnings = append(warnings, "DATABASE_URL is missing; the database connection will fail")
	}
	if c.StoreDriver == StoreDriverMemory {
		warnings = append(warnings, "STORE_DRIVER=memory; data is lost on restart")
	}
	if c.UpstashRedisURL == "" {
		warnings = append(warnings, "UPSTASH_REDIS_URL not configured; rate limiting is in-memory and login blocking is disabled")
	}
	return warnings
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET_KEY is required")
	}
	if c.JWTRefreshSecret == c.JWTSecret {
		return errors.New("config: refresh token secret must differ from the access token secret")
	}
	if !supportedAlgorithms[c.JWTAlgorithm] {
		return fmt.Errorf("config: unsupported JWT_ALGORITHM %q", c.JWTAlgorithm)
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return errors.New("config: token expiry must be positive")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("config: BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	switch c.StoreDriver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.StoreDriver)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func refreshSecretFallback(secret string) string {
	if secret == "" {
		return ""
	}
	return secret + ":refresh"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping blanks.
func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimRight(strings.TrimSpace(part), "/"); p != "" {
			out = append(out, p)
		}
	}
	return out
}
