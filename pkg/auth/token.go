package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for any token that fails signature, expiry,
// type or shape checks.
var ErrInvalidToken = errors.New("invalid token")

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims is the signed payload of both token kinds. Refresh tokens carry no role.
type Claims struct {
	Role string `json:"role,omitempty"`
	Type string `json:"typ"`
	jwt.RegisteredClaims
}

type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	Algorithm     string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string
}

// TokenManager issues and decodes stateless access/refresh tokens.
type TokenManager struct {
	cfg    TokenConfig
	method jwt.SigningMethod
	now    func() time.Time
}

func NewTokenManager(cfg TokenConfig) (*TokenManager, error) {
	method := jwt.GetSigningMethod(cfg.Algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("auth: unsupported signing algorithm %q", cfg.Algorithm)
	}
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, errors.New("auth: token secrets must be set")
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 30 * time.Minute
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 7 * 24 * time.Hour
	}
	return &TokenManager{cfg: cfg, method: method, now: time.Now}, nil
}

// WithClock swaps the time source; used by tests to step past expiry.
func (m *TokenManager) WithClock(now func() time.Time) *TokenManager {
	m.now = now
	return m
}

func (m *TokenManager) AccessTTL() time.Duration {
	return m.cfg.AccessTTL
}

func (m *TokenManager) IssueAccessToken(userID, role string) (string, error) {
	return m.issue(userID, role, TokenTypeAccess, m.cfg.AccessTTL, m.cfg.AccessSecret)
}

func (m *TokenManager) IssueRefreshToken(userID string) (string, error) {
	return m.issue(userID, "", TokenTypeRefresh, m.cfg.RefreshTTL, m.cfg.RefreshSecret)
}

func (m *TokenManager) DecodeAccessToken(token string) (*Claims, error) {
	return m.decode(token, TokenTypeAccess, m.cfg.AccessSecret)
}

func (m *TokenManager) DecodeRefreshToken(token string) (*Claims, error) {
	return m.decode(token, TokenTypeRefresh, m.cfg.RefreshSecret)
}

func (m *TokenManager) issue(userID, role, typ string, ttl time.Duration, secret string) (string, error) {
	now := m.now()
	claims := Claims{
		Role: role,
		Type: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    m.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(m.method, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("auth: sign %s token: %w", typ, err)
	}
	return signed, nil
}

func (m *TokenManager) decode(token, typ, secret string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != m.method.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	},
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Type != typ || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
