package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"go.uber.org/zap"
)

// EventType represents the type of security event
type EventType string

const (
	EventLoginFailed        EventType = "login_failed"
	EventLoginBlocked       EventType = "login_blocked"
	EventLoginSuccess       EventType = "login_success"
	EventRegistered         EventType = "user_registered"
	EventTokenRejected      EventType = "token_rejected"
	EventRateLimitTriggered EventType = "rate_limit_triggered"
	EventForbidden          EventType = "forbidden_access"
	EventBlockCreated       EventType = "block_created"
)

// SecurityEvent represents a security-related event to be logged
type SecurityEvent struct {
	Timestamp    time.Time
	Event        EventType
	SubjectType  string // "email", "ip", "user_id"
	SubjectValue string // masked or hashed
	IP           string
	UserAgent    string
	RequestID    string
	Details      map[string]any
}

// SecurityLogger writes security events as structured zap entries.
type SecurityLogger struct {
	zapLogger *zap.Logger
	// optional, runs off the request path
	persistFunc func(ctx context.Context, event SecurityEvent) error
}

// NewSecurityLogger wraps base; a nil base yields a no-op logger.
func NewSecurityLogger(base *zap.Logger) *SecurityLogger {
	if base == nil {
		base = zap.NewNop()
	}
	return &SecurityLogger{zapLogger: base.Named("security")}
}

// SetPersistFunc makes Log also hand every event to f.
func (sl *SecurityLogger) SetPersistFunc(f func(ctx context.Context, event SecurityEvent) error) {
	sl.persistFunc = f
}

// Log logs a security event
func (sl *SecurityLogger) Log(_ context.Context, event SecurityEvent) {
	if sl == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	fields := []zap.Field{
		zap.String("event", string(event.Event)),
		zap.String("severity", string(GetSeverity(event.Event))),
		zap.Time("event_time", event.Timestamp),
	}
	if event.SubjectType != "" {
		fields = append(fields, zap.String("subject_type", event.SubjectType))
	}
	if event.SubjectValue != "" {
		fields = append(fields, zap.String("subject_value", event.SubjectValue))
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.UserAgent != "" {
		fields = append(fields, zap.String("user_agent", event.UserAgent))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if IsHighOrAbove(event.Event) {
		fields = append(fields, zap.Bool("alert", true))
	}
	if len(event.Details) > 0 {
		fields = append(fields, zap.Any("details", event.Details))
	}

	sl.zapLogger.Log(levelFor(event.Event), string(event.Event), fields...)

	if sl.persistFunc != nil {
		go func(e SecurityEvent) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := sl.persistFunc(ctx, e); err != nil {
				sl.zapLogger.Error("failed to persist security event", zap.Error(err))
			}
		}(event)
	}
}

// LogLoginFailed logs a failed login attempt
func (sl *SecurityLogger) LogLoginFailed(ctx context.Context, email, ip, userAgent, requestID, reason string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventLoginFailed,
		SubjectType:  "email",
		SubjectValue: MaskEmail(email),
		IP:           ip,
		UserAgent:    userAgent,
		RequestID:    requestID,
		Details:      map[string]any{"reason": reason},
	})
}

// LogLoginBlocked logs a login refused because of too many failures.
func (sl *SecurityLogger) LogLoginBlocked(ctx context.Context, email, ip, userAgent, requestID string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventLoginBlocked,
		SubjectType:  "email",
		SubjectValue: MaskEmail(email),
		IP:           ip,
		UserAgent:    userAgent,
		RequestID:    requestID,
		Details:      map[string]any{"reason": "too_many_failed_attempts"},
	})
}

// LogLoginSuccess logs a successful login by user ID.
func (sl *SecurityLogger) LogLoginSuccess(ctx context.Context, userID, ip, requestID string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventLoginSuccess,
		SubjectType:  "user_id",
		SubjectValue: userID,
		IP:           ip,
		RequestID:    requestID,
	})
}

// LogRateLimitTriggered logs when rate limiting is triggered
func (sl *SecurityLogger) LogRateLimitTriggered(ctx context.Context, ip, userAgent, requestID, endpoint string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventRateLimitTriggered,
		SubjectType:  "ip",
		SubjectValue: ip,
		IP:           ip,
		UserAgent:    userAgent,
		RequestID:    requestID,
		Details:      map[string]any{"endpoint": endpoint},
	})
}

// LogBlockCreated logs when a block is created
func (sl *SecurityLogger) LogBlockCreated(ctx context.Context, subjectType, subjectValue, ip, requestID string, durationMinutes int) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventBlockCreated,
		SubjectType:  subjectType,
		SubjectValue: maskValue(subjectType, subjectValue),
		IP:           ip,
		RequestID:    requestID,
		Details:      map[string]any{"duration_minutes": durationMinutes},
	})
}

// MaskEmail masks an email for logging (e.g., "j***@example.com")
func MaskEmail(email string) string {
	if len(email) < 3 {
		return "***"
	}
	at := strings.IndexByte(email, '@')
	if at <= 1 {
		return "***" + email[1:]
	}
	return email[:1] + "***" + email[at:]
}

// HashValue returns a short SHA-256 fingerprint of value.
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8])
}

func maskValue(subjectType, value string) string {
	switch subjectType {
	case "email":
		return MaskEmail(value)
	case "ip":
		return value
	default:
		return HashValue(value)
	}
}
