package security

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "j***@example.com", MaskEmail("jane@example.com"))
	assert.Equal(t, "***", MaskEmail("ab"))
	assert.Equal(t, "***@example.com", MaskEmail("j@example.com"))
}

func TestHashValue(t *testing.T) {
	h := HashValue("jane@example.com")
	assert.Len(t, h, 16)
	assert.Equal(t, h, HashValue("jane@example.com"))
	assert.NotEqual(t, h, HashValue("john@example.com"))
}

func TestSecurityLoggerMasksEmail(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sl := NewSecurityLogger(zap.New(core))

	sl.LogLoginFailed(context.Background(), "jane@example.com", "10.0.0.1", "curl", "req-1", "invalid_credentials")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	fields := entry.ContextMap()
	assert.Equal(t, "j***@example.com", fields["subject_value"])
	assert.Equal(t, "req-1", fields["request_id"])
}

func TestLoginTrackerWithoutRedis(t *testing.T) {
	ctx := context.Background()
	lt := NewLoginTracker(nil, DefaultLoginTrackerConfig(), nil)

	assert.False(t, lt.Enabled())

	blocked, err := lt.IsBlocked(ctx, "jane@example.com", "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, blocked)

	for i := 0; i < 10; i++ {
		blocked, attempts, err := lt.RecordFailedAttempt(ctx, "jane@example.com", "10.0.0.1", "", "")
		require.NoError(t, err)
		assert.False(t, blocked)
		assert.Zero(t, attempts)
	}

	assert.NoError(t, lt.ClearAttempts(ctx, "jane@example.com", "10.0.0.1"))
	_, blocked, err = lt.GetBlockTTL(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestEventSeverity(t *testing.T) {
	assert.Equal(t, SeverityINFO, GetSeverity(EventLoginSuccess))
	assert.Equal(t, SeverityHIGH, GetSeverity(EventLoginBlocked))
	assert.Equal(t, SeverityMEDIUM, GetSeverity(EventType("unknown")))

	core, logs := observer.New(zapcore.DebugLevel)
	sl := NewSecurityLogger(zap.New(core))
	sl.LogBlockCreated(context.Background(), "email", "jane@example.com", "10.0.0.1", "req-2", 15)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Equal(t, "HIGH", entry.ContextMap()["severity"])
	assert.Equal(t, true, entry.ContextMap()["alert"])
}

func TestSecurityLoggerPersists(t *testing.T) {
	sl := NewSecurityLogger(nil)
	got := make(chan SecurityEvent, 1)
	sl.SetPersistFunc(func(_ context.Context, e SecurityEvent) error {
		got <- e
		return nil
	})

	sl.LogLoginSuccess(context.Background(), "user-1", "10.0.0.1", "req-3")

	select {
	case e := <-got:
		assert.Equal(t, EventLoginSuccess, e.Event)
		assert.False(t, e.Timestamp.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("event was not persisted")
	}
}
