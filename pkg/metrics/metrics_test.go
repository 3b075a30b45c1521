package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecordAndExpose(t *testing.T) {
	m, err := NewMetrics("ninetytozero")
	require.NoError(t, err)

	m.ObserveRequest("GET", "/api/v1/health", "200", 0.01)
	m.ObserveRequest("GET", "/api/v1/health", "200", 0.02)
	m.AuthEvent("login", "failure")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestCount.WithLabelValues("GET", "/api/v1/health", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthEvents.WithLabelValues("login", "failure")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ninetytozero_http_requests_total")
	assert.Contains(t, rec.Body.String(), "ninetytozero_auth_events_total")
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRequest("GET", "/", "200", 0.1)
		m.AuthEvent("login", "success")
	})
}

func TestSeparateInstancesDoNotCollide(t *testing.T) {
	_, err := NewMetrics("ninetytozero")
	require.NoError(t, err)
	_, err = NewMetrics("ninetytozero")
	require.NoError(t, err)
}
