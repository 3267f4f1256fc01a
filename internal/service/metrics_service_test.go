package service

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsServiceAutoAssignCounters(t *testing.T) {
	m := NewMetricsService()

	m.ObserveAutoAssign(3, 1, 20*time.Millisecond, nil)
	m.ObserveAutoAssign(0, 0, time.Millisecond, errors.New("boom"))
	m.ObserveConfirm(3)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.placements))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.unplaced))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.assignRuns.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.assignRuns.WithLabelValues("error")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.confirmed))
}

func TestMetricsServiceHandler(t *testing.T) {
	m := NewMetricsService()
	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/lesson-schedules", 200, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "http_requests_total"))
}

func TestMetricsServiceNilSafe(t *testing.T) {
	var m *MetricsService
	m.ObserveAutoAssign(1, 0, time.Millisecond, nil)
	m.RecordCacheOperation(true, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
