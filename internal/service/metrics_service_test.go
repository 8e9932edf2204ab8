package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsServiceObserveStoreOperation(t *testing.T) {
	m := NewMetricsService()

	m.ObserveStoreOperation("students", "insert", 5*time.Millisecond)
	m.ObserveStoreOperation("students", "insert", 2*time.Millisecond)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	m.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `store_operation_duration_seconds_count{collection="students",operation="insert"} 2`)
}

func TestMetricsServiceObserveHTTPRequest(t *testing.T) {
	m := NewMetricsService()

	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/students", http.StatusOK, 3*time.Millisecond)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	m.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `http_requests_total{method="GET",path="/api/v1/students",status="200"} 1`)
}

func TestMetricsServiceNilSafe(t *testing.T) {
	var m *MetricsService

	m.ObserveStoreOperation("students", "insert", time.Millisecond)
	m.ObserveHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	m.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
