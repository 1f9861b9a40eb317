package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_AllPass(t *testing.T) {
	hc := NewChecker("1.0.0")
	hc.AddCheck("ping", func(ctx context.Context) error { return nil }, time.Second)
	hc.AddCriticalCheck("catalog", ErrorCheck(func() error { return nil }), 0)

	report := hc.Run(context.Background())

	assert.Equal(t, StatusHealthy, report.Status)
	assert.Len(t, report.Checks, 2)
	assert.Equal(t, "1.0.0", report.Version)
	for name, result := range report.Checks {
		assert.Equal(t, StatusHealthy, result.Status, name)
		assert.Empty(t, result.Error, name)
	}
}

func TestRun_NonCriticalFailureDegrades(t *testing.T) {
	hc := NewChecker("")
	hc.AddCheck("passing", func(ctx context.Context) error { return nil }, time.Second)
	hc.AddCheck("failing", func(ctx context.Context) error { return errors.New("watcher stopped") }, time.Second)

	report := hc.Run(context.Background())

	assert.Equal(t, StatusDegraded, report.Status)
	assert.Equal(t, StatusHealthy, report.Checks["passing"].Status)
	assert.Equal(t, StatusUnhealthy, report.Checks["failing"].Status)
	assert.Equal(t, "watcher stopped", report.Checks["failing"].Error)
}

func TestRun_CriticalFailure(t *testing.T) {
	hc := NewChecker("")
	hc.AddCheck("optional", func(ctx context.Context) error { return errors.New("x") }, time.Second)
	hc.AddCriticalCheck("catalog", func(ctx context.Context) error { return errors.New("icon mismatch") }, time.Second)

	assert.Equal(t, StatusUnhealthy, hc.Run(context.Background()).Status)
}

func TestRun_Timeout(t *testing.T) {
	hc := NewChecker("")
	hc.AddCriticalCheck("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}, 10*time.Millisecond)

	report := hc.Run(context.Background())

	assert.Equal(t, StatusUnhealthy, report.Status)
	assert.Contains(t, report.Checks["slow"].Error, "deadline exceeded")
}

func TestRun_Panic(t *testing.T) {
	hc := NewChecker("")
	hc.AddCheck("boom", func(ctx context.Context) error { panic("boom") }, time.Second)

	report := hc.Run(context.Background())

	assert.Equal(t, StatusDegraded, report.Status)
	assert.Equal(t, "panic: boom", report.Checks["boom"].Error)
}

func TestLivenessHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	NewChecker("").LivenessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "alive", body["status"])
}

func TestReadinessHandler(t *testing.T) {
	healthy := true
	hc := NewChecker("dev")
	hc.AddCriticalCheck("catalog", ErrorCheck(func() error {
		if healthy {
			return nil
		}
		return errors.New("feature count mismatch")
	}), time.Second)

	rec := httptest.NewRecorder()
	hc.ReadinessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	healthy = false
	rec = httptest.NewRecorder()
	hc.ReadinessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var report Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, StatusUnhealthy, report.Status)
	assert.Equal(t, "feature count mismatch", report.Checks["catalog"].Error)
}

func TestCapacityCheck(t *testing.T) {
	n := 3
	check := CapacityCheck("reload clients", func() int { return n }, 4)

	assert.NoError(t, check(context.Background()))
	n = 4
	assert.EqualError(t, check(context.Background()), "reload clients at capacity: 4/4")
}
