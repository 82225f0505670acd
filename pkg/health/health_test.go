package health_test

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

	"github.com/dmitrymomot/classroom/pkg/health"
)

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("no checks is healthy", func(t *testing.T) {
		t.Parallel()
		resp := health.Run(context.Background(), nil)
		assert.True(t, resp.Healthy())
		assert.NoError(t, resp.Err())
	})

	t.Run("one failing check marks the run unhealthy", func(t *testing.T) {
		t.Parallel()
		resp := health.Run(context.Background(), health.Checks{
			"store": func(context.Context) error { return nil },
			"api":   func(context.Context) error { return errors.New("connection refused") },
		})
		assert.False(t, resp.Healthy())
		assert.Equal(t, []string{"api", "store"}, resp.Names())
		assert.Equal(t, health.StatusHealthy, resp.Checks["store"].Status)
		assert.Equal(t, "connection refused", resp.Checks["api"].Error)

		err := resp.Err()
		require.ErrorIs(t, err, health.ErrCheckFailed)
		assert.Contains(t, err.Error(), "api: connection refused")
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()
		resp := health.Run(context.Background(), health.Checks{
			"slow": func(ctx context.Context) error {
				<-ctx.Done()
				return ctx.Err()
			},
		}, health.WithTimeout(20*time.Millisecond))
		assert.False(t, resp.Healthy())
		assert.Contains(t, resp.Checks["slow"].Error, health.ErrCheckTimeout.Error())
	})
}

func TestHandlers(t *testing.T) {
	t.Parallel()

	t.Run("liveness plain", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		health.LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "OK", rec.Body.String())
	})

	t.Run("readiness json unhealthy", func(t *testing.T) {
		t.Parallel()
		h := health.ReadinessHandler(health.Checks{
			"store": func(context.Context) error { return errors.New("closed") },
		})
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/health/ready?format=json", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		var resp health.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, health.StatusUnhealthy, resp.Status)
		assert.Equal(t, "closed", resp.Checks["store"].Error)
	})

	t.Run("readiness plain healthy", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		health.ReadinessHandler(nil)(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "OK", rec.Body.String())
	})
}
