package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealth(t *testing.T) {
	h := newTestHandler()
	rr := httptest.NewRecorder()
	h.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rr.Body.String())
}

func TestReady(t *testing.T) {
	t.Run("database reachable", func(t *testing.T) {
		h := newTestHandler()
		h.health = &MockHealthChecker{
			MockPing: func(ctx context.Context) error {
				_, hasDeadline := ctx.Deadline()
				assert.True(t, hasDeadline)
				return nil
			},
		}
		rr := httptest.NewRecorder()
		h.Ready(rr, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"status": "ready"}`, rr.Body.String())
	})

	t.Run("database down", func(t *testing.T) {
		h := newTestHandler()
		h.health = &MockHealthChecker{
			MockPing: func(ctx context.Context) error { return errors.New("connection refused") },
		}
		rr := httptest.NewRecorder()
		h.Ready(rr, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})
}
