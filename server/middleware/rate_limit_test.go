package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(1, 2)

	assert.True(t, rl.Allow("client"))
	assert.True(t, rl.Allow("client"))
	// Burst exhausted.
	assert.False(t, rl.Allow("client"))

	// Independent key has its own budget.
	assert.True(t, rl.Allow("other"))
}

func TestRateLimiterMiddleware(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiter(1, 1)
	e.POST("/", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, rl.Middleware())

	do := func() int {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusOK, do())
	assert.Equal(t, http.StatusTooManyRequests, do())
}

func TestRateLimiterDefaults(t *testing.T) {
	rl := NewRateLimiter(0, 0)
	assert.Equal(t, 10, rl.rps)
	assert.Equal(t, 20, rl.burst)
}
