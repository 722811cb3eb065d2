package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invokeRateLimited(t *testing.T, mw echo.MiddlewareFunc, remoteAddr string) error {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	return mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)
}

func TestRateLimiting_허용량내요청통과(t *testing.T) {
	mw := RateLimiting(10, 3)

	for i := 0; i < 3; i++ {
		require.NoError(t, invokeRateLimited(t, mw, "192.168.0.1:1234"))
	}
}

func TestRateLimiting_허용량초과시거부(t *testing.T) {
	mw := RateLimiting(1, 1)

	require.NoError(t, invokeRateLimited(t, mw, "192.168.0.1:1234"))

	err := invokeRateLimited(t, mw, "192.168.0.1:1234")
	assert.ErrorIs(t, err, ErrRateLimitExceeded)
}

func TestRateLimiting_IP별독립적인허용량(t *testing.T) {
	mw := RateLimiting(1, 1)

	require.NoError(t, invokeRateLimited(t, mw, "192.168.0.1:1234"))
	assert.ErrorIs(t, invokeRateLimited(t, mw, "192.168.0.1:1234"), ErrRateLimitExceeded)

	// 다른 IP는 자신의 허용량을 따로 가진다.
	assert.NoError(t, invokeRateLimited(t, mw, "192.168.0.2:1234"))
}

func TestRateLimiting_잘못된인자는패닉(t *testing.T) {
	assert.Panics(t, func() { RateLimiting(0, 1) })
	assert.Panics(t, func() { RateLimiting(1, 0) })
}
