package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thuwalaco/thuwala-site/internal/config"
)

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	body := []byte(`{"services":[]}`)

	bs, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, body, gotBody)
}

func TestDecodePayloadRejectsGarbage(t *testing.T) {
	_, _, _, ok := decodePayload([]byte("short"))
	assert.False(t, ok)
	_, _, _, ok = decodePayload(nil)
	assert.False(t, ok)
}

func cacheCtx(method, target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/portfolio")
	return c
}

func TestCacheKeyStrategies(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}

	a := cacheKeyFrom(cfg, cacheCtx(http.MethodGet, "/v1/portfolio?category=data"))
	b := cacheKeyFrom(cfg, cacheCtx(http.MethodGet, "/v1/portfolio?category=data"))
	cOther := cacheKeyFrom(cfg, cacheCtx(http.MethodGet, "/v1/portfolio?category=branding"))

	assert.Equal(t, a, b, "same request must yield the same key")
	assert.NotEqual(t, a, cOther, "different query must yield a different key")

	// route strategy ignores the query string.
	cfg.KeyStrategy = "route"
	d := cacheKeyFrom(cfg, cacheCtx(http.MethodGet, "/v1/portfolio?category=data"))
	e := cacheKeyFrom(cfg, cacheCtx(http.MethodGet, "/v1/portfolio?category=branding"))
	assert.Equal(t, d, e)
}

// With no Redis client the middleware is a pass-through.
func TestCacheDisabledPassThrough(t *testing.T) {
	mw := NewRedisCache(config.CacheConfig{Enabled: true}, nil)

	c := cacheCtx(http.MethodGet, "/v1/portfolio")
	called := false
	err := mw(func(c echo.Context) error {
		called = true
		return c.String(http.StatusOK, "ok")
	})(c)
	require.NoError(t, err)
	assert.True(t, called)
}
