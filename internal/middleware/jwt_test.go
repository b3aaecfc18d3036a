package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thuwalaco/thuwala-site/internal/utils"
)

const testSecret = "test-secret"

func runJWT(t *testing.T, mutate func(*http.Request)) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/me", nil)
	mutate(req)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var captured echo.Context
	h := JWTAuth(testSecret)(func(c echo.Context) error {
		captured = c
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, captured
}

func TestJWTAuthFromCookie(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 42, "admin", 30)
	require.NoError(t, err)

	rec, c := runJWT(t, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tok.Token})
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, c)
	assert.EqualValues(t, 42, c.Get("user_id"))
	assert.Equal(t, "admin", c.Get("username"))
}

func TestJWTAuthFromBearerHeader(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 7, "admin", 30)
	require.NoError(t, err)

	rec, _ := runJWT(t, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+tok.Token)
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTAuthMissingToken(t *testing.T) {
	rec, _ := runJWT(t, func(*http.Request) {})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken("another-secret", 1, "admin", 30)
	require.NoError(t, err)

	rec, _ := runJWT(t, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tok.Token})
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 1, "admin", -1)
	require.NoError(t, err)

	rec, _ := runJWT(t, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tok.Token})
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
