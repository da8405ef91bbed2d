package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signKey(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func protectedProbe(secret string) http.Handler {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return APIKeyMiddleware(secret)(ok)
}

func TestAPIKeyMiddlewareAcceptsValidKey(t *testing.T) {
	secret := "console-secret"
	key := signKey(t, secret, jwt.MapClaims{
		"name": "ops",
		"role": "operator",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.Header.Set("X-API-Key", key)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	protectedProbe(secret).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPIKeyMiddlewareRejectsMissingKey(t *testing.T) {
	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	protectedProbe("console-secret").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing key")
}

func TestAPIKeyMiddlewareRejectsWrongSecret(t *testing.T) {
	key := signKey(t, "other-secret", jwt.MapClaims{
		"name": "ops",
		"role": "operator",
	})

	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.Header.Set("X-API-Key", key)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	protectedProbe("console-secret").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPIKeyMiddlewareRejectsWrongRole(t *testing.T) {
	secret := "console-secret"
	key := signKey(t, secret, jwt.MapClaims{
		"name": "ops",
		"role": "viewer",
	})

	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.Header.Set("X-API-Key", key)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	protectedProbe(secret).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPIKeyMiddlewareSkipsWhenNoSecret(t *testing.T) {
	req := httptest.NewRequest("GET", "/dashboard", nil)
	rec := httptest.NewRecorder()
	protectedProbe("").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPIKeyMiddlewareServesHTMLForBrowsers(t *testing.T) {
	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	protectedProbe("console-secret").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
}
