package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"userId": "user-1",
		"email":  "alice@example.com",
		"exp":    time.Now().Add(time.Hour).Unix(),
	}
}

func runMiddleware(token string) (*httptest.ResponseRecorder, string) {
	m := NewAuthMiddleware(testSecret)
	var gotUserId string
	handler := m.Handle(func(w http.ResponseWriter, r *http.Request) {
		gotUserId = UserIdFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/wallet/info", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec, gotUserId
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	rec, userId := runMiddleware(signToken(t, testSecret, validClaims()))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", userId)
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	rec, userId := runMiddleware("")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, userId)
}

func TestAuthMiddlewareWrongSecret(t *testing.T) {
	rec, _ := runMiddleware(signToken(t, "other-secret", validClaims()))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	claims := validClaims()
	claims["exp"] = time.Now().Add(-time.Hour).Unix()
	rec, _ := runMiddleware(signToken(t, testSecret, claims))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareMissingUserIdClaim(t *testing.T) {
	claims := validClaims()
	delete(claims, "userId")
	rec, _ := runMiddleware(signToken(t, testSecret, claims))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
