package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateJWTRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tokenString, refreshString, err := GenerateJWT("64f000000000000000000001", "buyer@example.com", "customer")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)
	require.NotEmpty(t, refreshString)

	parsed, err := jwt.ParseWithClaims(tokenString, &JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)

	claims, ok := parsed.Claims.(*JwtCustomClaims)
	require.True(t, ok)
	assert.Equal(t, "64f000000000000000000001", claims.UserID)
	assert.Equal(t, "buyer@example.com", claims.Email)
	assert.Equal(t, "customer", claims.Role)
	assert.Greater(t, claims.ExpiresAt, time.Now().Unix())
}

func TestTokenBlacklist(t *testing.T) {
	assert.False(t, IsTokenBlacklisted("some-token"))

	BlacklistToken("some-token", time.Now().Add(time.Hour))
	assert.True(t, IsTokenBlacklisted("some-token"))
}

func TestExtractRole(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.Empty(t, ExtractRole(c))

	// From the token claims when the success handler has not run
	c.Set("user", &jwt.Token{Claims: &JwtCustomClaims{Role: "partner"}})
	assert.Equal(t, "partner", ExtractRole(c))

	// Context key set by the middleware success handler wins
	c.Set("role", "admin")
	assert.Equal(t, "admin", ExtractRole(c))
}
