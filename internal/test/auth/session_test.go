package auth_test

import (
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SW2PDEPLOY/front/internal/auth"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte("test-secret-key"))
	require.NoError(t, err)
	return tokenString
}

func TestFromToken(t *testing.T) {
	tokenString := signedToken(t, jwt.MapClaims{"sub": "user-123"})

	session, err := auth.FromToken(tokenString)

	require.NoError(t, err)
	assert.Equal(t, "user-123", session.UserID)
	assert.Equal(t, tokenString, session.Token)
}

func TestFromToken_Empty(t *testing.T) {
	_, err := auth.FromToken("")

	assert.True(t, errors.Is(err, auth.ErrNoIdentity))
}

func TestFromToken_NoSubject(t *testing.T) {
	tokenString := signedToken(t, jwt.MapClaims{"email": "user@example.com"})

	_, err := auth.FromToken(tokenString)

	assert.True(t, errors.Is(err, auth.ErrNoIdentity))
}

func TestFromToken_Malformed(t *testing.T) {
	_, err := auth.FromToken("not-a-jwt")

	assert.Error(t, err)
}

func TestSession_Unauthorized(t *testing.T) {
	fired := 0
	session := &auth.Session{Token: "t", UserID: "u", OnUnauthorized: func() { fired++ }}

	session.Unauthorized()
	assert.Equal(t, 1, fired)
}

func TestSession_UnauthorizedIsNilSafe(t *testing.T) {
	var session *auth.Session

	assert.NotPanics(t, func() { session.Unauthorized() })
	assert.NotPanics(t, func() { (&auth.Session{}).Unauthorized() })
}
