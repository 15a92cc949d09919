package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoIdentity reports a session whose token carries no resolvable user.
var ErrNoIdentity = errors.New("session has no user identity")

// Session is the explicit authentication context handed to the generation
// client at construction time. OnUnauthorized fires when the backend
// rejects the token, so the owner can force a re-login; no global sign-out
// state is kept anywhere else.
type Session struct {
	Token          string
	UserID         string
	OnUnauthorized func()
}

// FromToken builds a session from a raw bearer token, reading the user id
// from the JWT subject claim. The signature is not checked here; the
// generation service is the verifier of record and every call carries the
// original token.
func FromToken(token string) (*Session, error) {
	if token == "" {
		return nil, ErrNoIdentity
	}

	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, ErrNoIdentity
	}

	return &Session{Token: token, UserID: sub}, nil
}

// Unauthorized invokes the OnUnauthorized hook when one is set. It is safe
// to call on a nil session.
func (s *Session) Unauthorized() {
	if s != nil && s.OnUnauthorized != nil {
		s.OnUnauthorized()
	}
}
