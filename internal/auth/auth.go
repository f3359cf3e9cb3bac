// Package auth issues and verifies admin session tokens.
// The admin console is a single configured account; credentials are checked
// against a bcrypt hash and successful logins receive a signed, expiring
// JWT. Tokens are verified server-side on every admin request — there is no
// client-side-only gate.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/nairp/resort-booking/internal/domain"
)

// RoleAdmin is the only role the console knows about today.
const RoleAdmin = "admin"

// Session is a verified admin session extracted from a token.
type Session struct {
	Username  string
	Role      string
	ExpiresAt time.Time
}

// Service checks credentials and signs/verifies session tokens.
type Service struct {
	secret       []byte
	ttl          time.Duration
	username     string
	passwordHash []byte
}

// New constructs a Service. passwordHash must be a bcrypt hash of the admin
// password; the plaintext is never configured or stored.
func New(secret []byte, ttl time.Duration, username, passwordHash string) *Service {
	return &Service{
		secret:       secret,
		ttl:          ttl,
		username:     username,
		passwordHash: []byte(passwordHash),
	}
}

// Login verifies the credentials and returns a signed session token.
// Returns domain.ErrUnauthorized for a wrong username or password; the two
// cases are deliberately indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if username != s.username {
		return "", fmt.Errorf("auth.Service.Login: %w", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", fmt.Errorf("auth.Service.Login: %w", domain.ErrUnauthorized)
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		Audience:  jwt.ClaimStrings{RoleAdmin},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth.Service.Login: sign: %w", err)
	}
	return token, nil
}

// Verify parses and validates a session token.
// Returns domain.ErrUnauthorized for a malformed, forged, or expired token.
func (s *Service) Verify(token string) (Session, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Session{}, fmt.Errorf("auth.Service.Verify: %w", domain.ErrUnauthorized)
	}

	session := Session{Username: claims.Subject, Role: RoleAdmin}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session, nil
}
