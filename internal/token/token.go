// Package token issues and verifies the signed bearer tokens used for
// authentication. Tokens are self-contained HS256 JWTs binding a user id
// and role to an expiry; there is no server-side revocation.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verify failures. These are distinguishable for diagnostics; HTTP
// handlers must collapse all of them to one generic 401 so callers cannot
// probe which check failed.
var (
	ErrMalformed        = errors.New("token malformed")
	ErrSignatureInvalid = errors.New("token signature invalid")
	ErrExpired          = errors.New("token expired")
)

// Claims is the JWT payload.
type Claims struct {
	UserID string `json:"id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Service signs and verifies tokens with a process-wide secret. The secret
// comes from configuration at construction time; there is no package-global
// fallback.
type Service struct {
	secret []byte
	issuer string
}

// NewService builds a token Service. An empty secret is a configuration
// error: the caller gets an error here rather than a service that panics
// or silently signs with nothing.
func NewService(secret, issuer string) (*Service, error) {
	if secret == "" {
		return nil, errors.New("jwt secret not configured")
	}
	return &Service{secret: []byte(secret), issuer: issuer}, nil
}

// Issue creates a signed token for the given subject and role, expiring
// after ttl. Claims are frozen at issuance; later role changes are picked
// up by the authentication gate's store lookup, not by the token.
func (s *Service) Issue(userID, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the embedded claims.
// Failures map to the typed errors above.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrSignatureInvalid
		default:
			return nil, ErrMalformed
		}
	}
	if !t.Valid {
		return nil, ErrMalformed
	}
	return claims, nil
}
