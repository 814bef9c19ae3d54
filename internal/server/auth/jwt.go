// Package auth wraps token signing/verification and password hashing for the
// server. Tokens are HS256 JWTs carrying the user's identity claims; hashes
// are salted bcrypt digests.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/smelnikov/authsvc/internal/common"
)

// Identity is the non-temporal payload of a token: the user record minus the
// password hash and minus iat/exp. Re-signing an Identity yields a fresh
// token with the same payload and a new expiry window.
type Identity struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Claims combines the identity payload with the standard temporal claims.
type Claims struct {
	jwt.RegisteredClaims
	Identity
}

// TokenIssuer signs and verifies tokens with a fixed secret and validity
// duration. It is safe for concurrent use; the secret is read-only.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Sign produces a signed token encoding the identity plus issued-at and
// expiry claims.
func (t *TokenIssuer) Sign(id Identity) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
		Identity: id,
	})
	return token.SignedString(t.secret)
}

// Verify checks the token's signature and expiry and returns the embedded
// identity. Any failure is reported as common.ErrInvalidToken; the caller
// gets no detail about what exactly was wrong.
func (t *TokenIssuer) Verify(tokenString string) (Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(tk *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Identity{}, common.ErrInvalidToken
	}
	if !token.Valid {
		return Identity{}, common.ErrInvalidToken
	}

	return claims.Identity, nil
}
