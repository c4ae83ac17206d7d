// Package auth issues and verifies the signed identity tokens shared by user
// and shop accounts, and wraps password hashing.
//
// A token carries only the account id; the caller's kind is resolved by
// probing the user store first, then the shop store. Keeping role out of the
// payload lets one token format serve both account kinds.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/drovo/backend/config"
)

// TokenTTL is the validity window for issued tokens.
const TokenTTL = time.Hour

var (
	// ErrTokenMissing is returned when no token was supplied at all.
	ErrTokenMissing = errors.New("auth: no token provided")
	// ErrTokenExpired is returned when the signature is valid but the expiry passed.
	ErrTokenExpired = errors.New("auth: token expired")
	// ErrTokenInvalid is returned for malformed tokens or signature mismatches.
	ErrTokenInvalid = errors.New("auth: token invalid")
)

func secret() []byte {
	return []byte(config.JWTSecret())
}

// GenerateToken creates a signed token for the given account id.
func GenerateToken(accountID string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   accountID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
}

// ResolveToken parses and validates a token string, returning the account id.
func ResolveToken(t string) (string, error) {
	if t == "" {
		return "", ErrTokenMissing
	}

	token, err := jwt.ParseWithClaims(t, &jwt.RegisteredClaims{}, func(tok *jwt.Token) (interface{}, error) {
		return secret(), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrTokenInvalid
	}

	return claims.Subject, nil
}
