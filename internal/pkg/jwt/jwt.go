// Package jwt issues and verifies the HS256 bearer tokens that back every
// authenticated route. A token carries the account ID in the "uid" claim;
// roles are not embedded and are always re-read from the database.
package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

const issuer = "inkpress"

var (
	// ErrInvalidClaims is returned when a token verifies but its payload is
	// not the shape this service signs.
	ErrInvalidClaims = errors.New("jwt: invalid claims")

	secret = []byte("inkpress-secret-change-me")
)

// SetSecret configures the signing secret. Call once on startup; the compiled
// default only exists so development setups work without a config file.
func SetSecret(s string) {
	if s != "" {
		secret = []byte(s)
	}
}

// Claims is the token payload.
type Claims struct {
	UserID string `json:"uid"`
	jwtlib.RegisteredClaims
}

// Sign issues a token for the account that expires after ttl.
func Sign(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(secret)
}

// Parse verifies a token string and returns its claims. Only HS256 is
// accepted; an alg header naming anything else fails verification.
func Parse(tokenStr string) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(
		tokenStr,
		&Claims{},
		func(*jwtlib.Token) (interface{}, error) { return secret, nil },
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID == "" {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}
