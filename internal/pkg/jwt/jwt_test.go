package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParse(t *testing.T) {
	SetSecret("test-secret")

	token, err := Sign("user-1", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestParse_InvalidToken(t *testing.T) {
	SetSecret("test-secret")

	_, err := Parse("invalid.token.string")
	assert.Error(t, err)
}

func TestParse_ExpiredToken(t *testing.T) {
	SetSecret("test-secret")

	token, err := Sign("user-1", -time.Minute)
	require.NoError(t, err)

	_, err = Parse(token)
	assert.ErrorIs(t, err, jwtlib.ErrTokenExpired)
}

func TestParse_WrongSecret(t *testing.T) {
	SetSecret("secret-one")
	token, err := Sign("user-1", time.Hour)
	require.NoError(t, err)

	SetSecret("secret-two")
	_, err = Parse(token)
	assert.Error(t, err)
}

func TestParse_RejectsTokenWithoutUserID(t *testing.T) {
	SetSecret("test-secret")

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.RegisteredClaims{
		ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
	})
	tokenStr, err := token.SignedString(secret)
	require.NoError(t, err)

	_, err = Parse(tokenStr)
	assert.ErrorIs(t, err, ErrInvalidClaims)
}

func TestParse_RejectsNonHMACSigning(t *testing.T) {
	SetSecret("test-secret")

	claims := Claims{
		UserID: "user-1",
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, claims)
	tokenStr, err := token.SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = Parse(tokenStr)
	assert.Error(t, err)
}
