package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestJWT_SessionToken_Roundtrip(t *testing.T) {
	j := NewJWT("secret", time.Hour)

	token, err := j.GenerateAccessToken("nfc_ABCD1234")
	require.NoError(t, err)
	got, err := j.ParseAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, "nfc_ABCD1234", got)
}

func TestJWT_WrongSecret(t *testing.T) {
	token, err := NewJWT("secret", time.Hour).GenerateAccessToken("u1")
	require.NoError(t, err)

	_, err = NewJWT("other", time.Hour).ParseAccessToken(token)
	require.Error(t, err)
}

func TestJWT_ExpiryValidation(t *testing.T) {
	j := NewJWT("secret", time.Hour)
	issued := time.Now()
	j.now = func() time.Time { return issued }

	token, err := j.GenerateAccessToken("u1")
	require.NoError(t, err)
	_, err = j.ParseAccessToken(token)
	require.NoError(t, err)

	j.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = j.ParseAccessToken(token)
	require.Error(t, err)
}

func TestJWT_TokenType_Mismatch(t *testing.T) {
	j := NewJWT("secret", time.Hour)
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   "u1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		TokenType: "refresh",
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = j.ParseAccessToken(signed)
	require.Error(t, err)
}

func TestJWT_WrongSigningMethod(t *testing.T) {
	j := NewJWT("secret", time.Hour)
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: issuer, Subject: "u1"},
		TokenType:        typeSession,
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = j.ParseAccessToken(signed)
	require.Error(t, err)
}
