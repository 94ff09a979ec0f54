package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateJWT(42, "alice@example.com")
	require.NoError(t, err)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, float64(42), claims["userId"])
	assert.Equal(t, "alice@example.com", claims["email"])
}

func TestParseJWTRejectsTamperedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateJWT(42, "alice@example.com")
	require.NoError(t, err)

	_, err = ParseJWT(token + "x")
	assert.Error(t, err)
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := GenerateJWT(42, "alice@example.com")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "other-secret")
	_, err = ParseJWT(token)
	assert.Error(t, err)
}

func TestGenerateRandomTokenLengthAndCharset(t *testing.T) {
	token := GenerateRandomToken(8)
	assert.Len(t, token, 8)
	for _, r := range token {
		assert.Contains(t, tokenCharset, string(r))
	}
	assert.NotEqual(t, GenerateRandomToken(8), GenerateRandomToken(8))
}
