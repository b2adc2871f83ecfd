package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCipher_RoundTrip(t *testing.T) {
	c := NewTokenCipher("0123456789abcdef0123456789abcdef")

	sealed, err := c.Seal("EAAG-page-token")
	require.NoError(t, err)
	assert.NotEqual(t, "EAAG-page-token", sealed)

	opened, err := c.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "EAAG-page-token", opened)
}

func TestTokenCipher_EmptyKeyPassesThrough(t *testing.T) {
	c := NewTokenCipher("")

	sealed, err := c.Seal("plain")
	require.NoError(t, err)
	assert.Equal(t, "plain", sealed)

	opened, err := c.Open("plain")
	require.NoError(t, err)
	assert.Equal(t, "plain", opened)
}

func TestTokenCipher_OpenWithWrongKey(t *testing.T) {
	sealed, err := NewTokenCipher("0123456789abcdef").Seal("secret")
	require.NoError(t, err)

	_, err = NewTokenCipher("fedcba9876543210").Open(sealed)
	assert.Error(t, err)

	_, err = NewTokenCipher("fedcba9876543210").Open("not-base64!")
	assert.Error(t, err)
}

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken("jwt-secret", "4b6f0c1e-6a43-4a3f-9d55-2f2b8c1d7e10", time.Minute)
	require.NoError(t, err)

	claims, err := ValidateToken("jwt-secret", token)
	require.NoError(t, err)
	assert.Equal(t, "4b6f0c1e-6a43-4a3f-9d55-2f2b8c1d7e10", claims.Subject)

	_, err = ValidateToken("other-secret", token)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	token, err := GenerateToken("jwt-secret", "user", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken("jwt-secret", token)
	assert.Error(t, err)
}
