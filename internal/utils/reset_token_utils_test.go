package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashResetToken(t *testing.T) {
	a := HashResetToken("some-plaintext-token")
	b := HashResetToken("some-plaintext-token")
	c := HashResetToken("another-token")

	assert.Equal(t, a, b, "lookup by hash needs a deterministic digest")
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
	assert.NotContains(t, a, "some-plaintext-token")
}

func TestGenerateSecureRandomString(t *testing.T) {
	first, err := GenerateSecureRandomString(32)
	require.NoError(t, err)
	second, err := GenerateSecureRandomString(32)
	require.NoError(t, err)

	assert.Len(t, first, 64, "hex doubles the byte length")
	assert.NotEqual(t, first, second)
}
