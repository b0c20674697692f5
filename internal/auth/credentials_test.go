package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	stored, err := HashPassword("secret1")
	require.NoError(t, err)

	parts := strings.Split(stored, ":")
	require.Len(t, parts, 2)
	assert.Len(t, parts[0], 32)  // 16-byte salt, hex
	assert.Len(t, parts[1], 128) // 64-byte derived key, hex

	assert.True(t, VerifyPassword("secret1", stored))
	assert.False(t, VerifyPassword("secret2", stored))
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	a, err := HashPassword("same-password")
	require.NoError(t, err)
	b, err := HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, VerifyPassword("same-password", a))
	assert.True(t, VerifyPassword("same-password", b))
}

func TestVerifyPasswordMalformedStoredForm(t *testing.T) {
	assert.False(t, VerifyPassword("anything", ""))
	assert.False(t, VerifyPassword("anything", "no-colon-here"))
	assert.False(t, VerifyPassword("anything", "zz-not-hex:abcdef"))
}
