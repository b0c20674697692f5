package auth

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranto48/lifeos-backend/pkg/logger"
)

func TestMain(m *testing.M) {
	if _, err := logger.Init("info", "json"); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	os.Exit(m.Run())
}

func TestTokenRoundTrip(t *testing.T) {
	codec := NewTokenCodec("test-secret")

	token, err := codec.Issue("user-1", "a@x.com")
	require.NoError(t, err)

	claims, ok := codec.Verify(token)
	require.True(t, ok)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenExpired(t *testing.T) {
	codec := NewTokenCodec("test-secret")
	codec.validity = -time.Minute

	token, err := codec.Issue("user-1", "a@x.com")
	require.NoError(t, err)

	_, ok := codec.Verify(token)
	assert.False(t, ok)
}

func TestTokenSignatureTamper(t *testing.T) {
	codec := NewTokenCodec("test-secret")

	token, err := codec.Issue("user-1", "a@x.com")
	require.NoError(t, err)

	// Flip one character of the signature segment.
	last := token[len(token)-1]
	flipped := byte('A')
	if last == 'A' {
		flipped = 'B'
	}
	tampered := token[:len(token)-1] + string(flipped)

	_, ok := codec.Verify(tampered)
	assert.False(t, ok)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewTokenCodec("secret-a").Issue("user-1", "a@x.com")
	require.NoError(t, err)

	_, ok := NewTokenCodec("secret-b").Verify(token)
	assert.False(t, ok)
}

func TestTokenGarbageInput(t *testing.T) {
	codec := NewTokenCodec("test-secret")
	for _, input := range []string{"", "not-a-token", "a.b.c", "...."} {
		_, ok := codec.Verify(input)
		assert.False(t, ok, "input %q should not verify", input)
	}
}

func TestDefaultSecretFallback(t *testing.T) {
	codec := NewTokenCodec("")
	token, err := codec.Issue("user-1", "a@x.com")
	require.NoError(t, err)
	_, ok := codec.Verify(token)
	assert.True(t, ok)
}
