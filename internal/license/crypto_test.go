package license

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encryptPortalPayload mirrors the portal's encryption side so the decrypt
// routine can be exercised against a known-good envelope.
func encryptPortalPayload(t *testing.T, plaintext, passphrase string) []byte {
	t.Helper()

	block, err := aes.NewCipher(portalKey(passphrase))
	require.NoError(t, err)

	iv := make([]byte, aes.BlockSize)
	_, err = rand.Read(iv)
	require.NoError(t, err)

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	inner := base64.StdEncoding.EncodeToString(ciphertext)
	envelope := append(append([]byte{}, iv...), []byte(inner)...)
	return []byte(base64.StdEncoding.EncodeToString(envelope))
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	pad := blockSize - len(data)%blockSize
	out := make([]byte, len(data)+pad)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(pad)
	}
	return out
}

func TestDecryptPortalPayloadRoundTrip(t *testing.T) {
	plaintext := `{"success":true,"license":{"status":"active","max_devices":5}}`

	envelope := encryptPortalPayload(t, plaintext, portalPassphrase)
	out, err := decryptPortalPayload(envelope, portalPassphrase)
	require.NoError(t, err)
	assert.JSONEq(t, plaintext, string(out))
}

func TestDecryptPortalPayloadKeyPadding(t *testing.T) {
	// Short passphrases are zero-padded to 32 bytes; long ones truncated.
	for _, passphrase := range []string{"short", "exactly-32-bytes-long-passphrase", "a-passphrase-well-beyond-thirty-two-bytes"} {
		envelope := encryptPortalPayload(t, `{"ok":true}`, passphrase)
		out, err := decryptPortalPayload(envelope, passphrase)
		require.NoError(t, err, "passphrase %q", passphrase)
		assert.JSONEq(t, `{"ok":true}`, string(out))
	}
}

func TestDecryptPortalPayloadWrongKey(t *testing.T) {
	envelope := encryptPortalPayload(t, `{"ok":true}`, "key-one")
	_, err := decryptPortalPayload(envelope, "key-two")
	assert.Error(t, err)
}

func TestDecryptPortalPayloadMalformed(t *testing.T) {
	cases := map[string][]byte{
		"not base64":      []byte("%%%not-base64%%%"),
		"too short":       []byte(base64.StdEncoding.EncodeToString([]byte("tiny"))),
		"inner not b64":   []byte(base64.StdEncoding.EncodeToString(append(make([]byte, 16), []byte("%%%")...))),
		"plain json body": []byte(`{"success":false}`),
	}
	for name, envelope := range cases {
		_, err := decryptPortalPayload(envelope, portalPassphrase)
		assert.Error(t, err, name)
	}
}

func TestPKCS7Unpad(t *testing.T) {
	out, err := pkcs7Unpad(pkcs7Pad([]byte("hello"), 16), 16)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(out))

	// A full block of padding is valid and strips to empty.
	out, err = pkcs7Unpad(pkcs7Pad([]byte{}, 16), 16)
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = pkcs7Unpad([]byte("not-block-aligned"), 16)
	assert.Error(t, err)

	bad := pkcs7Pad([]byte("hello"), 16)
	bad[len(bad)-1] = 0
	_, err = pkcs7Unpad(bad, 16)
	assert.Error(t, err)
}
