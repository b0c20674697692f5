package auth

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Stored form is hex(salt):hex(derivedKey). The derivation parameters are
// frozen: stored hashes must keep verifying across releases.
const (
	saltLength     = 16
	keyLength      = 64
	hashIterations = 100000
)

// HashPassword derives a salted PBKDF2-HMAC-SHA512 hash of the password.
// Two calls for the same password produce different stored forms.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := pbkdf2.Key([]byte(password), salt, hashIterations, keyLength, sha512.New)
	return hex.EncodeToString(salt) + ":" + hex.EncodeToString(key), nil
}

// VerifyPassword re-derives the key with the stored salt and compares.
// A malformed stored form verifies as false, never as an error.
func VerifyPassword(password, stored string) bool {
	parts := strings.SplitN(stored, ":", 2)
	if len(parts) != 2 {
		return false
	}
	salt, err := hex.DecodeString(parts[0])
	if err != nil {
		return false
	}
	key := pbkdf2.Key([]byte(password), salt, hashIterations, keyLength, sha512.New)
	derived := hex.EncodeToString(key)
	return subtle.ConstantTimeCompare([]byte(derived), []byte(parts[1])) == 1
}
