package license

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"unicode/utf8"
)

// The portal encrypts its response as base64( [16-byte IV][base64(ciphertext)] )
// with AES-256-CBC. The key is the shared passphrase zero-padded or truncated
// to exactly 32 bytes, no KDF: this must match byte-for-byte how the portal
// derives its key, so do not "improve" it.

func portalKey(passphrase string) []byte {
	key := make([]byte, 32)
	copy(key, passphrase)
	return key
}

func decryptPortalPayload(envelope []byte, passphrase string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(envelope)))
	if err != nil {
		return nil, errors.New("license: envelope is not base64")
	}
	if len(raw) <= aes.BlockSize {
		return nil, errors.New("license: envelope shorter than IV")
	}
	iv := raw[:aes.BlockSize]

	ciphertext, err := base64.StdEncoding.DecodeString(string(raw[aes.BlockSize:]))
	if err != nil {
		return nil, errors.New("license: ciphertext is not base64")
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, errors.New("license: ciphertext not block-aligned")
	}

	block, err := aes.NewCipher(portalKey(passphrase))
	if err != nil {
		return nil, err
	}
	plain := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, ciphertext)

	plain, err = pkcs7Unpad(plain, aes.BlockSize)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(plain) || !json.Valid(plain) {
		return nil, errors.New("license: decrypted payload is not JSON")
	}
	return plain, nil
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, errors.New("license: invalid padded length")
	}
	pad := int(data[len(data)-1])
	if pad == 0 || pad > blockSize || pad > len(data) {
		return nil, errors.New("license: invalid padding")
	}
	for _, b := range data[len(data)-pad:] {
		if int(b) != pad {
			return nil, errors.New("license: invalid padding")
		}
	}
	return data[:len(data)-pad], nil
}
