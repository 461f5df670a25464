package utils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// Catalog rows use small serial ids; EncryptID turns them into opaque
// URL-safe tokens so list responses do not leak row counts.

func newIDCipher(key string) (cipher.Block, error) {
	k := []byte(key)
	switch len(k) {
	case 16, 24, 32:
		return aes.NewCipher(k)
	default:
		return nil, fmt.Errorf("invalid key length: %d (must be 16/24/32)", len(k))
	}
}

func EncryptID(id uint, key string) (string, error) {
	block, err := newIDCipher(key)
	if err != nil {
		return "", err
	}

	plaintext := []byte(fmt.Sprintf("%d", id))
	out := make([]byte, aes.BlockSize+len(plaintext))

	iv := out[:aes.BlockSize]
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("failed to read random iv: %w", err)
	}

	cipher.NewCFBEncrypter(block, iv).XORKeyStream(out[aes.BlockSize:], plaintext)
	return base64.RawURLEncoding.EncodeToString(out), nil
}

// DecryptID accepts a token from EncryptID, or a bare decimal id as a
// fallback so hand-written requests still resolve.
func DecryptID(enc string, key string) (uint, error) {
	if enc == "" {
		return 0, fmt.Errorf("empty encrypted id")
	}

	asPlain := func() (uint, bool) {
		var id uint
		if _, err := fmt.Sscanf(enc, "%d", &id); err == nil {
			return id, true
		}
		return 0, false
	}

	raw, err := base64.RawURLEncoding.DecodeString(enc)
	if err != nil {
		if id, ok := asPlain(); ok {
			return id, nil
		}
		return 0, fmt.Errorf("decode base64 failed: %w", err)
	}
	if len(raw) < aes.BlockSize {
		// a short decimal id can itself be valid base64
		if id, ok := asPlain(); ok {
			return id, nil
		}
		return 0, fmt.Errorf("ciphertext too short: len=%d", len(raw))
	}

	block, err := newIDCipher(key)
	if err != nil {
		return 0, err
	}

	body := raw[aes.BlockSize:]
	plaintext := make([]byte, len(body))
	cipher.NewCFBDecrypter(block, raw[:aes.BlockSize]).XORKeyStream(plaintext, body)

	var id uint
	if _, err := fmt.Sscanf(string(plaintext), "%d", &id); err != nil {
		return 0, fmt.Errorf("parse id failed: %w", err)
	}
	return id, nil
}
