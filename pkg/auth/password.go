// Package auth holds the credential primitives: the salted password scheme
// and random token generation.
//
// Clients hash the raw password before transmission. The server never sees
// the raw password; it re-salts the client pre-hash with a per-account
// random salt and stores only the doubly-hashed value.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/sha3"
)

const (
	saltLen  = 16
	tokenLen = 16
)

// NewSalt returns a fresh random per-account salt.
func NewSalt() ([]byte, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// SaltedHash computes the stored password hash: Keccak-256 over the base64
// form of the salt concatenated with the client's pre-hash.
func SaltedHash(salt []byte, preHash string) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(base64.StdEncoding.EncodeToString(salt)))
	h.Write([]byte(preHash))
	return h.Sum(nil)
}

// Verify re-salts the submitted pre-hash and compares it to the stored hash
// in constant time.
func Verify(salt []byte, preHash string, storedHash []byte) bool {
	return subtle.ConstantTimeCompare(SaltedHash(salt, preHash), storedHash) == 1
}

// NewToken returns a fresh opaque session token.
func NewToken() (string, error) {
	raw := make([]byte, tokenLen)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
