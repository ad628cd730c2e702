package helpers

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

const (
	PasswordSaltLen    = 16
	PasswordKeyLen     = 32
	PasswordIterations = 100_000
)

// HashPassword derives a PBKDF2-HMAC-SHA256 key from plain with a fresh
// random salt. Salt and hash are returned hex encoded.
func HashPassword(plain string) (salt string, hash string, err error) {
	s := make([]byte, PasswordSaltLen)
	if _, err := rand.Read(s); err != nil {
		return "", "", err
	}
	key := derive(plain, s)
	return hex.EncodeToString(s), hex.EncodeToString(key), nil
}

// VerifyPassword reports whether attempt matches the stored salt and hash.
// Malformed hex input never matches.
func VerifyPassword(salt, hash, attempt string) bool {
	s, err := hex.DecodeString(salt)
	if err != nil || len(s) == 0 {
		return false
	}
	want, err := hex.DecodeString(hash)
	if err != nil || len(want) != PasswordKeyLen {
		return false
	}
	return subtle.ConstantTimeCompare(derive(attempt, s), want) == 1
}

func derive(plain string, salt []byte) []byte {
	return pbkdf2.Key([]byte(plain), salt, PasswordIterations, PasswordKeyLen, sha256.New)
}
