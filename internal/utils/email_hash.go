package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// NormalizeEmail trims surrounding whitespace and lowercases an email address
// so equivalent spellings hash identically.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HashEmail returns the hex SHA-256 digest of the normalized email. The digest
// is deterministic so it can back an indexed lookup column, and one-way so the
// store holds no plaintext addresses. It is not encryption: nothing downstream
// can recover the address from it.
func HashEmail(email string) string {
	sum := sha256.Sum256([]byte(NormalizeEmail(email)))
	return hex.EncodeToString(sum[:])
}
