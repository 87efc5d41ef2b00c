package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashPassword salts a plaintext password with the process-wide secret
// and returns the hex-encoded sha256 digest (64 characters). There is
// no per-user salt; the secret plays that role uniformly.
func HashPassword(password, secret string) string {
	sum := sha256.Sum256([]byte(password + secret))
	return hex.EncodeToString(sum[:])
}

// SecureCompare performs constant-time comparison of two digests.
func SecureCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
