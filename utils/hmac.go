package utils

import "crypto/subtle"

// SecureCompare performs constant-time string comparison to prevent timing
// attacks. This MUST be used when comparing secrets.
func SecureCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
