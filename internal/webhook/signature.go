// Package webhook verifies and parses CMS content-change notifications.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// ValidateSignature reports whether signatureHeader is the hex-encoded
// HMAC-SHA256 of rawBody under secret. The comparison is constant-time.
// Malformed or missing input is reported as a mismatch, never an error.
//
// rawBody must be the request body byte-for-byte as received; verification
// happens before any JSON parsing.
func ValidateSignature(rawBody []byte, signatureHeader, secret string) bool {
	if signatureHeader == "" || secret == "" {
		return false
	}
	claimed, err := hex.DecodeString(strings.TrimSpace(signatureHeader))
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(rawBody)
	return hmac.Equal(claimed, mac.Sum(nil))
}
