package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NewID generates a hex ID with a prefix, e.g. "chart_a1b2c3...".
// The result is safe to use as a Realtime Database key.
func NewID(prefix string) (string, error) {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%s", prefix, hex.EncodeToString(b)), nil
}
