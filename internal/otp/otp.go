// Package otp produces the short numeric codes used for email verification.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const digits = "0123456789"

// DefaultLength is the code length used by the verification flows.
const DefaultLength = 6

// Generate returns a random numeric code of the given length.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	var sb strings.Builder
	sb.Grow(length)
	for range length {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", fmt.Errorf("generate otp: %w", err)
		}
		sb.WriteByte(digits[idx.Int64()])
	}
	return sb.String(), nil
}
