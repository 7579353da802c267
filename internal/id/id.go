package id

import (
	"crypto/rand"
	"fmt"
)

const (
	alphabet  = "abcdefghijklmnopqrstuvwxyz0123456789"
	genLength = 16
	maxLength = 64
)

// GenerateID creates a random 16-character lowercase alphanumeric ID.
func GenerateID() string {
	b := make([]byte, genLength)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	for i := range b {
		b[i] = alphabet[b[i]%byte(len(alphabet))]
	}
	return string(b)
}

// Validate checks a caller-supplied ID: 1 to 64 characters drawn from
// lowercase letters, digits, '-' and '_'. Generated IDs always pass.
func Validate(s string) error {
	if s == "" || len(s) > maxLength {
		return fmt.Errorf("id must be 1-%d characters", maxLength)
	}
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return fmt.Errorf("id %q contains invalid character %q", s, c)
		}
	}
	return nil
}
