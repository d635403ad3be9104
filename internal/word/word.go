// Package word validates and normalizes puzzle words.
package word

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultLength is the canonical puzzle word length.
const DefaultLength = 5

// ErrInvalidWord matches every InvalidWordError via errors.Is.
var ErrInvalidWord = errors.New("invalid word")

// InvalidWordError reports a guess or dictionary entry rejected at the boundary.
type InvalidWordError struct {
	Word   string
	Reason string
}

func (e *InvalidWordError) Error() string {
	return fmt.Sprintf("invalid word %q: %s", e.Word, e.Reason)
}

// Is lets errors.Is match ErrInvalidWord.
func (e *InvalidWordError) Is(target error) bool {
	return target == ErrInvalidWord
}

// Normalize trims surrounding space and lowercases s.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Validate checks that w has exactly length letters in a-z.
func Validate(w string, length int) error {
	if len(w) != length {
		return &InvalidWordError{Word: w, Reason: fmt.Sprintf("must be %d letters, got %d", length, len(w))}
	}
	if !IsAlpha(w) {
		return &InvalidWordError{Word: w, Reason: "must contain only letters a-z"}
	}
	return nil
}

// Valid reports whether w passes Validate.
func Valid(w string, length int) bool {
	return len(w) == length && IsAlpha(w)
}

// IsAlpha reports whether s is non-empty and all lowercase ASCII letters.
func IsAlpha(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

// Index maps a lowercase letter to 0..25.
func Index(c byte) int {
	return int(c - 'a')
}
