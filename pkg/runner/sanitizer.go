package runner

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxInputSize is 4KB (conservative default)
var DefaultMaxInputSize = 4096

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// SanitizeInput cleans respondent input with DefaultMaxInputSize.
func SanitizeInput(input string) (string, error) {
	return SanitizeInputLimit(input, DefaultMaxInputSize)
}

// SanitizeInputLimit cleans input by enforcing a size limit,
// validating UTF-8, and stripping dangerous control characters.
// A non-positive limit falls back to DefaultMaxInputSize.
func SanitizeInputLimit(input string, limit int) (string, error) {
	if limit <= 0 {
		limit = DefaultMaxInputSize
	}

	// 1. Enforce Size Limit
	if len(input) > limit {
		// Reject rather than truncate: a truncated answer is a different answer.
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}

	// 2. Validate UTF-8
	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	// 3. Strip Control Characters
	// Newline, tab and carriage return survive; ESC, NULL, BEL etc. do not.
	// This prevents log poisoning and terminal corruption.

	// Fast path: if no control chars, return as is.
	clean := true
	for _, r := range input {
		if unicode.IsControl(r) && !isSafeControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return input, nil
	}

	// Slow path: build clean string
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if !unicode.IsControl(r) || isSafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func isSafeControl(r rune) bool {
	return r == '\n' || r == '\t' || r == '\r'
}
