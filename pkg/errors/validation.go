package errors

import (
	"strings"
	"unicode/utf8"
)

// MaxPatternLength bounds patterns accepted from untrusted callers.
const MaxPatternLength = 4096

// ValidatePattern checks a pattern received over an external interface.
//
// The rules only guard the service, they say nothing about regex syntax:
//   - No empty patterns
//   - Valid UTF-8
//   - At most MaxPatternLength bytes
func ValidatePattern(pattern string) error {
	if pattern == "" {
		return New(ErrCodeInvalidInput, "pattern cannot be empty")
	}
	if len(pattern) > MaxPatternLength {
		return New(ErrCodeInvalidInput, "pattern too long (max %d bytes)", MaxPatternLength)
	}
	if !utf8.ValidString(pattern) {
		return New(ErrCodeInvalidInput, "pattern is not valid UTF-8")
	}
	return nil
}

// ValidateFormat checks that format is one of allowed (case-insensitive)
// and returns its lower-case form.
func ValidateFormat(format string, allowed ...string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	for _, a := range allowed {
		if f == a {
			return f, nil
		}
	}
	return "", New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(allowed, ", "))
}
