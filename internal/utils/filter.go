package utils

import (
	"errors"
	"fmt"
)

var (
	// ErrInputTooLong is returned for prefixes or titles longer than the configured maximum
	ErrInputTooLong = errors.New("input too long")
	// ErrControlChars is returned for input containing control bytes
	ErrControlChars = errors.New("input contains control characters")
)

// IsSingleByte reports whether every byte of s is 7-bit ASCII.
// Titles are matched byte by byte, so multi-byte input still works but may split characters.
func IsSingleByte(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// ContainsControlChars checks for ASCII control bytes, tab excluded
func ContainsControlChars(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 0x20 && c != '\t') || c == 0x7f {
			return true
		}
	}
	return false
}

// CheckInput validates user input before it reaches the catalog.
// A maxLen of 0 or less disables the length check.
func CheckInput(s string, maxLen int) error {
	if maxLen > 0 && len(s) > maxLen {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLong, len(s), maxLen)
	}
	if ContainsControlChars(s) {
		return ErrControlChars
	}
	return nil
}
