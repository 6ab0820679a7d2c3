// Package validate holds the pure field checks applied to LPR submissions
// before any bus or network I/O happens.
package validate

import (
	"strconv"
	"strings"
	"unicode"
)

const (
	maxPlateLen = 20
	maxLogoLen  = 50
)

// Plate reports whether s is a usable plate number: non-empty, alphanumeric
// and at most 20 characters.
func Plate(s string) bool {
	return alnum(s, maxPlateLen)
}

// Logo reports whether s is a usable car logo: non-empty, alphanumeric and at
// most 50 characters.
func Logo(s string) bool {
	return alnum(s, maxLogoLen)
}

func alnum(s string, max int) bool {
	if s == "" {
		return false
	}
	n := 0
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
		n++
	}
	return n <= max
}

// Sanitize escapes angle brackets so a field value cannot carry markup into
// logs or downstream consumers. Entities contain no angle brackets, so
// applying it twice changes nothing.
func Sanitize(s string) string {
	s = strings.ReplaceAll(s, "<", "&lt;")
	return strings.ReplaceAll(s, ">", "&gt;")
}

// Confidence parses an unsigned decimal with at most one point. Any other
// value, including an empty string, yields no confidence; malformed input is
// tolerated rather than rejected.
func Confidence(s string) *float64 {
	if !unsignedDecimal(s) {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func unsignedDecimal(s string) bool {
	digits, dots := 0, 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}
