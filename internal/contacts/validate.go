package contacts

import (
	"regexp"
	"strings"
)

var (
	phoneSeparatorRe = regexp.MustCompile(`[\s\-\(\)\+]`)
	phoneDigitsRe    = regexp.MustCompile(`^[0-9]{10,15}$`)
	emailRe          = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)
)

// NormalizePhone strips spaces, hyphens, parentheses and plus signs, then
// requires 10-15 digits. ok is false when the result is not a valid phone.
func NormalizePhone(raw string) (string, bool) {
	cleaned := phoneSeparatorRe.ReplaceAllString(raw, "")
	if !phoneDigitsRe.MatchString(cleaned) {
		return "", false
	}
	return cleaned, true
}

// ValidEmail reports whether s looks like a local@domain.tld address.
func ValidEmail(s string) bool {
	return emailRe.MatchString(strings.TrimSpace(s))
}
