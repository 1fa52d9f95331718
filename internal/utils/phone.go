package utils

import (
	"regexp"
	"strings"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{8,15}$`)

// NormalizePhone canonicalizes a user-entered phone number into the key
// format used for the spin ledger and the remote service. Two inputs that
// denote the same subscriber must normalize to the same key. Best effort
// only; it does not guarantee international validity.
func NormalizePhone(raw, countryCode string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		if r == '+' || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	s := b.String()

	if strings.HasPrefix(s, "00") {
		s = "+" + s[2:]
	}
	if !strings.HasPrefix(s, "+") && len(s) == 9 && isDigits(s) {
		s = countryCode + s
	}
	if len(s) == 10 && strings.HasPrefix(s, "0") && isDigits(s) {
		s = countryCode + s[1:]
	}
	return s
}

// ValidatePhone reports whether a normalized phone number is acceptable:
// an optional leading plus followed by 8 to 15 digits.
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
