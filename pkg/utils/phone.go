package utils

import (
	"strings"
)

// NormalizePA normalizes a Panamanian phone number to E.164 (+507XXXXXXXX).
// Returns "" when the input cannot be read as a phone number.
func NormalizePA(phone string) string {
	if phone == "" {
		return ""
	}

	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' || r == '+' {
			b.WriteRune(r)
		}
	}
	only := b.String()

	switch {
	case strings.HasPrefix(only, "+"):
		return only
	case len(only) == 8:
		return "+507" + only
	case len(only) == 11 && strings.HasPrefix(only, "507"):
		return "+" + only
	case only == "":
		return ""
	default:
		return "+" + only
	}
}

// YappyAlias converts a phone number to the alias format the gateway
// expects: local digits only, no +507 country prefix.
func YappyAlias(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if strings.HasPrefix(digits, "507") {
		return digits[3:]
	}
	return digits
}
