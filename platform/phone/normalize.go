// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strings"
	"unicode"

	"github.com/nyaruka/phonenumbers"
)

const defaultRegion = "BR"

// NormalizeE164 formats a phone number to E.164. If parsing fails, it returns the trimmed input.
func NormalizeE164(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	number, err := phonenumbers.Parse(trimmed, defaultRegion)
	if err != nil {
		return trimmed
	}

	if !phonenumbers.IsValidNumber(number) {
		return trimmed
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}

// DigitCount returns the number of decimal digits in the input, ignoring
// formatting characters.
func DigitCount(input string) int {
	count := 0
	for _, r := range input {
		if unicode.IsDigit(r) {
			count++
		}
	}
	return count
}

// IsPlausible reports whether the input holds at least min digits after
// stripping formatting. Used for the contact-step phone rule.
func IsPlausible(input string, min int) bool {
	return DigitCount(input) >= min
}
