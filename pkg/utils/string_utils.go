package utils

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// NormalizeEmployeeCode upper-cases and trims an employee code, e.g. "iga1-02849" -> "IGA1-02849".
func NormalizeEmployeeCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// LooksLikeEmployeeCode reports whether a chat text should be treated as a binding attempt.
// Codes are ten characters with a dash, e.g. IGA1-02849. Length counts runes, not bytes.
func LooksLikeEmployeeCode(s string) bool {
	s = strings.TrimSpace(s)
	return utf8.RuneCountInString(s) == 10 && strings.Contains(s, "-")
}

var clockRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// IsValidClock reports whether s is a 24h "HH:MM" wall-clock value.
func IsValidClock(s string) bool {
	return clockRegex.MatchString(s)
}
