package utils

import "strings"

// TrimOrEmpty normalizes user input without turning nil into "nil".
func TrimOrEmpty(s string) string {
	return strings.TrimSpace(s)
}

// NormalizePhone strips separators commonly pasted into phone fields.
func NormalizePhone(s string) string {
	replacer := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
	return replacer.Replace(strings.TrimSpace(s))
}

// ValidPhone accepts 8-15 digits with an optional leading plus.
func ValidPhone(s string) bool {
	s = NormalizePhone(s)
	if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	if len(s) < 8 || len(s) > 15 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
