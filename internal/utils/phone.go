package utils

import "strings"

// DigitsOnly strips everything but 0-9 from a phone-like string.
// "+1 (555) 010-2030" becomes "15550102030".
func DigitsOnly(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
