package sanitize

import (
	"strings"
	"unicode"
)

// Email menormalkan alamat email (trim + lowercase)
func Email(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// Phone membuang spasi, strip, dan tanda kurung dari nomor telepon
func Phone(v string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(v) {
		switch {
		case unicode.IsDigit(r), r == '+':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidPhone menerima nomor 8-15 digit, optional prefix +
func ValidPhone(v string) bool {
	v = Phone(v)
	v = strings.TrimPrefix(v, "+")
	if len(v) < 8 || len(v) > 15 {
		return false
	}
	for _, r := range v {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// StrongPassword minimal 8 karakter, mengandung huruf dan angka
func StrongPassword(v string) bool {
	if len(v) < 8 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range v {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}
