package validation

import "regexp"

var (
	nonDigit     = regexp.MustCompile(`\D`)
	phoneCharset = regexp.MustCompile(`^\+?[0-9\s\-()]+$`)
)

// NormalizePhone strips everything but digits
func NormalizePhone(phone string) string {
	return nonDigit.ReplaceAllString(phone, "")
}

// ValidPhone accepts 10 to 15 digits, optionally formatted with spaces, dashes,
// parentheses and a leading plus.
func ValidPhone(phone string) bool {
	if !phoneCharset.MatchString(phone) {
		return false
	}
	n := len(NormalizePhone(phone))
	return n >= 10 && n <= 15
}
