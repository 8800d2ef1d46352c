package links

import (
	"regexp"
	"strings"
)

const (
	MinCodeLength = 6
	MaxCodeLength = 8
)

var codePattern = regexp.MustCompile(`^[A-Za-z0-9]{6,8}$`)

// IsValidCode reports whether code may be submitted as a custom short code.
// A blank code is valid: the server generates one.
func IsValidCode(code string) bool {
	code = strings.TrimSpace(code)
	if code == "" {
		return true
	}
	return codePattern.MatchString(code)
}
