package sheet

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize trims, lower-cases and strips diacritics so "Área (ha)" and
// "area (ha)" compare equal. Also eats a UTF-8 BOM left by Excel exports.
func Normalize(s string) string {
	s = strings.TrimPrefix(strings.TrimSpace(s), "\uFEFF")
	t := transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
		return unicode.Is(unicode.Mn, r)
	}))
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}
