package sheet

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Resolve returns the value of the first column matching one of the alias
// names under Normalize. When no alias matches exactly, the first word of
// the first alias (if longer than 3 runes) is searched as a substring of
// the normalized column names. Never fails: a missing field is the zero
// Value and callers apply their own defaults.
func Resolve(row Row, aliases []string) Value {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	// sorted so the tie-break does not depend on map iteration order
	sort.Strings(keys)

	for _, alias := range aliases {
		want := Normalize(alias)
		for _, k := range keys {
			if Normalize(k) == want {
				return row[k]
			}
		}
	}

	if len(aliases) > 0 {
		keyword := Normalize(strings.SplitN(aliases[0], " ", 2)[0])
		if utf8.RuneCountInString(keyword) > 3 {
			for _, k := range keys {
				if strings.Contains(Normalize(k), keyword) {
					return row[k]
				}
			}
		}
	}
	return Value{}
}

// ResolveString resolves a field and falls back to def when the cell is
// missing or blank.
func ResolveString(row Row, aliases []string, def string) string {
	v := Resolve(row, aliases)
	if s := v.String(); s != "" {
		return s
	}
	return def
}

// ResolveFloat resolves a numeric field, 0 when missing or unparsable.
func ResolveFloat(row Row, aliases []string) float64 {
	f, _ := Resolve(row, aliases).Float()
	return f
}
