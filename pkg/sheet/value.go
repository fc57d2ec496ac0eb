package sheet

import (
	"strconv"
	"strings"
)

// Value is one cell: empty, text or number. Rows keep whatever the source
// file had; typing happens when a caller asks for Float.
type Value struct {
	kind kind
	text string
	num  float64
}

type kind int

const (
	kindEmpty kind = iota
	kindText
	kindNumber
)

func Text(s string) Value {
	if s == "" {
		return Value{}
	}
	return Value{kind: kindText, text: s}
}

func Number(f float64) Value { return Value{kind: kindNumber, num: f} }

// Defined reports whether the cell held anything at all.
func (v Value) Defined() bool { return v.kind != kindEmpty }

func (v Value) String() string {
	switch v.kind {
	case kindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case kindText:
		return v.text
	}
	return ""
}

// Float parses the cell as a number. Text cells accept both "." and ","
// as decimal separator. Returns false when the cell is empty or not numeric.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case kindNumber:
		return v.num, true
	case kindText:
		return ParseDecimal(v.text)
	}
	return 0, false
}

// ParseDecimal parses a decimal accepting the Brazilian comma separator.
func ParseDecimal(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Row is a raw spreadsheet row: column name exactly as found in the file
// (accents and case included) mapped to its cell. Immutable once loaded.
type Row map[string]Value

// Cell builds a Value from a raw cell string, keeping numeric-looking
// content as a number so "12" and 12 compare equal downstream.
func Cell(raw string) Value {
	if raw == "" {
		return Value{}
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
		return Number(f)
	}
	return Text(raw)
}
