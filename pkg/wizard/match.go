package wizard

import (
	"errors"
	"fmt"
	"strings"

	"smartcalda/pkg/sheet"
)

// ErrEmptySector is reported when the operator searches without typing a
// sector identifier.
var ErrEmptySector = errors.New("informe o nº do setor")

// SectorNotFoundError carries the original input for display.
type SectorNotFoundError struct{ Query string }

func (e *SectorNotFoundError) Error() string {
	return fmt.Sprintf("setor %q não encontrado", e.Query)
}

// MatchSector returns every row whose resolved sector value equals the
// query, compared as trimmed lower-cased strings. Exact equality only:
// "12" matches 12, "12" and " 12 " but never "120".
func MatchSector(rows []sheet.Row, query string) []sheet.Row {
	clean := strings.ToLower(strings.TrimSpace(query))
	var out []sheet.Row
	for _, row := range rows {
		v := sheet.Resolve(row, sheet.SectorCols)
		if !v.Defined() {
			continue
		}
		if strings.ToLower(strings.TrimSpace(v.String())) == clean {
			out = append(out, row)
		}
	}
	return out
}
