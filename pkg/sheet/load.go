package sheet

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"
)

// ErrEmptyDataset is returned when a file parses but yields no data rows.
// Imports are all-or-nothing: a partial dataset is never accepted.
var ErrEmptyDataset = errors.New("a planilha parece estar vazia")

// LoadWorkbook reads an uploaded registration or stock workbook into rows.
// The format is picked from the file name extension (.xlsx, .xls, .csv);
// only the first sheet is read, matching the web importer.
func LoadWorkbook(r io.Reader, filename string) ([]Row, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xls":
		return loadXLS(r)
	case ".csv":
		return loadCSV(r)
	default:
		return loadXLSX(r)
	}
}

func loadXLSX(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyDataset
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	return rowsFromRecords(records)
}

// loadXLS goes through a temp file: the xls reader wants a file path.
func loadXLS(r io.Reader) ([]Row, error) {
	tmp, err := os.CreateTemp("", "smartcalda-*.xls")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, err
	}
	tmp.Close()

	wb, err := xls.OpenFile(tmp.Name())
	if err != nil {
		return nil, err
	}
	if wb.GetNumberSheets() == 0 {
		return nil, ErrEmptyDataset
	}
	sh, err := wb.GetSheet(0)
	if err != nil || sh == nil {
		return nil, ErrEmptyDataset
	}

	var records [][]string
	for i := 0; i <= int(sh.GetNumberRows()); i++ {
		row, err := sh.GetRow(i)
		if err != nil || row == nil {
			continue
		}
		var rec []string
		for _, col := range row.GetCols() {
			if col != nil {
				rec = append(rec, col.GetString())
			} else {
				rec = append(rec, "")
			}
		}
		records = append(records, rec)
	}
	return rowsFromRecords(records)
}

func loadCSV(r io.Reader) ([]Row, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(strings.NewReader(string(raw)))
	cr.FieldsPerRecord = -1
	// Brazilian exports usually come semicolon-separated
	if head, _, _ := strings.Cut(string(raw), "\n"); strings.Count(head, ";") > strings.Count(head, ",") {
		cr.Comma = ';'
	}
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	return rowsFromRecords(records)
}

// rowsFromRecords turns a header row plus data records into Rows. Short
// records are padded, all-blank records skipped, duplicate headers keep
// the first occurrence.
func rowsFromRecords(records [][]string) ([]Row, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}
	header := records[0]
	cols := make([]string, len(header))
	seen := map[string]bool{}
	for i, h := range header {
		h = strings.TrimPrefix(strings.TrimSpace(h), "\uFEFF")
		if h == "" || seen[h] {
			cols[i] = ""
			continue
		}
		seen[h] = true
		cols[i] = h
	}

	var out []Row
	for _, rec := range records[1:] {
		row := Row{}
		blank := true
		for i, name := range cols {
			if name == "" {
				continue
			}
			raw := ""
			if i < len(rec) {
				raw = strings.TrimSpace(rec[i])
			}
			if raw != "" {
				blank = false
			}
			row[name] = Cell(raw)
		}
		if !blank {
			out = append(out, row)
		}
	}
	if len(out) == 0 {
		return nil, ErrEmptyDataset
	}
	return out, nil
}
