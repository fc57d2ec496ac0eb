package sheet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestLoadCSVSemicolon(t *testing.T) {
	csv := "Setor;Talhão;Área (ha)\n12;T-01;2,5\n12;T-02;3\n"
	rows, err := LoadWorkbook(strings.NewReader(csv), "base.csv")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "12", Resolve(rows[0], SectorCols).String())
	assert.Equal(t, "T-01", Resolve(rows[0], PlotCols).String())
	a, ok := Resolve(rows[0], AreaCols).Float()
	require.True(t, ok)
	assert.InDelta(t, 2.5, a, 1e-9)
}

func TestLoadCSVComma(t *testing.T) {
	csv := "Setor,Talhao,Area\n7,T-9,4.25\n"
	rows, err := LoadWorkbook(strings.NewReader(csv), "base.csv")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.InDelta(t, 4.25, ResolveFloat(rows[0], AreaCols), 1e-9)
}

func TestLoadCSVBOMHeader(t *testing.T) {
	csv := "\uFEFFSetor;Talhão\n3;T-1\n"
	rows, err := LoadWorkbook(strings.NewReader(csv), "base.csv")
	require.NoError(t, err)
	assert.Equal(t, "3", Resolve(rows[0], SectorCols).String())
}

func TestLoadCSVShortAndBlankRows(t *testing.T) {
	csv := "Setor;Talhão;Área (ha)\n12;T-01\n;;\n12;T-02;1\n"
	rows, err := LoadWorkbook(strings.NewReader(csv), "base.csv")
	require.NoError(t, err)
	// the all-blank record disappears, the short one is padded
	require.Len(t, rows, 2)
	assert.False(t, Resolve(rows[0], AreaCols).Defined())
}

func TestLoadCSVDuplicateHeaderKeepsFirst(t *testing.T) {
	csv := "Setor;Setor;Talhão\nfirst;second;T-1\n"
	rows, err := LoadWorkbook(strings.NewReader(csv), "base.csv")
	require.NoError(t, err)
	assert.Equal(t, "first", Resolve(rows[0], SectorCols).String())
}

func TestLoadEmptyDataset(t *testing.T) {
	_, err := LoadWorkbook(strings.NewReader("Setor;Talhão\n"), "base.csv")
	assert.ErrorIs(t, err, ErrEmptyDataset)

	_, err = LoadWorkbook(strings.NewReader(""), "base.csv")
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestLoadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheetName := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheetName, "A1", &[]any{"Setor", "Talhão", "Área (ha)"}))
	require.NoError(t, f.SetSheetRow(sheetName, "A2", &[]any{12, "T-01", 2.5}))
	require.NoError(t, f.SetSheetRow(sheetName, "A3", &[]any{12, "T-02", 3.0}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, err := LoadWorkbook(buf, "base.xlsx")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// the numeric sector must compare equal to its text form
	assert.Equal(t, "12", Resolve(rows[0], SectorCols).String())
	assert.InDelta(t, 2.5, ResolveFloat(rows[0], AreaCols), 1e-9)
}
