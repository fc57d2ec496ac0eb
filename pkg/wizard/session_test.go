package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartcalda/pkg/sheet"
)

func sampleRows() []sheet.Row {
	row := func(sector any, plot, area string) sheet.Row {
		r := sheet.Row{
			"Talhão":           sheet.Text(plot),
			"Área (ha)":        sheet.Cell(area),
			"Fazenda":          sheet.Text("Santa Fé"),
			"Unidade":          sheet.Text("Usina Norte"),
			"Seção":            sheet.Text("S-3"),
			"Estágio de corte": sheet.Text("2º corte"),
		}
		switch v := sector.(type) {
		case string:
			r["Setor"] = sheet.Text(v)
		case float64:
			r["Setor"] = sheet.Number(v)
		}
		return r
	}
	return []sheet.Row{
		row(12.0, "T-01", "2"),
		row("12", "T-02", "3,5"),
		row("12", "T-03", "1"),
		row("120", "T-90", "9"),
		row("7", "", "4"),    // no plot id, never selectable
		row("7", "T-70", ""), // empty area degrades to 0 ha
	}
}

func searchInto(t *testing.T, s *Session, sector string) {
	t.Helper()
	require.NoError(t, s.Search(sector))
	require.Equal(t, StepPlots, s.Step())
}

func TestSearchMatching(t *testing.T) {
	s := NewSession(sampleRows())

	// "12" matches the numeric cell, the text cell and nothing else
	require.NoError(t, s.Search(" 12 "))
	assert.Len(t, s.Plots(), 3)

	require.NoError(t, s.Search("12"))
	assert.Len(t, s.Plots(), 3)

	err := s.Search("1")
	var nf *SectorNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "1", nf.Query)

	assert.ErrorIs(t, s.Search("   "), ErrEmptySector)
}

func TestSearchFailureLeavesStateAlone(t *testing.T) {
	s := NewSession(sampleRows())
	searchInto(t, s, "12")
	s.TogglePlot("T-01")

	require.Error(t, s.Search("999"))
	assert.Equal(t, StepPlots, s.Step())
	assert.Equal(t, 1, s.SelectedCount())
	assert.Len(t, s.Plots(), 3)
}

func TestPlotsSkipRules(t *testing.T) {
	s := NewSession(sampleRows())
	searchInto(t, s, "7")

	// the row without a plot id vanished, the empty area became 0
	require.Len(t, s.Plots(), 1)
	assert.Equal(t, "T-70", s.Plots()[0].ID)
	assert.Zero(t, s.Plots()[0].Area)
}

func TestAreaMathWithFactorAndOverride(t *testing.T) {
	s := NewSession(sampleRows())
	searchInto(t, s, "12")
	s.SelectAll()
	require.Equal(t, 3, s.SelectedCount())
	assert.InDelta(t, 6.5, s.TotalSelectedArea(), 1e-9)

	s.SetFactor("2")
	assert.InDelta(t, 13.0, s.TotalSelectedArea(), 1e-9)

	// overriding T-02 pins it regardless of the multiplier
	require.True(t, s.BeginEdit("T-02"))
	s.SaveEdit("5,0")
	assert.InDelta(t, 2*2+5+1*2, s.TotalSelectedArea(), 1e-9)

	s.SetFactor("3")
	assert.InDelta(t, 2*3+5+1*3, s.TotalSelectedArea(), 1e-9)

	s.ClearOverride("T-02")
	assert.InDelta(t, 6.5*3, s.TotalSelectedArea(), 1e-9)
}

func TestFactorParsing(t *testing.T) {
	s := NewSession(sampleRows())
	searchInto(t, s, "12")
	s.SelectAll()

	s.SetFactor("1,5")
	assert.InDelta(t, 1.5, s.Factor(), 1e-9)

	// junk and empty both mean no multiplication
	s.SetFactor("abc")
	assert.InDelta(t, 1, s.Factor(), 1e-9)
	s.SetFactor("2")
	s.SetFactor("")
	assert.InDelta(t, 1, s.Factor(), 1e-9)

	// a negative value keeps whatever was in effect
	s.SetFactor("2")
	s.SetFactor("-1")
	assert.InDelta(t, 2, s.Factor(), 1e-9)

	// zero is legal, zeroing every non-overridden area
	s.SetFactor("0")
	assert.Zero(t, s.TotalSelectedArea())
}

func TestEditProtocol(t *testing.T) {
	s := NewSession(sampleRows())
	searchInto(t, s, "12")
	s.SetFactor("2")

	// the editor opens on the effective area, not the base one
	require.True(t, s.BeginEdit("T-01"))
	id, buf := s.EditBuffer()
	assert.Equal(t, "T-01", id)
	assert.Equal(t, "4", buf)

	// toggling the plot under edit is a no-op
	s.TogglePlot("T-01")
	assert.Zero(t, s.SelectedCount())

	// non-numeric input drops silently, edit mode ends either way
	s.SaveEdit("garbage")
	assert.False(t, s.Overridden("T-01"))
	id, _ = s.EditBuffer()
	assert.Empty(t, id)

	require.True(t, s.BeginEdit("T-01"))
	s.SaveEdit("-4")
	assert.False(t, s.Overridden("T-01"), "negative overrides are rejected")

	require.True(t, s.BeginEdit("T-01"))
	s.CancelEdit()
	assert.False(t, s.Overridden("T-01"))

	assert.False(t, s.BeginEdit("T-99"))
}

func TestSelectAllFlips(t *testing.T) {
	s := NewSession(sampleRows())
	searchInto(t, s, "12")

	s.SelectAll()
	assert.Equal(t, 3, s.SelectedCount())
	s.SelectAll()
	assert.Zero(t, s.SelectedCount())

	s.TogglePlot("T-01")
	s.SelectAll()
	assert.Equal(t, 3, s.SelectedCount())
}

func TestStepGating(t *testing.T) {
	s := NewSession(sampleRows())
	assert.ErrorIs(t, s.Advance(), ErrWrongStep)

	searchInto(t, s, "12")
	assert.ErrorIs(t, s.Advance(), ErrNoSelection)

	s.TogglePlot("T-01")
	require.NoError(t, s.Advance())
	assert.Equal(t, StepApplication, s.Step())
	require.NoError(t, s.Advance())
	assert.Equal(t, StepReview, s.Step())
	assert.ErrorIs(t, s.Advance(), ErrWrongStep)

	s.Back()
	assert.Equal(t, StepApplication, s.Step())
	s.Back()
	s.Back()
	assert.Equal(t, StepSearch, s.Step())
	s.Back()
	assert.Equal(t, StepSearch, s.Step(), "back never passes the search step")
}

func TestInputs(t *testing.T) {
	s := NewSession(sampleRows())

	in, err := s.AddInput("Glifosato", 2.5, "L/ha")
	require.NoError(t, err)
	assert.NotEmpty(t, in.ID)

	_, err = s.AddInput("", 2.5, "L/ha")
	assert.ErrorIs(t, err, ErrBadInput)
	_, err = s.AddInput("Ureia", 0, "kg/ha")
	assert.ErrorIs(t, err, ErrBadInput)
	_, err = s.AddInput("Ureia", -1, "kg/ha")
	assert.ErrorIs(t, err, ErrBadInput)
	_, err = s.AddInput("Ureia", 1, "")
	assert.ErrorIs(t, err, ErrBadInput)

	require.Len(t, s.Inputs(), 1)
	assert.True(t, s.RemoveInput(in.ID))
	assert.False(t, s.RemoveInput(in.ID))
	assert.Empty(t, s.Inputs())
}

func TestSnapshot(t *testing.T) {
	s := NewSession(sampleRows())
	searchInto(t, s, "12")
	s.TogglePlot("T-02")
	s.SetFactor("2")

	st := s.Snapshot()
	assert.Equal(t, "talhoes", st.StepName)
	assert.Equal(t, "Santa Fé", st.Farm)
	assert.Equal(t, "Usina Norte", st.Unit)
	require.Len(t, st.Plots, 3)
	assert.InDelta(t, 3.5, st.Plots[1].BaseArea, 1e-9)
	assert.InDelta(t, 7.0, st.Plots[1].EffectiveArea, 1e-9)
	assert.True(t, st.Plots[1].Selected)
	assert.InDelta(t, 7.0, st.TotalArea, 1e-9)
}
