package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartcalda/pkg/sheet"
	"smartcalda/pkg/stock"
	"smartcalda/pkg/wizard"
)

func TestCreateRequiresDataset(t *testing.T) {
	m := NewManager()
	_, err := m.Create()
	assert.ErrorIs(t, err, ErrNoDataset)

	m.SetDataset([]sheet.Row{{"Setor": sheet.Text("12"), "Talhão": sheet.Text("T-01")}})
	s, err := m.Create()
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
}

func TestDoAndDrop(t *testing.T) {
	m := NewManager()
	m.SetDataset([]sheet.Row{{"Setor": sheet.Text("12"), "Talhão": sheet.Text("T-01")}})
	s, err := m.Create()
	require.NoError(t, err)

	err = m.Do(s.ID, func(ws *wizard.Session) error {
		return ws.Search("12")
	})
	require.NoError(t, err)

	m.Drop(s.ID)
	assert.ErrorIs(t, m.Do(s.ID, func(*wizard.Session) error { return nil }), ErrNotFound)
	assert.ErrorIs(t, m.Do("nope", func(*wizard.Session) error { return nil }), ErrNotFound)
}

func TestLedgerSwap(t *testing.T) {
	m := NewManager()
	assert.Zero(t, m.Ledger().Len())

	m.SetLedger(stock.ParseLedger([]sheet.Row{{"Insumo": sheet.Text("Ureia"), "Saldo": sheet.Number(10)}}))
	assert.Equal(t, 1, m.Ledger().Len())

	m.SetLedger(nil)
	assert.Zero(t, m.Ledger().Len())
}
