package stock

import (
	"strings"

	"github.com/google/uuid"

	"smartcalda/pkg/sheet"
)

// Threshold policy for the dashboard levels. The sheet is the source of
// truth for quantities; these only color the advisory display.
const (
	CriticalRatio = 0.10
	LowRatio      = 0.20
)

// Item is one product of the stock ledger. Balance is net of reservations.
type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Unit     string  `json:"unit"`
	Total    float64 `json:"total"`
	Reserved float64 `json:"reserved"`
	Balance  float64 `json:"balance"`
}

type Level string

const (
	LevelOK       Level = "ok"
	LevelLow      Level = "low"
	LevelCritical Level = "critical"
)

// LevelOf classifies an item for display purposes only.
func LevelOf(it Item) Level {
	switch {
	case it.Balance <= 0 || it.Balance < it.Total*CriticalRatio:
		return LevelCritical
	case it.Balance < it.Total*LowRatio:
		return LevelLow
	}
	return LevelOK
}

// Status is the required-vs-available check for one dose over an area.
type Status struct {
	Required   float64 `json:"required"`
	Balance    float64 `json:"balance"`
	Sufficient bool    `json:"sufficient"`
}

// StatusFor computes the advisory stock status of an applied input.
func StatusFor(dose, totalArea float64, it Item) Status {
	required := dose * totalArea
	return Status{
		Required:   required,
		Balance:    it.Balance,
		Sufficient: it.Balance >= required,
	}
}

// Ledger indexes stock items by normalized product name.
type Ledger struct {
	items  []Item
	byName map[string]Item
}

// ParseLedger ingests raw stock rows. Rows whose product name cannot be
// resolved are dropped (header noise, subtotal lines). When the sheet
// balance is zero but total is positive the balance column is taken as
// absent and recomputed as total - reserved; an explicit zero balance with
// zero total is trusted.
func ParseLedger(rows []sheet.Row) *Ledger {
	l := &Ledger{byName: map[string]Item{}}
	for _, row := range rows {
		name := sheet.Resolve(row, sheet.StockNameCols).String()
		if name == "" {
			continue
		}
		total := sheet.ResolveFloat(row, sheet.StockTotalCols)
		reserved := sheet.ResolveFloat(row, sheet.StockReservedCols)
		balance := sheet.ResolveFloat(row, sheet.StockBalanceCols)
		if balance == 0 && total > 0 {
			balance = total - reserved
		}
		it := Item{
			ID:       uuid.NewString(),
			Name:     name,
			Unit:     sheet.Resolve(row, sheet.StockUnitCols).String(),
			Total:    total,
			Reserved: reserved,
			Balance:  balance,
		}
		l.items = append(l.items, it)
		key := sheet.Normalize(name)
		if _, dup := l.byName[key]; !dup {
			l.byName[key] = it
		}
	}
	return l
}

// Find resolves a product by name, case- and diacritic-insensitively.
// Exact equality only: no partial matching here.
func (l *Ledger) Find(name string) (Item, bool) {
	if l == nil || len(l.byName) == 0 {
		return Item{}, false
	}
	it, ok := l.byName[sheet.Normalize(name)]
	return it, ok
}

// Items returns the ledger in sheet order.
func (l *Ledger) Items() []Item {
	if l == nil {
		return nil
	}
	return l.items
}

// Search filters items by a case-insensitive substring of the name.
func (l *Ledger) Search(q string) []Item {
	if l == nil {
		return nil
	}
	if q == "" {
		return l.items
	}
	lower := strings.ToLower(q)
	var out []Item
	for _, it := range l.items {
		if strings.Contains(strings.ToLower(it.Name), lower) {
			out = append(out, it)
		}
	}
	return out
}

// Len reports the number of items; zero means stock checks are disabled.
func (l *Ledger) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}
