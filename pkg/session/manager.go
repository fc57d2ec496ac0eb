package session

import (
	"errors"
	"sync"

	"smartcalda/pkg/sheet"
	"smartcalda/pkg/stock"
	"smartcalda/pkg/wizard"
)

var (
	ErrNoDataset = errors.New("nenhuma planilha importada")
	ErrNotFound  = errors.New("sessão não encontrada")
)

// Manager owns the imported datasets and the live wizard sessions. All
// session mutation goes through Do so one request at a time touches a
// given run; the loaded rows themselves are read-only.
type Manager struct {
	mu       sync.Mutex
	rows     []sheet.Row
	ledger   *stock.Ledger
	sessions map[string]*wizard.Session
}

func NewManager() *Manager {
	return &Manager{sessions: map[string]*wizard.Session{}}
}

// SetDataset replaces the registration rows for subsequent sessions.
func (m *Manager) SetDataset(rows []sheet.Row) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = rows
}

func (m *Manager) DatasetSize() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

// SetLedger replaces the stock ledger; nil disables stock checks.
func (m *Manager) SetLedger(l *stock.Ledger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ledger = l
}

func (m *Manager) Ledger() *stock.Ledger {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ledger
}

// Create starts a wizard run over the currently imported dataset.
func (m *Manager) Create() (*wizard.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.rows) == 0 {
		return nil, ErrNoDataset
	}
	s := wizard.NewSession(m.rows)
	m.sessions[s.ID] = s
	return s, nil
}

// Do runs fn with exclusive access to the session.
func (m *Manager) Do(id string, fn func(*wizard.Session) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	return fn(s)
}

// Drop forgets a finished session.
func (m *Manager) Drop(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}
