package wizard

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"smartcalda/entities"
	"smartcalda/pkg/sheet"
)

// Step of the per-sector sub-flow. Linear forward/back; the jump from plot
// selection to application data is gated on a non-empty selection.
type Step int

const (
	StepSearch Step = iota + 1
	StepPlots
	StepApplication
	StepReview
)

func (s Step) String() string {
	switch s {
	case StepSearch:
		return "busca"
	case StepPlots:
		return "talhoes"
	case StepApplication:
		return "aplicacao"
	case StepReview:
		return "resumo"
	}
	return "?"
}

var (
	ErrNoSelection = errors.New("selecione ao menos um talhão")
	ErrWrongStep   = errors.New("ação não disponível neste passo")
	ErrBadInput    = errors.New("produto inválido: informe nome, dose e unidade")
)

// Operational fields typed on the application step.
type Operational struct {
	CostCenter    string `json:"costCenter"`
	OperationCode string `json:"operationCode"`
	FlowRate      string `json:"flowRate"`
	TankCapacity  string `json:"tankCapacity"`
	Supervisor    string `json:"supervisor"`
}

// CostCenters known by the operation, as printed on the order.
var CostCenters = []string{
	"5121 – Soqueira",
	"5116 – Rua Mãe",
	"5111 – Preparo de solo",
	"5117 – Plantio",
}

// Session owns all mutable wizard state for one operator run: the queue of
// finished sectors plus the sector in progress. Source rows are read-only;
// edits only ever touch override state.
type Session struct {
	ID        string
	CreatedAt time.Time

	data []sheet.Row

	step  Step
	queue []entities.RecommendationSummary

	// current sector
	sector    string
	matched   []sheet.Row
	plots     []entities.SelectedPlot // base areas, dataset order
	selected  map[string]bool
	overrides map[string]float64
	factor    float64
	factorRaw string

	// inline area editing
	editing string
	editBuf string

	inputs []entities.AgriculturalInput
	ops    Operational
}

func NewSession(data []sheet.Row) *Session {
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		data:      data,
		step:      StepSearch,
	}
	s.resetLocation()
	return s
}

func (s *Session) Step() Step { return s.step }

// Search matches a sector and, on success, moves to plot selection with a
// clean override slate. Failures leave the session untouched.
func (s *Session) Search(query string) error {
	if strings.TrimSpace(query) == "" {
		return ErrEmptySector
	}
	m := MatchSector(s.data, query)
	if len(m) == 0 {
		return &SectorNotFoundError{Query: query}
	}
	s.sector = query
	s.matched = m
	s.plots = availablePlots(m)
	s.selected = map[string]bool{}
	s.overrides = map[string]float64{}
	s.editing = ""
	s.editBuf = ""
	s.step = StepPlots
	return nil
}

// availablePlots derives the selectable plots from the matched rows. Rows
// without a plot id or with an unparsable area are skipped; a missing area
// column degrades to 0 ha.
func availablePlots(rows []sheet.Row) []entities.SelectedPlot {
	var out []entities.SelectedPlot
	for _, row := range rows {
		id := sheet.Resolve(row, sheet.PlotCols).String()
		if id == "" {
			continue
		}
		area := 0.0
		if v := sheet.Resolve(row, sheet.AreaCols); v.Defined() {
			f, ok := v.Float()
			if !ok {
				continue
			}
			area = f
		}
		out = append(out, entities.SelectedPlot{ID: id, Area: area})
	}
	return out
}

// Plots returns the base plots of the matched sector.
func (s *Session) Plots() []entities.SelectedPlot { return s.plots }

func (s *Session) plot(id string) (entities.SelectedPlot, bool) {
	for _, p := range s.plots {
		if p.ID == id {
			return p, true
		}
	}
	return entities.SelectedPlot{}, false
}

// EffectiveArea applies the override-else-base×factor rule. An overridden
// plot ignores the multiplier until the override is cleared.
func (s *Session) EffectiveArea(p entities.SelectedPlot) float64 {
	if v, ok := s.overrides[p.ID]; ok {
		return v
	}
	return p.Area * s.factor
}

// TotalSelectedArea sums effective areas over the selection. Recomputed on
// demand; empty selection is simply 0.
func (s *Session) TotalSelectedArea() float64 {
	total := 0.0
	for _, p := range s.plots {
		if s.selected[p.ID] {
			total += s.EffectiveArea(p)
		}
	}
	return total
}

// TogglePlot flips selection. A plot being edited cannot be toggled: the
// edit must be saved or cancelled first.
func (s *Session) TogglePlot(id string) {
	if s.editing == id {
		return
	}
	if _, ok := s.plot(id); !ok {
		return
	}
	if s.selected[id] {
		delete(s.selected, id)
	} else {
		s.selected[id] = true
	}
}

// SelectAll selects every plot, or clears the selection when everything is
// already selected.
func (s *Session) SelectAll() {
	if len(s.selected) == len(s.plots) {
		s.selected = map[string]bool{}
		return
	}
	for _, p := range s.plots {
		s.selected[p.ID] = true
	}
}

func (s *Session) SelectedCount() int { return len(s.selected) }

// BeginEdit opens the inline editor seeded with the current effective area,
// so editing after a multiplier starts from the multiplied value.
func (s *Session) BeginEdit(id string) bool {
	p, ok := s.plot(id)
	if !ok {
		return false
	}
	s.editing = id
	s.editBuf = strconv.FormatFloat(s.EffectiveArea(p), 'f', -1, 64)
	return true
}

func (s *Session) EditBuffer() (plotID, value string) { return s.editing, s.editBuf }

func (s *Session) CancelEdit() {
	s.editing = ""
	s.editBuf = ""
}

// SaveEdit stores raw as an override for the plot under edit. Non-numeric
// or negative input is silently dropped, keeping the prior value; either
// way edit mode ends.
func (s *Session) SaveEdit(raw string) {
	id := s.editing
	s.editing = ""
	s.editBuf = ""
	if id == "" {
		return
	}
	if v, ok := sheet.ParseDecimal(raw); ok && v >= 0 {
		s.overrides[id] = v
	}
}

// ClearOverride reverts a plot to base × factor.
func (s *Session) ClearOverride(id string) { delete(s.overrides, id) }

func (s *Session) Overridden(id string) bool {
	_, ok := s.overrides[id]
	return ok
}

// SetFactor updates the global multiplier. Empty or unparsable input means
// 1; a negative value keeps the prior factor.
func (s *Session) SetFactor(raw string) {
	v, ok := sheet.ParseDecimal(raw)
	if !ok {
		s.factor = 1
		s.factorRaw = raw
		return
	}
	if v < 0 {
		return
	}
	s.factor = v
	s.factorRaw = raw
}

func (s *Session) Factor() float64 { return s.factor }

// AddInput appends a product to the mixture.
func (s *Session) AddInput(name string, dose float64, unit string) (entities.AgriculturalInput, error) {
	if name == "" || dose <= 0 || unit == "" {
		return entities.AgriculturalInput{}, ErrBadInput
	}
	in := entities.AgriculturalInput{ID: uuid.NewString(), Name: name, Dose: dose, Unit: unit}
	s.inputs = append(s.inputs, in)
	return in, nil
}

func (s *Session) RemoveInput(id string) bool {
	for i, in := range s.inputs {
		if in.ID == id {
			s.inputs = append(s.inputs[:i], s.inputs[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Session) Inputs() []entities.AgriculturalInput { return s.inputs }

func (s *Session) SetOperational(ops Operational) { s.ops = ops }

func (s *Session) OperationalFields() Operational { return s.ops }

// Advance moves the flow forward. From plot selection it requires at least
// one selected plot; from search the way forward is Search, from review
// the terminal actions.
func (s *Session) Advance() error {
	switch s.step {
	case StepPlots:
		if len(s.selected) == 0 {
			return ErrNoSelection
		}
		s.step = StepApplication
	case StepApplication:
		s.step = StepReview
	default:
		return ErrWrongStep
	}
	return nil
}

// Back moves one step back, never past search.
func (s *Session) Back() {
	if s.step > StepSearch {
		s.step--
	}
}

func (s *Session) resetLocation() {
	s.sector = ""
	s.matched = nil
	s.plots = nil
	s.selected = map[string]bool{}
	s.overrides = map[string]float64{}
	s.factor = 1
	s.factorRaw = ""
	s.editing = ""
	s.editBuf = ""
}

func (s *Session) resetMixture() {
	s.inputs = nil
	s.ops = Operational{}
}
