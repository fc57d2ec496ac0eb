package wizard

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"smartcalda/entities"
	"smartcalda/pkg/sheet"
)

// Placeholder values printed when the spreadsheet lacks a field.
const (
	UnknownFarm = "Não identificado"
	NotInformed = "Não informado"
	EmptyField  = "-"
)

// buildSummary assembles an immutable record from the current state.
// Identifier and timestamp are assigned at call time. The first matched
// row provides the location context; missing fields fall back to the
// placeholders above.
func (s *Session) buildSummary() entities.RecommendationSummary {
	ctx := sheet.Row{}
	if len(s.matched) > 0 {
		ctx = s.matched[0]
	}

	var plots []entities.SelectedPlot
	total := 0.0
	for _, p := range s.plots {
		if !s.selected[p.ID] {
			continue
		}
		area := s.EffectiveArea(p)
		plots = append(plots, entities.SelectedPlot{ID: p.ID, Area: area})
		total += area
	}

	inputs := make([]entities.AgriculturalInput, len(s.inputs))
	copy(inputs, s.inputs)

	return entities.RecommendationSummary{
		ID:            uuid.NewString(),
		Date:          time.Now().UTC(),
		Sector:        strings.TrimSpace(s.sector),
		Farm:          sheet.ResolveString(ctx, sheet.FarmCols, UnknownFarm),
		Unit:          sheet.ResolveString(ctx, sheet.UnitCols, EmptyField),
		Section:       sheet.ResolveString(ctx, sheet.SectionCols, EmptyField),
		CuttingStage:  sheet.ResolveString(ctx, sheet.StageCols, EmptyField),
		SelectedPlots: plots,
		TotalArea:     total,
		Inputs:        inputs,
		CostCenter:    orDefault(s.ops.CostCenter, NotInformed),
		OperationCode: orDefault(s.ops.OperationCode, EmptyField),
		FlowRate:      orDefault(s.ops.FlowRate, EmptyField),
		TankCapacity:  orDefault(s.ops.TankCapacity, EmptyField),
		Supervisor:    orDefault(s.ops.Supervisor, EmptyField),
		AreaFactor:    s.factor,
	}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// AddToQueue finishes the current sector and starts the next one from
// scratch: location, selection, overrides, multiplier, mixture and
// operational fields all reset.
func (s *Session) AddToQueue() entities.RecommendationSummary {
	sum := s.buildSummary()
	s.queue = append(s.queue, sum)
	s.resetLocation()
	s.resetMixture()
	s.step = StepSearch
	return sum
}

// AddSameMixture finishes the current sector but keeps the products and
// operational fields for the next one: one spray mixture applied across
// several sectors without retyping. Location state still resets, the
// multiplier included.
func (s *Session) AddSameMixture() entities.RecommendationSummary {
	sum := s.buildSummary()
	s.queue = append(s.queue, sum)
	s.resetLocation()
	s.step = StepSearch
	return sum
}

// Queue returns the sectors already closed in this run.
func (s *Session) Queue() []entities.RecommendationSummary { return s.queue }

// Finalize emits the full report list: the queue plus one record for the
// sector in progress. The session itself is left untouched; callers decide
// whether the run ends here.
func (s *Session) Finalize() []entities.RecommendationSummary {
	out := make([]entities.RecommendationSummary, 0, len(s.queue)+1)
	out = append(out, s.queue...)
	out = append(out, s.buildSummary())
	return out
}
