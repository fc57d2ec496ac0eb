package wizard

import (
	"smartcalda/entities"
	"smartcalda/pkg/sheet"
)

// PlotView is one plot as shown on the selection grid.
type PlotView struct {
	ID            string  `json:"id"`
	BaseArea      float64 `json:"base_area"`
	EffectiveArea float64 `json:"effective_area"`
	Selected      bool    `json:"selected"`
	Overridden    bool    `json:"overridden"`
	Editing       bool    `json:"editing"`
}

// QueueEntry is the compact queue line: sector plus total hectares.
type QueueEntry struct {
	Sector    string  `json:"sector"`
	TotalArea float64 `json:"total_area"`
}

// State is the read-only snapshot served to clients.
type State struct {
	ID           string                       `json:"id"`
	Step         Step                         `json:"step"`
	StepName     string                       `json:"step_name"`
	Sector       string                       `json:"sector"`
	Farm         string                       `json:"farm"`
	Unit         string                       `json:"unit"`
	Section      string                       `json:"section"`
	CuttingStage string                       `json:"cutting_stage"`
	Plots        []PlotView                   `json:"plots"`
	TotalArea    float64                      `json:"total_area"`
	AreaFactor   float64                      `json:"area_factor"`
	Inputs       []entities.AgriculturalInput `json:"inputs"`
	Operational  Operational                  `json:"operational"`
	Queue        []QueueEntry                 `json:"queue"`
	SameMixture  bool                         `json:"same_mixture"`
}

// Snapshot derives the current view of the session.
func (s *Session) Snapshot() State {
	ctx := sheet.Row{}
	if len(s.matched) > 0 {
		ctx = s.matched[0]
	}

	plots := make([]PlotView, 0, len(s.plots))
	for _, p := range s.plots {
		plots = append(plots, PlotView{
			ID:            p.ID,
			BaseArea:      p.Area,
			EffectiveArea: s.EffectiveArea(p),
			Selected:      s.selected[p.ID],
			Overridden:    s.Overridden(p.ID),
			Editing:       s.editing == p.ID,
		})
	}

	queue := make([]QueueEntry, 0, len(s.queue))
	for _, q := range s.queue {
		queue = append(queue, QueueEntry{Sector: q.Sector, TotalArea: q.TotalArea})
	}

	return State{
		ID:           s.ID,
		Step:         s.step,
		StepName:     s.step.String(),
		Sector:       s.sector,
		Farm:         sheet.ResolveString(ctx, sheet.FarmCols, ""),
		Unit:         sheet.ResolveString(ctx, sheet.UnitCols, ""),
		Section:      sheet.ResolveString(ctx, sheet.SectionCols, ""),
		CuttingStage: sheet.ResolveString(ctx, sheet.StageCols, ""),
		Plots:        plots,
		TotalArea:    s.TotalSelectedArea(),
		AreaFactor:   s.factor,
		Inputs:       s.Inputs(),
		Operational:  s.ops,
		Queue:        queue,
		SameMixture:  len(s.queue) > 0 && len(s.inputs) > 0 && s.step == StepSearch,
	}
}
