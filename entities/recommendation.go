package entities

import "time"

// AgriculturalInput is one chemical product with its per-hectare dose.
// Unit is always "<quantity-unit>/ha" (L/ha, kg/ha, g/ha, mL/ha).
type AgriculturalInput struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Dose float64 `json:"dose"`
	Unit string  `json:"unit"`
}

// SelectedPlot is a talhão with its resolved area in hectares.
type SelectedPlot struct {
	ID   string  `json:"id"`
	Area float64 `json:"area"`
}

// RecommendationSummary is the finalized record of one sector's wizard pass.
// Immutable after assembly; TotalArea always equals the sum of
// SelectedPlots areas.
type RecommendationSummary struct {
	ID            string              `json:"id"`
	Date          time.Time           `json:"date"`
	Sector        string              `json:"sector"`
	Farm          string              `json:"farm"`
	Unit          string              `json:"unit"`
	Section       string              `json:"section"`
	CuttingStage  string              `json:"cuttingStage"`
	SelectedPlots []SelectedPlot      `json:"selectedPlots"`
	TotalArea     float64             `json:"totalArea"`
	Inputs        []AgriculturalInput `json:"inputs"`

	CostCenter    string `json:"costCenter"`
	OperationCode string `json:"operationCode"`
	FlowRate      string `json:"flowRate"`
	TankCapacity  string `json:"tankCapacity"`
	Supervisor    string `json:"supervisor"`

	// Multiplier applied to non-overridden plot areas for this sector.
	AreaFactor float64 `json:"areaFactor,omitempty"`
}
