package entities

import "time"

// Report is one history entry: the full summary list emitted by a single
// finalize call (may span multiple sectors).
type Report struct {
	ReportID  uint                    `gorm:"primaryKey" json:"report_id"`
	Summaries []RecommendationSummary `gorm:"serializer:json" json:"summaries"`

	// Denormalized for the history list view.
	SectorCount int     `json:"sector_count"`
	TotalArea   float64 `json:"total_area"`
	LeadSector  string  `json:"lead_sector"`
	LeadFarm    string  `json:"lead_farm"`
	Sent        bool    `json:"sent"`

	CreatedAt time.Time `json:"created_at"`
}
