package models

import (
	"github.com/shopspring/decimal"
)

// ExecutiveSummary is the campus-wide total and the top consuming building
type ExecutiveSummary struct {
	TotalKWh    decimal.Decimal `json:"total_kwh"`
	TopBuilding string          `json:"top_building"`
}

// Report bundles everything the output stage consumes
type Report struct {
	RunID     string           `json:"run_id"`
	Table     *Table           `json:"-"`
	Daily     []SeriesPoint    `json:"daily"`
	Weekly    []SeriesPoint    `json:"weekly"`
	Summary   BuildingSummary  `json:"summary"`
	Executive ExecutiveSummary `json:"executive"`
}
