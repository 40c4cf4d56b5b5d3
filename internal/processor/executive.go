package processor

import (
	"github.com/shopspring/decimal"

	"github.com/kanna-karuppasamy/campus-energy-dashboard/internal/models"
)

// Executive derives the campus total and the highest consuming building.
// The total is accumulated in decimal so that it prints without float noise.
// On equal sums the building whose name sorts first wins.
func Executive(summary models.BuildingSummary) models.ExecutiveSummary {
	exec := models.ExecutiveSummary{TotalKWh: decimal.Zero}

	var top float64
	for _, stats := range summary.Ordered() {
		exec.TotalKWh = exec.TotalKWh.Add(decimal.NewFromFloat(stats.Sum))
		if exec.TopBuilding == "" || stats.Sum > top {
			exec.TopBuilding = stats.Building
			top = stats.Sum
		}
	}
	return exec
}
