package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/kanna-karuppasamy/campus-energy-dashboard/internal/models"
)

const (
	CleanedDataFile     = "cleaned_energy_data.csv"
	BuildingSummaryFile = "building_summary.csv"
	SummaryTextFile     = "summary.txt"
	DashboardFile       = "dashboard.png"
	WorkbookFile        = "energy_report.xlsx"

	timestampFormat = "2006-01-02 15:04:05"
	dateFormat      = "2006-01-02"
)

var defaultColumns = []string{"timestamp", "kwh", "building"}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// cellValue returns the raw source cell, falling back to the parsed values
// for records that did not come from a CSV source
func cellValue(r models.Record, col string) string {
	if v, ok := r.Fields[col]; ok {
		return v
	}
	switch col {
	case "timestamp":
		return r.Timestamp.Format(timestampFormat)
	case "kwh":
		return formatFloat(r.KWh)
	case "building":
		return r.Building
	}
	return ""
}

// RenderCleanedData writes the merged table as CSV without an index column
func RenderCleanedData(table *models.Table) ([]byte, error) {
	columns := table.Columns
	if len(columns) == 0 {
		columns = defaultColumns
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(columns); err != nil {
		return nil, err
	}

	row := make([]string, len(columns))
	for _, r := range table.Records {
		for i, col := range columns {
			row[i] = cellValue(r, col)
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to render cleaned data: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderBuildingSummary writes one row per building sorted by name
func RenderBuildingSummary(summary models.BuildingSummary) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"building", "mean", "min", "max", "sum"}); err != nil {
		return nil, err
	}

	for _, s := range summary.Ordered() {
		if err := w.Write([]string{
			s.Building,
			formatFloat(s.Mean),
			formatFloat(s.Min),
			formatFloat(s.Max),
			formatFloat(s.Sum),
		}); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to render building summary: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderSummaryText produces the executive summary report
func RenderSummaryText(exec models.ExecutiveSummary) []byte {
	var buf bytes.Buffer
	buf.WriteString("ENERGY USAGE SUMMARY REPORT\n")
	buf.WriteString("-----------------------------------\n")
	fmt.Fprintf(&buf, "Total Campus Consumption: %s kWh\n", exec.TotalKWh.String())
	fmt.Fprintf(&buf, "Highest Consuming Building: %s\n", exec.TopBuilding)
	return buf.Bytes()
}
