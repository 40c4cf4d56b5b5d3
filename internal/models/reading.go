package models

import (
	"sort"
	"time"
)

// MeterReading represents a single kWh observation for the interval ending at Timestamp
type MeterReading struct {
	Timestamp time.Time `json:"timestamp"`
	KWh       float64   `json:"kwh"`
}

// Record is one validated row of the unified reading table.
// Fields keeps every raw cell of the source row keyed by column name,
// including columns the pipeline does not interpret.
type Record struct {
	Timestamp time.Time         `json:"timestamp"`
	KWh       float64           `json:"kwh"`
	Building  string            `json:"building"`
	Fields    map[string]string `json:"-"`
}

// Reading returns the record as a meter reading
func (r Record) Reading() MeterReading {
	return MeterReading{Timestamp: r.Timestamp, KWh: r.KWh}
}

// Table is the merged, validated record set from all ingested sources
type Table struct {
	Columns []string
	Records []Record
}

// Len returns the number of records in the table
func (t *Table) Len() int {
	return len(t.Records)
}

// TotalKWh sums kWh across every record in ingestion order
func (t *Table) TotalKWh() float64 {
	var total float64
	for _, r := range t.Records {
		total += r.KWh
	}
	return total
}

// Buildings returns the distinct building names in first-seen order
func (t *Table) Buildings() []string {
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, r := range t.Records {
		if !seen[r.Building] {
			seen[r.Building] = true
			names = append(names, r.Building)
		}
	}
	return names
}

// SeriesPoint represents one resampled period and its summed consumption
type SeriesPoint struct {
	Period time.Time `json:"period"`
	KWh    float64   `json:"kwh"`
}

// BuildingStats holds descriptive statistics of one building's readings
type BuildingStats struct {
	Building string  `json:"building"`
	Mean     float64 `json:"mean"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Sum      float64 `json:"sum"`
	Count    int     `json:"count"`
}

// BuildingSummary maps building name to its statistics
type BuildingSummary map[string]BuildingStats

// Names returns building names in ascending order
func (s BuildingSummary) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Ordered returns the statistics sorted by building name
func (s BuildingSummary) Ordered() []BuildingStats {
	stats := make([]BuildingStats, 0, len(s))
	for _, name := range s.Names() {
		stats = append(stats, s[name])
	}
	return stats
}
