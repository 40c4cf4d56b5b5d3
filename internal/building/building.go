package building

import (
	"sort"
	"time"

	"github.com/kanna-karuppasamy/campus-energy-dashboard/internal/models"
)

// Building holds the ordered meter readings of one building
type Building struct {
	name     string
	readings []models.MeterReading
}

// Name returns the building identifier
func (b *Building) Name() string {
	return b.name
}

// AddReading appends a reading. Values are not validated here; callers
// are expected to pass data that already went through ingestion.
func (b *Building) AddReading(timestamp time.Time, kwh float64) {
	b.readings = append(b.readings, models.MeterReading{Timestamp: timestamp, KWh: kwh})
}

// Readings returns a copy of the readings in insertion order
func (b *Building) Readings() []models.MeterReading {
	out := make([]models.MeterReading, len(b.readings))
	copy(out, b.readings)
	return out
}

// TotalConsumption sums kWh over all current readings
func (b *Building) TotalConsumption() float64 {
	var total float64
	for _, r := range b.readings {
		total += r.KWh
	}
	return total
}

// Registry is a name-keyed collection of buildings
type Registry struct {
	buildings map[string]*Building
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		buildings: make(map[string]*Building),
	}
}

// AddBuilding registers an empty building under name. Registering a name
// that already exists replaces it, dropping its readings (last write wins).
func (r *Registry) AddBuilding(name string) *Building {
	b := &Building{name: name}
	r.buildings[name] = b
	return b
}

// Get returns the building registered under name
func (r *Registry) Get(name string) (*Building, bool) {
	b, ok := r.buildings[name]
	return b, ok
}

// Len returns the number of registered buildings
func (r *Registry) Len() int {
	return len(r.buildings)
}

// Names returns registered building names in ascending order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.buildings))
	for name := range r.buildings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FromTable builds a registry holding every record of the table,
// preserving ingestion order within each building.
func FromTable(table *models.Table) *Registry {
	reg := NewRegistry()
	for _, rec := range table.Records {
		b, ok := reg.Get(rec.Building)
		if !ok {
			b = reg.AddBuilding(rec.Building)
		}
		b.readings = append(b.readings, rec.Reading())
	}
	return reg
}
