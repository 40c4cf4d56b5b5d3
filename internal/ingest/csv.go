package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/kanna-karuppasamy/campus-energy-dashboard/internal/models"
)

const (
	ColumnTimestamp = "timestamp"
	ColumnKWh       = "kwh"
	ColumnBuilding  = "building"
)

// Checked in order; the first missing one is reported.
var requiredColumns = []string{ColumnTimestamp, ColumnKWh}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
}

// frame is one parsed source before merging
type frame struct {
	name    string
	columns []string
	records []models.Record
}

// readFrame loads and validates a single source. The returned error is one
// of *SourceLoadError, *SchemaValidationError or *MalformedTimestampError.
func readFrame(src Source) (*frame, error) {
	name := src.Name()

	rc, err := src.Open()
	if err != nil {
		return nil, &SourceLoadError{Source: name, Err: err}
	}
	defer rc.Close()

	reader := csv.NewReader(rc)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, &SourceLoadError{Source: name, Err: errors.New("no columns to parse from file")}
		}
		return nil, &SourceLoadError{Source: name, Err: fmt.Errorf("failed to read csv header: %w", err)}
	}

	headerMap := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		if _, dup := headerMap[h]; dup {
			return nil, &SourceLoadError{Source: name, Err: fmt.Errorf("duplicate column %q", h)}
		}
		header[i] = h
		headerMap[h] = i
	}

	for _, col := range requiredColumns {
		if _, ok := headerMap[col]; !ok {
			return nil, &SchemaValidationError{Source: name, Field: col}
		}
	}

	columns := append([]string(nil), header...)
	if _, ok := headerMap[ColumnBuilding]; !ok {
		columns = append(columns, ColumnBuilding)
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &SourceLoadError{Source: name, Err: err}
		}
		if len(row) > len(header) {
			return nil, &SourceLoadError{Source: name, Err: fmt.Errorf("row %d: expected %d fields, saw %d", len(rows)+1, len(header), len(row))}
		}
		for len(row) < len(header) {
			row = append(row, "")
		}
		rows = append(rows, row)
	}

	// kwh is validated for the whole source before any timestamp is looked at,
	// so a source with bad readings is excluded rather than halting the run.
	kwhIdx := headerMap[ColumnKWh]
	values := make([]float64, len(rows))
	for i, row := range rows {
		v, err := parseKWh(row[kwhIdx])
		if err != nil {
			return nil, &SourceLoadError{Source: name, Err: fmt.Errorf("row %d: %w", i+1, err)}
		}
		values[i] = v
	}

	tsIdx := headerMap[ColumnTimestamp]
	records := make([]models.Record, 0, len(rows))
	for i, row := range rows {
		ts, err := ParseTimestamp(row[tsIdx])
		if err != nil {
			return nil, &MalformedTimestampError{Source: name, Row: i + 1, Value: row[tsIdx]}
		}

		fields := make(map[string]string, len(columns))
		for j, h := range header {
			fields[h] = row[j]
		}
		fields[ColumnBuilding] = name

		records = append(records, models.Record{
			Timestamp: ts,
			KWh:       values[i],
			Building:  name,
			Fields:    fields,
		})
	}

	return &frame{name: name, columns: columns, records: records}, nil
}

func parseKWh(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty kwh value")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid kwh value: %s", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid kwh value: %s", s)
	}
	return v, nil
}

// ParseTimestamp parses s as a naive wall-clock time. A UTC offset, when
// present, is dropped without converting the clock reading.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported time format %q", s)
}
