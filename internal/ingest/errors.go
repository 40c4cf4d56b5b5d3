package ingest

import (
	"fmt"
	"strings"
)

// SourceLoadError means a source could not be read or parsed
type SourceLoadError struct {
	Source string
	Err    error
}

func (e *SourceLoadError) Error() string {
	return fmt.Sprintf("error reading %s: %v", e.Source, e.Err)
}

func (e *SourceLoadError) Unwrap() error {
	return e.Err
}

// SchemaValidationError means a source lacks a required column
type SchemaValidationError struct {
	Source string
	Field  string
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("missing %s column in %s", e.Field, e.Source)
}

// MalformedTimestampError means a row of a surviving source has a timestamp
// that cannot be parsed. It halts the run.
type MalformedTimestampError struct {
	Source string
	Row    int
	Value  string
}

func (e *MalformedTimestampError) Error() string {
	return fmt.Sprintf("malformed timestamp %q in %s at row %d", e.Value, e.Source, e.Row)
}

// EmptyDatasetError means no source survived validation, or the surviving
// sources hold no rows at all
type EmptyDatasetError struct {
	Skipped []SkippedSource
}

func (e *EmptyDatasetError) Error() string {
	if len(e.Skipped) == 0 {
		return "no valid data loaded"
	}
	names := make([]string, 0, len(e.Skipped))
	for _, s := range e.Skipped {
		names = append(names, s.Name)
	}
	return fmt.Sprintf("no valid data loaded (skipped: %s)", strings.Join(names, ", "))
}

// SkippedSource records a source excluded from the merged table
type SkippedSource struct {
	Name string
	Err  error
}
