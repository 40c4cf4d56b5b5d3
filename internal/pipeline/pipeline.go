package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/kanna-karuppasamy/campus-energy-dashboard/internal/building"
	"github.com/kanna-karuppasamy/campus-energy-dashboard/internal/ingest"
	"github.com/kanna-karuppasamy/campus-energy-dashboard/internal/logger"
	"github.com/kanna-karuppasamy/campus-energy-dashboard/internal/models"
	"github.com/kanna-karuppasamy/campus-energy-dashboard/internal/processor"
	"github.com/kanna-karuppasamy/campus-energy-dashboard/internal/report"
)

// Exporter pushes a finished report to an external system
type Exporter interface {
	Export(ctx context.Context, rep *models.Report) error
}

// Result is everything a run produced
type Result struct {
	Report    *models.Report
	Registry  *building.Registry
	Skipped   []ingest.SkippedSource
	Artifacts []string
}

// Pipeline owns the ingest, aggregate and report stages of a run
type Pipeline struct {
	loader    *ingest.Loader
	reporter  *report.Reporter
	exporters []Exporter
	log       logger.Logger
}

// New creates a pipeline. reporter may be nil when only Analyze is used.
func New(loader *ingest.Loader, reporter *report.Reporter, log logger.Logger, exporters ...Exporter) *Pipeline {
	return &Pipeline{
		loader:    loader,
		reporter:  reporter,
		exporters: exporters,
		log:       log,
	}
}

// Analyze ingests the sources and computes every aggregate without
// producing any output
func (p *Pipeline) Analyze(ctx context.Context, sources []ingest.Source) (*Result, error) {
	runID := uuid.NewString()
	log := p.log.WithField("run_id", runID)

	loaded, err := p.loader.Load(ctx, sources)
	if err != nil {
		var emptyErr *ingest.EmptyDatasetError
		if errors.As(err, &emptyErr) {
			log.Error("Pipeline stopped. No valid data loaded.")
		} else {
			log.Errorf("Pipeline stopped: %v", err)
		}
		return nil, err
	}

	records := loaded.Table.Records
	summary := processor.BuildingSummary(records)
	rep := &models.Report{
		RunID:     runID,
		Table:     loaded.Table,
		Daily:     processor.DailyTotals(records),
		Weekly:    processor.WeeklyTotals(records),
		Summary:   summary,
		Executive: processor.Executive(summary),
	}

	log.WithFields(map[string]interface{}{
		"records":   loaded.Table.Len(),
		"buildings": len(summary),
		"skipped":   len(loaded.Skipped),
	}).Infof("Aggregated %d days and %d weeks", len(rep.Daily), len(rep.Weekly))

	return &Result{
		Report:   rep,
		Registry: building.FromTable(loaded.Table),
		Skipped:  loaded.Skipped,
	}, nil
}

// Run analyzes the sources, writes the report artifacts and hands the
// report to every exporter. Nothing is written when analysis fails.
func (p *Pipeline) Run(ctx context.Context, sources []ingest.Source) (*Result, error) {
	if p.reporter == nil {
		return nil, errors.New("pipeline has no reporter")
	}

	res, err := p.Analyze(ctx, sources)
	if err != nil {
		return nil, err
	}
	log := p.log.WithField("run_id", res.Report.RunID)

	artifacts, err := p.reporter.Write(ctx, res.Report)
	res.Artifacts = artifacts
	if err != nil {
		log.Errorf("Pipeline stopped: %v", err)
		return res, fmt.Errorf("failed to write report: %w", err)
	}

	var errs []error
	for _, e := range p.exporters {
		if err := e.Export(ctx, res.Report); err != nil {
			log.Errorf("Export failed: %v", err)
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return res, fmt.Errorf("failed to export report: %w", err)
	}

	log.Info("All tasks completed successfully!")
	return res, nil
}
