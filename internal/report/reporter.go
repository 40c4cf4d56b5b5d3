package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/kanna-karuppasamy/campus-energy-dashboard/internal/logger"
	"github.com/kanna-karuppasamy/campus-energy-dashboard/internal/models"
)

// Reporter renders the report artifacts and hands them to a sink
type Reporter struct {
	sink     Sink
	workbook bool
	log      logger.Logger
}

// NewReporter creates a reporter. workbook enables the XLSX artifact.
func NewReporter(sink Sink, workbook bool, log logger.Logger) *Reporter {
	return &Reporter{
		sink:     sink,
		workbook: workbook,
		log:      log.WithField("component", "report"),
	}
}

type artifact struct {
	name   string
	render func() ([]byte, error)
}

func (r *Reporter) artifacts(rep *models.Report) []artifact {
	list := []artifact{
		{DashboardFile, func() ([]byte, error) {
			return RenderDashboard(rep.Daily, rep.Weekly, rep.Summary)
		}},
		{CleanedDataFile, func() ([]byte, error) {
			return RenderCleanedData(rep.Table)
		}},
		{BuildingSummaryFile, func() ([]byte, error) {
			return RenderBuildingSummary(rep.Summary)
		}},
		{SummaryTextFile, func() ([]byte, error) {
			return RenderSummaryText(rep.Executive), nil
		}},
	}
	if r.workbook {
		list = append(list, artifact{WorkbookFile, func() ([]byte, error) {
			return RenderWorkbook(rep)
		}})
	}
	return list
}

// Write renders and stores every artifact. A failing artifact does not stop
// the others; all failures are returned together. It returns the names of
// the artifacts that were stored.
func (r *Reporter) Write(ctx context.Context, rep *models.Report) ([]string, error) {
	if err := r.sink.Prepare(ctx); err != nil {
		return nil, err
	}

	var (
		written []string
		errs    []error
	)
	for _, a := range r.artifacts(rep) {
		data, err := a.render()
		if err != nil {
			r.log.Errorf("Failed to render %s: %v", a.name, err)
			errs = append(errs, fmt.Errorf("render %s: %w", a.name, err))
			continue
		}
		if err := r.sink.Write(ctx, a.name, data); err != nil {
			r.log.Errorf("Failed to save %s: %v", a.name, err)
			errs = append(errs, fmt.Errorf("save %s: %w", a.name, err))
			continue
		}
		written = append(written, a.name)
		r.log.WithField("artifact", a.name).Infof("Saved %s (%d bytes)", a.name, len(data))
	}

	return written, errors.Join(errs...)
}
