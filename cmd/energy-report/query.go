package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/kanna-karuppasamy/campus-energy-dashboard/internal/building"
	"github.com/kanna-karuppasamy/campus-energy-dashboard/internal/ingest"
	"github.com/kanna-karuppasamy/campus-energy-dashboard/internal/pipeline"
)

const queryTimeLayout = "2006-01-02 15:04"

func runQuery(ctx context.Context, out io.Writer, configFile string, names []string) error {
	cfg, log, err := setup(configFile)
	if err != nil {
		return err
	}

	p := pipeline.New(ingest.NewLoader(log, cfg.Ingest.Parallel), nil, log)
	res, err := p.Analyze(ctx, ingest.FileSources(cfg.Ingest.Sources))
	if err != nil {
		return err
	}

	return printBuildings(out, res.Registry, names)
}

// printBuildings writes one line per requested building, or every building
// when names is empty
func printBuildings(out io.Writer, reg *building.Registry, names []string) error {
	if len(names) == 0 {
		names = reg.Names()
	}

	var missing []string
	for _, name := range names {
		b, ok := reg.Get(name)
		if !ok {
			fmt.Fprintf(out, "%s: not found\n", name)
			missing = append(missing, name)
			continue
		}

		readings := b.Readings()
		fmt.Fprintf(out, "%s: %d readings, total %s kWh",
			b.Name(), len(readings), strconv.FormatFloat(b.TotalConsumption(), 'f', -1, 64))
		if len(readings) > 0 {
			fmt.Fprintf(out, " (%s to %s)",
				readings[0].Timestamp.Format(queryTimeLayout),
				readings[len(readings)-1].Timestamp.Format(queryTimeLayout))
		}
		fmt.Fprintln(out)
	}

	if len(missing) > 0 {
		return fmt.Errorf("unknown building(s): %v", missing)
	}
	return nil
}
