package main

import (
	"context"
	"fmt"

	"github.com/kanna-karuppasamy/campus-energy-dashboard/internal/config"
	"github.com/kanna-karuppasamy/campus-energy-dashboard/internal/influxdb"
	"github.com/kanna-karuppasamy/campus-energy-dashboard/internal/ingest"
	"github.com/kanna-karuppasamy/campus-energy-dashboard/internal/kafka"
	"github.com/kanna-karuppasamy/campus-energy-dashboard/internal/logger"
	"github.com/kanna-karuppasamy/campus-energy-dashboard/internal/pipeline"
	"github.com/kanna-karuppasamy/campus-energy-dashboard/internal/report"
)

func setup(configFile string) (*config.Config, logger.Logger, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	log := logger.New(cfg.App.LogLevel, cfg.App.Env).WithField("app", cfg.App.Name)
	return cfg, log, nil
}

func runReport(ctx context.Context, configFile string) error {
	cfg, log, err := setup(configFile)
	if err != nil {
		return err
	}

	var sink report.Sink = report.NewDirSink(cfg.Output.Dir)
	if cfg.Minio.Enabled() {
		mirror, err := report.NewMinioSink(cfg.Minio, log)
		if err != nil {
			log.Errorf("%v", err)
			return err
		}
		sink = report.MultiSink{sink, mirror}
	}

	var exporters []pipeline.Exporter

	if cfg.InfluxDB.Enabled() {
		influxClient, err := influxdb.NewClient(ctx, cfg.InfluxDB, log)
		if err != nil {
			log.Errorf("%v", err)
			return err
		}
		// Closed after the run so pending writes are flushed
		defer influxClient.Close()
		exporters = append(exporters, influxClient)
	}

	if cfg.Kafka.Enabled() {
		publisher, err := kafka.NewPublisher(cfg.Kafka, log)
		if err != nil {
			log.Errorf("%v", err)
			return err
		}
		defer func() {
			if err := publisher.Close(); err != nil {
				log.Errorf("Failed to close Kafka producer: %v", err)
			}
		}()
		exporters = append(exporters, publisher)
	}

	p := pipeline.New(
		ingest.NewLoader(log, cfg.Ingest.Parallel),
		report.NewReporter(sink, cfg.Report.Workbook, log),
		log,
		exporters...,
	)

	_, err = p.Run(ctx, ingest.FileSources(cfg.Ingest.Sources))
	return err
}
