package influxdb

import (
	"context"
	"fmt"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/influxdata/influxdb-client-go/v2/domain"

	"github.com/kanna-karuppasamy/campus-energy-dashboard/internal/config"
	"github.com/kanna-karuppasamy/campus-energy-dashboard/internal/logger"
	"github.com/kanna-karuppasamy/campus-energy-dashboard/internal/models"
)

// Client exports aggregated consumption to InfluxDB v2
type Client struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	config   config.InfluxDBConfig
	log      logger.Logger
}

// NewClient initializes the InfluxDB v2 client and verifies connectivity
func NewClient(ctx context.Context, cfg config.InfluxDBConfig, log logger.Logger) (*Client, error) {
	opts := influxdb2.DefaultOptions()
	if cfg.Timeout > 0 {
		opts.SetHTTPRequestTimeout(uint(cfg.Timeout.Seconds()))
	}

	client := influxdb2.NewClientWithOptions(cfg.URL, cfg.Token, opts)

	health, err := client.Health(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to InfluxDB: %w", err)
	}
	if health.Status != domain.HealthCheckStatusPass {
		client.Close()
		return nil, fmt.Errorf("InfluxDB is not healthy: %s", health.Status)
	}

	return &Client{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		config:   cfg,
		log:      log.WithField("component", "influxdb"),
	}, nil
}

// Export writes the daily and weekly series, the per-building statistics
// and the campus summary
func (c *Client) Export(ctx context.Context, rep *models.Report) error {
	points := make([]*write.Point, 0, len(rep.Daily)+len(rep.Weekly)+len(rep.Summary)+1)
	points = append(points, seriesPoints("daily_consumption", rep.Daily)...)
	points = append(points, seriesPoints("weekly_consumption", rep.Weekly)...)

	if len(rep.Daily) > 0 {
		asOf := rep.Daily[len(rep.Daily)-1].Period
		for _, s := range rep.Summary.Ordered() {
			points = append(points, write.NewPoint(
				"building_consumption",
				map[string]string{
					"building": s.Building,
				},
				map[string]interface{}{
					"mean_kwh":      s.Mean,
					"min_kwh":       s.Min,
					"max_kwh":       s.Max,
					"total_kwh":     s.Sum,
					"reading_count": s.Count,
				},
				asOf,
			))
		}

		points = append(points, write.NewPoint(
			"campus_summary",
			map[string]string{
				"top_building": rep.Executive.TopBuilding,
				"run_id":       rep.RunID,
			},
			map[string]interface{}{
				"total_kwh": rep.Executive.TotalKWh.InexactFloat64(),
			},
			asOf,
		))
	}

	if len(points) == 0 {
		return nil
	}

	if err := c.writeAPI.WritePoint(ctx, points...); err != nil {
		return fmt.Errorf("failed to write points to InfluxDB: %w", err)
	}

	c.log.Infof("Wrote %d points to InfluxDB bucket %s", len(points), c.config.Bucket)
	return nil
}

func seriesPoints(measurement string, series []models.SeriesPoint) []*write.Point {
	points := make([]*write.Point, 0, len(series))
	for _, p := range series {
		points = append(points, write.NewPoint(
			measurement,
			map[string]string{}, // No tags for this measurement
			map[string]interface{}{
				"total_kwh": p.KWh,
			},
			p.Period,
		))
	}
	return points
}

// Close closes the InfluxDB client
func (c *Client) Close() {
	c.client.Close()
}
