package processor

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/kanna-karuppasamy/campus-energy-dashboard/internal/models"
)

// BucketFunc maps a reading timestamp to the label of the period it falls in
type BucketFunc func(time.Time) time.Time

// Day labels a timestamp with the midnight that starts its calendar day.
// The wall clock is used as is; no timezone conversion happens.
func Day(ts time.Time) time.Time {
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeekEndingSunday labels a timestamp with the Sunday that closes its week.
// Weeks run Monday 00:00 through Sunday 23:59:59; a Sunday maps to itself.
func WeekEndingSunday(ts time.Time) time.Time {
	day := Day(ts)
	offset := (7 - int(day.Weekday())) % 7
	return day.AddDate(0, 0, offset)
}

// seriesAggregator sums kWh into period buckets
type seriesAggregator struct {
	bucket  BucketFunc
	buckets map[time.Time]float64
}

func newSeriesAggregator(bucket BucketFunc) *seriesAggregator {
	return &seriesAggregator{
		bucket:  bucket,
		buckets: make(map[time.Time]float64),
	}
}

func (a *seriesAggregator) update(records []models.Record) {
	for _, r := range records {
		a.buckets[a.bucket(r.Timestamp)] += r.KWh
	}
}

// points returns the buckets sorted by period. Periods without readings
// are absent rather than zero-filled.
func (a *seriesAggregator) points() []models.SeriesPoint {
	points := make([]models.SeriesPoint, 0, len(a.buckets))
	for period, total := range a.buckets {
		points = append(points, models.SeriesPoint{Period: period, KWh: total})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Period.Before(points[j].Period)
	})
	return points
}

// Resample sums kWh per period as labelled by bucket
func Resample(records []models.Record, bucket BucketFunc) []models.SeriesPoint {
	agg := newSeriesAggregator(bucket)
	agg.update(records)
	return agg.points()
}

// DailyTotals sums consumption per calendar day
func DailyTotals(records []models.Record) []models.SeriesPoint {
	return Resample(records, Day)
}

// WeeklyTotals sums consumption per week ending on Sunday
func WeeklyTotals(records []models.Record) []models.SeriesPoint {
	return Resample(records, WeekEndingSunday)
}

// BuildingSummary computes mean, min, max and sum of kWh for every building
// present in records
func BuildingSummary(records []models.Record) models.BuildingSummary {
	values := make(map[string][]float64)
	for _, r := range records {
		values[r.Building] = append(values[r.Building], r.KWh)
	}

	summary := make(models.BuildingSummary, len(values))
	for name, kwh := range values {
		var sum float64
		for _, v := range kwh {
			sum += v
		}
		summary[name] = models.BuildingStats{
			Building: name,
			Mean:     stat.Mean(kwh, nil),
			Min:      floats.Min(kwh),
			Max:      floats.Max(kwh),
			Sum:      sum,
			Count:    len(kwh),
		}
	}
	return summary
}
