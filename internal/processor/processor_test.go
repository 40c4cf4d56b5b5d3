package processor

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanna-karuppasamy/campus-energy-dashboard/internal/building"
	"github.com/kanna-karuppasamy/campus-energy-dashboard/internal/models"
)

func date(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func rec(b string, ts time.Time, kwh float64) models.Record {
	return models.Record{Building: b, Timestamp: ts, KWh: kwh}
}

func scenario() []models.Record {
	return []models.Record{
		rec("building_a", date(2024, 1, 1, 0), 10),
		rec("building_a", date(2024, 1, 2, 0), 5),
		rec("building_b", date(2024, 1, 1, 0), 7),
	}
}

func TestDailyTotals_Scenario(t *testing.T) {
	daily := DailyTotals(scenario())

	assert.Equal(t, []models.SeriesPoint{
		{Period: date(2024, 1, 1, 0), KWh: 17},
		{Period: date(2024, 1, 2, 0), KWh: 5},
	}, daily)
}

func TestDailyTotals_DayBoundaries(t *testing.T) {
	records := []models.Record{
		rec("a", time.Date(2024, 1, 1, 23, 59, 59, 999999999, time.UTC), 1),
		rec("a", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), 2),
		rec("a", time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC), 4),
	}

	daily := DailyTotals(records)

	require.Len(t, daily, 3, "gaps are not zero-filled")
	assert.Equal(t, 1.0, daily[0].KWh)
	assert.Equal(t, 2.0, daily[1].KWh)
	assert.Equal(t, date(2024, 1, 5, 0), daily[2].Period)
}

func TestDailyTotals_SortedRegardlessOfInputOrder(t *testing.T) {
	records := []models.Record{
		rec("a", date(2024, 2, 3, 5), 1),
		rec("b", date(2024, 1, 30, 5), 1),
		rec("a", date(2024, 2, 1, 5), 1),
	}

	daily := DailyTotals(records)

	require.Len(t, daily, 3)
	for i := 1; i < len(daily); i++ {
		assert.True(t, daily[i-1].Period.Before(daily[i].Period))
	}
}

func TestWeekEndingSunday(t *testing.T) {
	// 2024-01-07 is a Sunday.
	tests := []struct {
		in   time.Time
		want time.Time
	}{
		{date(2024, 1, 1, 0), date(2024, 1, 7, 0)},
		{date(2024, 1, 6, 23), date(2024, 1, 7, 0)},
		{date(2024, 1, 7, 0), date(2024, 1, 7, 0)},
		{time.Date(2024, 1, 7, 23, 59, 59, 0, time.UTC), date(2024, 1, 7, 0)},
		{date(2024, 1, 8, 0), date(2024, 1, 14, 0)},
		{date(2023, 12, 31, 12), date(2023, 12, 31, 0)},
		{date(2024, 12, 30, 1), date(2025, 1, 5, 0)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WeekEndingSunday(tt.in), tt.in.String())
	}
}

func TestWeeklyTotals(t *testing.T) {
	weekly := WeeklyTotals(scenario())
	assert.Equal(t, []models.SeriesPoint{{Period: date(2024, 1, 7, 0), KWh: 22}}, weekly)

	records := []models.Record{
		rec("a", date(2024, 1, 14, 10), 3),
		rec("a", date(2024, 1, 7, 10), 1),
		rec("b", date(2024, 1, 8, 0), 2),
	}
	weekly = WeeklyTotals(records)
	assert.Equal(t, []models.SeriesPoint{
		{Period: date(2024, 1, 7, 0), KWh: 1},
		{Period: date(2024, 1, 14, 0), KWh: 5},
	}, weekly)
}

func TestBuildingSummary_Scenario(t *testing.T) {
	summary := BuildingSummary(scenario())

	require.Len(t, summary, 2)
	assert.Equal(t, models.BuildingStats{
		Building: "building_a", Mean: 7.5, Min: 5, Max: 10, Sum: 15, Count: 2,
	}, summary["building_a"])
	assert.Equal(t, models.BuildingStats{
		Building: "building_b", Mean: 7, Min: 7, Max: 7, Sum: 7, Count: 1,
	}, summary["building_b"])
	assert.Equal(t, []string{"building_a", "building_b"}, summary.Names())
}

func TestBuildingSummary_Empty(t *testing.T) {
	assert.Empty(t, BuildingSummary(nil))
	assert.Empty(t, DailyTotals(nil))
	assert.Empty(t, WeeklyTotals(nil))
}

func randomRecords(r *rand.Rand, n int) []models.Record {
	names := []string{"library", "gym", "lab", "dorm"}
	base := date(2024, 3, 1, 0)
	records := make([]models.Record, 0, n)
	for i := 0; i < n; i++ {
		ts := base.Add(time.Duration(r.Intn(60*24)) * time.Hour).Add(time.Duration(r.Intn(3600)) * time.Second)
		records = append(records, rec(names[r.Intn(len(names))], ts, float64(r.Intn(10000))/100))
	}
	return records
}

func TestResample_ConservesTotal(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for round := 0; round < 20; round++ {
		records := randomRecords(r, 200)
		table := &models.Table{Records: records}
		want := table.TotalKWh()

		for _, series := range [][]models.SeriesPoint{DailyTotals(records), WeeklyTotals(records)} {
			var got float64
			for _, p := range series {
				got += p.KWh
			}
			assert.InDelta(t, want, got, 1e-6)
		}
	}
}

func TestBuildingSummary_MatchesRegistryTotals(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	records := randomRecords(r, 500)

	summary := BuildingSummary(records)
	reg := building.FromTable(&models.Table{Records: records})

	require.Equal(t, reg.Names(), summary.Names())
	for _, name := range summary.Names() {
		b, ok := reg.Get(name)
		require.True(t, ok)
		assert.Equal(t, b.TotalConsumption(), summary[name].Sum, name)
		assert.Equal(t, len(b.Readings()), summary[name].Count)
	}
}

func TestExecutive(t *testing.T) {
	exec := Executive(BuildingSummary(scenario()))
	assert.Equal(t, "22", exec.TotalKWh.String())
	assert.Equal(t, "building_a", exec.TopBuilding)
}

func TestExecutive_TieBreaksByName(t *testing.T) {
	summary := models.BuildingSummary{
		"zeta":  {Building: "zeta", Sum: 10},
		"alpha": {Building: "alpha", Sum: 10},
		"mid":   {Building: "mid", Sum: 3},
	}
	for i := 0; i < 10; i++ {
		assert.Equal(t, "alpha", Executive(summary).TopBuilding)
	}
}

func TestExecutive_DecimalTotal(t *testing.T) {
	summary := models.BuildingSummary{
		"a": {Building: "a", Sum: 0.1},
		"b": {Building: "b", Sum: 0.2},
	}
	assert.Equal(t, "0.3", Executive(summary).TotalKWh.String())
}

func TestExecutive_Empty(t *testing.T) {
	exec := Executive(models.BuildingSummary{})
	assert.Equal(t, "", exec.TopBuilding)
	assert.True(t, exec.TotalKWh.IsZero())
}
