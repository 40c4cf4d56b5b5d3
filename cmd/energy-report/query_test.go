package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanna-karuppasamy/campus-energy-dashboard/internal/building"
)

func TestPrintBuildings_All(t *testing.T) {
	reg := building.NewRegistry()
	a := reg.AddBuilding("building_a")
	a.AddReading(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 10)
	a.AddReading(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), 5)
	reg.AddBuilding("building_b")

	var out bytes.Buffer
	require.NoError(t, printBuildings(&out, reg, nil))
	assert.Equal(t,
		"building_a: 2 readings, total 15 kWh (2024-01-01 00:00 to 2024-01-02 00:00)\n"+
			"building_b: 0 readings, total 0 kWh\n",
		out.String())
}

func TestPrintBuildings_Unknown(t *testing.T) {
	reg := building.NewRegistry()
	reg.AddBuilding("building_a").AddReading(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 2.5)

	var out bytes.Buffer
	err := printBuildings(&out, reg, []string{"building_x", "building_a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "building_x")
	assert.Equal(t,
		"building_x: not found\n"+
			"building_a: 1 readings, total 2.5 kWh (2024-01-01 00:00 to 2024-01-01 00:00)\n",
		out.String())
}

func TestRunQuery_FromConfig(t *testing.T) {
	dataA, err := filepath.Abs(filepath.Join("..", "..", "testdata", "building_a.csv"))
	require.NoError(t, err)
	dataB, err := filepath.Abs(filepath.Join("..", "..", "testdata", "building_b.csv"))
	require.NoError(t, err)

	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	body := fmt.Sprintf("app:\n  log_level: error\ningest:\n  sources:\n    - %s\n    - %s\n", dataA, dataB)
	require.NoError(t, os.WriteFile(cfgFile, []byte(body), 0o644))

	var out bytes.Buffer
	require.NoError(t, runQuery(context.Background(), &out, cfgFile, []string{"building_b"}))
	assert.Equal(t, "building_b: 1 readings, total 7 kWh (2024-01-01 00:00 to 2024-01-01 00:00)\n", out.String())
}
