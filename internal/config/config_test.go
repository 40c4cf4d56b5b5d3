package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(orig) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, []string{"data/building_a.csv", "data/building_b.csv"}, cfg.Ingest.Sources)
	assert.Equal(t, "output", cfg.Output.Dir)
	assert.True(t, cfg.Report.Workbook)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.False(t, cfg.InfluxDB.Enabled())
	assert.False(t, cfg.Kafka.Enabled())
	assert.False(t, cfg.Minio.Enabled())
	assert.Equal(t, 10*time.Second, cfg.Kafka.Timeout)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	content := `
app:
  log_level: debug
ingest:
  sources:
    - meters/north.csv
    - meters/south.csv
    - meters/east.csv
  parallel: true
output:
  dir: reports
influxdb:
  url: http://localhost:8086
  timeout: 3s
kafka:
  brokers:
    - localhost:9092
  topic: energy
`
	path := filepath.Join(dir, "campus.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Len(t, cfg.Ingest.Sources, 3)
	assert.True(t, cfg.Ingest.Parallel)
	assert.Equal(t, "reports", cfg.Output.Dir)
	assert.True(t, cfg.InfluxDB.Enabled())
	assert.Equal(t, 3*time.Second, cfg.InfluxDB.Timeout)
	assert.Equal(t, "campus-energy", cfg.InfluxDB.Bucket)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "energy", cfg.Kafka.Topic)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("OUTPUT_DIR", "/tmp/energy")
	t.Setenv("INGEST_SOURCES", "a.csv,b.csv")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("INFLUX_TOKEN", "secret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/energy", cfg.Output.Dir)
	assert.Equal(t, []string{"a.csv", "b.csv"}, cfg.Ingest.Sources)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "secret", cfg.InfluxDB.Token)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Ingest: IngestConfig{Sources: []string{"a.csv"}},
		Output: OutputConfig{Dir: "out"},
	}
	require.NoError(t, valid.Validate())

	noSources := valid
	noSources.Ingest.Sources = nil
	assert.Error(t, noSources.Validate())

	blankSource := valid
	blankSource.Ingest.Sources = []string{"a.csv", " "}
	assert.Error(t, blankSource.Validate())

	noDir := valid
	noDir.Output.Dir = ""
	assert.Error(t, noDir.Validate())

	kafkaNoTopic := valid
	kafkaNoTopic.Kafka.Brokers = []string{"k:9092"}
	assert.Error(t, kafkaNoTopic.Validate())

	minioNoBucket := valid
	minioNoBucket.Minio.Endpoint = "localhost:9000"
	assert.Error(t, minioNoBucket.Validate())
}
