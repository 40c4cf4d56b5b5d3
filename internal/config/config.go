package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Ingest   IngestConfig   `mapstructure:"ingest"`
	Output   OutputConfig   `mapstructure:"output"`
	Report   ReportConfig   `mapstructure:"report"`
	InfluxDB InfluxDBConfig `mapstructure:"influxdb"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Minio    MinioConfig    `mapstructure:"minio"`
}

type AppConfig struct {
	Name     string `mapstructure:"name"`
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
}

// IngestConfig lists the CSV sources, one per building
type IngestConfig struct {
	Sources  []string `mapstructure:"sources"`
	Parallel bool     `mapstructure:"parallel"`
}

type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

type ReportConfig struct {
	Workbook bool `mapstructure:"workbook"`
}

// InfluxDBConfig holds InfluxDB-related configuration. An empty URL
// disables the export.
type InfluxDBConfig struct {
	URL     string        `mapstructure:"url"`
	Org     string        `mapstructure:"org"`
	Token   string        `mapstructure:"token"`
	Bucket  string        `mapstructure:"bucket"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// KafkaConfig holds Kafka-related configuration. No brokers disables publishing.
type KafkaConfig struct {
	Brokers  []string      `mapstructure:"brokers"`
	Topic    string        `mapstructure:"topic"`
	ClientID string        `mapstructure:"client_id"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// MinioConfig configures the optional artifact mirror. An empty endpoint
// disables it.
type MinioConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

func (c InfluxDBConfig) Enabled() bool { return c.URL != "" }
func (c KafkaConfig) Enabled() bool    { return len(c.Brokers) > 0 }
func (c MinioConfig) Enabled() bool    { return c.Endpoint != "" }

// Load reads configuration from defaults, an optional YAML file and the
// environment, in increasing order of precedence. An empty configFile
// looks for config.yaml in the working directory and ./config.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("influxdb.token", "INFLUXDB_TOKEN", "INFLUX_TOKEN")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "campus-energy-dashboard")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("ingest.sources", []string{"data/building_a.csv", "data/building_b.csv"})
	v.SetDefault("ingest.parallel", false)

	v.SetDefault("output.dir", "output")
	v.SetDefault("report.workbook", true)

	v.SetDefault("influxdb.url", "")
	v.SetDefault("influxdb.org", "campus")
	v.SetDefault("influxdb.token", "")
	v.SetDefault("influxdb.bucket", "campus-energy")
	v.SetDefault("influxdb.timeout", 10*time.Second)

	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "campus-energy-summary")
	v.SetDefault("kafka.client_id", "campus-energy-dashboard")
	v.SetDefault("kafka.timeout", 10*time.Second)

	v.SetDefault("minio.endpoint", "")
	v.SetDefault("minio.access_key", "")
	v.SetDefault("minio.secret_key", "")
	v.SetDefault("minio.bucket", "campus-energy-reports")
	v.SetDefault("minio.prefix", "")
	v.SetDefault("minio.use_ssl", false)
}

// Validate checks the settings the pipeline cannot run without
func (c *Config) Validate() error {
	if len(c.Ingest.Sources) == 0 {
		return errors.New("ingest.sources must list at least one source")
	}
	for i, s := range c.Ingest.Sources {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("ingest.sources[%d] is empty", i)
		}
	}
	if strings.TrimSpace(c.Output.Dir) == "" {
		return errors.New("output.dir is required")
	}
	if c.Kafka.Enabled() && c.Kafka.Topic == "" {
		return errors.New("kafka.topic is required when kafka.brokers is set")
	}
	if c.InfluxDB.Enabled() && c.InfluxDB.Bucket == "" {
		return errors.New("influxdb.bucket is required when influxdb.url is set")
	}
	if c.Minio.Enabled() && c.Minio.Bucket == "" {
		return errors.New("minio.bucket is required when minio.endpoint is set")
	}
	return nil
}
