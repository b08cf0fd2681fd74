package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/samirrijal/olistboard/internal/core/domain"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Dataset   DatasetConfig   `mapstructure:"dataset"`
	Database  DatabaseConfig  `mapstructure:"database"`
	NATS      NATSConfig      `mapstructure:"nats"`
	Valkey    ValkeyConfig    `mapstructure:"valkey"`
	Temporal  TemporalConfig  `mapstructure:"temporal"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Log       LogConfig       `mapstructure:"log"`
	Overlay   OverlayConfig   `mapstructure:"overlay"`
	Portrait  AssetConfig     `mapstructure:"portrait"`
	Assets    AssetsConfig    `mapstructure:"assets"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

// Dataset sources.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

type DatasetConfig struct {
	Source string `mapstructure:"source"`
	Dir    string `mapstructure:"dir"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type NATSConfig struct {
	URL     string `mapstructure:"url"`
	Enabled bool   `mapstructure:"enabled"`
}

type ValkeyConfig struct {
	Addr    string `mapstructure:"addr"`
	Enabled bool   `mapstructure:"enabled"`
	TTL     int    `mapstructure:"ttl"`
}

type TemporalConfig struct {
	HostPort  string `mapstructure:"host_port"`
	TaskQueue string `mapstructure:"task_queue"`
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	TempoAddr   string `mapstructure:"tempo_addr"`
	Enabled     bool   `mapstructure:"enabled"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// AssetConfig locates an image: the local file wins when it exists,
// otherwise RemoteURL is fetched.
type AssetConfig struct {
	LocalPath string `mapstructure:"local_path"`
	RemoteURL string `mapstructure:"remote_url"`
}

// OverlayConfig drives the customer map overlay.
type OverlayConfig struct {
	AssetConfig  `mapstructure:",squash"`
	BBox         domain.BoundingBox `mapstructure:"bbox"`
	MarkerRadius float64            `mapstructure:"marker_radius"`
	MarkerColor  string             `mapstructure:"marker_color"`
	MarkerAlpha  float64            `mapstructure:"marker_alpha"`
}

type AssetsConfig struct {
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

// Load reads configuration from file and environment variables.
func Load(service string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("dataset.source", SourceCSV)
	v.SetDefault("dataset.dir", "data")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "olist")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "olistboard")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nats.enabled", false)
	v.SetDefault("valkey.addr", "localhost:6379")
	v.SetDefault("valkey.enabled", false)
	v.SetDefault("valkey.ttl", 600)
	v.SetDefault("temporal.host_port", "localhost:7233")
	v.SetDefault("temporal.task_queue", "dashboard-reports")
	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.tempo_addr", "tempo:4317")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("overlay.bbox.lat_min", domain.BrazilBounds.LatMin)
	v.SetDefault("overlay.bbox.lat_max", domain.BrazilBounds.LatMax)
	v.SetDefault("overlay.bbox.lon_min", domain.BrazilBounds.LonMin)
	v.SetDefault("overlay.bbox.lon_max", domain.BrazilBounds.LonMax)
	v.SetDefault("overlay.local_path", "assets/brazil-map.jpg")
	v.SetDefault("overlay.remote_url", "https://i.pinimg.com/originals/3a/0c/e1/3a0ce18b3c842748c255bc0aa445ad41.jpg")
	v.SetDefault("overlay.marker_radius", 1.5)
	v.SetDefault("overlay.marker_color", "#800000")
	v.SetDefault("overlay.marker_alpha", 0.3)
	v.SetDefault("portrait.local_path", "dashboard/foto_saya.jpg")
	v.SetDefault("portrait.remote_url", "")
	v.SetDefault("assets.fetch_timeout", 10*time.Second)

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: OLISTBOARD_DATASET_DIR → dataset.dir
	v.SetEnvPrefix("OLISTBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}

	switch c.Dataset.Source {
	case SourceCSV:
		if c.Dataset.Dir == "" {
			errs = append(errs, "dataset.dir is required for the csv source")
		}
	case SourcePostgres:
		if c.Database.Host == "" {
			errs = append(errs, "database.host is required")
		}
		if c.Database.Port <= 0 || c.Database.Port > 65535 {
			errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", c.Database.Port))
		}
		if c.Database.User == "" {
			errs = append(errs, "database.user is required")
		}
		if c.Database.DBName == "" {
			errs = append(errs, "database.dbname is required")
		}
	default:
		errs = append(errs, fmt.Sprintf("dataset.source must be %q or %q, got %q", SourceCSV, SourcePostgres, c.Dataset.Source))
	}

	if c.NATS.Enabled && c.NATS.URL == "" {
		errs = append(errs, "nats.url is required when nats is enabled")
	}
	if c.Valkey.Enabled && c.Valkey.Addr == "" {
		errs = append(errs, "valkey.addr is required when valkey is enabled")
	}

	b := c.Overlay.BBox
	if b.LatMin >= b.LatMax {
		errs = append(errs, fmt.Sprintf("overlay.bbox.lat_min (%g) must be below lat_max (%g)", b.LatMin, b.LatMax))
	}
	if b.LonMin >= b.LonMax {
		errs = append(errs, fmt.Sprintf("overlay.bbox.lon_min (%g) must be below lon_max (%g)", b.LonMin, b.LonMax))
	}
	if c.Overlay.LocalPath == "" && c.Overlay.RemoteURL == "" {
		errs = append(errs, "overlay needs a local_path or a remote_url")
	}
	if c.Overlay.MarkerRadius <= 0 {
		errs = append(errs, "overlay.marker_radius must be positive")
	}
	if c.Overlay.MarkerAlpha < 0 || c.Overlay.MarkerAlpha > 1 {
		errs = append(errs, fmt.Sprintf("overlay.marker_alpha must be within [0,1], got %g", c.Overlay.MarkerAlpha))
	}
	if c.Assets.FetchTimeout <= 0 {
		errs = append(errs, "assets.fetch_timeout must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
