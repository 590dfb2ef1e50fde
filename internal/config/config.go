package config

import (
	"time"

	"github.com/jonesrussell/vidwatch/internal/domain"
	"github.com/jonesrussell/vidwatch/internal/logger"
)

// Default configuration values.
const (
	defaultServiceName    = "vidwatch"
	defaultServiceVersion = "1.0.0"
	defaultServicePort    = 8080
	defaultOpsPort        = 9090
	defaultBaseURL        = "https://www.googleapis.com/youtube/v3"
	defaultRequestsPerSec = 5
	defaultBurst          = 5
	defaultMaxResults     = 50
	defaultLookbackDays   = 7
	defaultIntervalHours  = 6
	defaultConcurrency    = 4
	defaultDatabasePath   = "data/monitor.db"
	defaultRequestTimeout = 30 * time.Second
)

// Config holds all configuration for the monitor and dashboard services.
type Config struct {
	Service  ServiceConfig  `yaml:"service"`
	YouTube  YouTubeConfig  `yaml:"youtube"`
	Monitor  MonitorConfig  `yaml:"monitor"`
	Database DatabaseConfig `yaml:"database"`
	Logging  logger.Config  `yaml:"logging"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Port    int    `env:"MONITOR_PORT" yaml:"port"`
	OpsPort int    `env:"OPS_PORT"     yaml:"ops_port"`
	Debug   bool   `env:"APP_DEBUG"    yaml:"debug"`
}

// YouTubeConfig holds YouTube Data API client configuration.
type YouTubeConfig struct {
	APIKey            string        `env:"YOUTUBE_API_KEY" yaml:"api_key"`
	BaseURL           string        `yaml:"base_url"`
	RequestsPerSecond int           `yaml:"requests_per_second"`
	Burst             int           `yaml:"burst"`
	Timeout           time.Duration `yaml:"timeout"`
}

// MonitorConfig holds discovery scheduler configuration.
type MonitorConfig struct {
	Channels     []string      `env:"MONITOR_CHANNELS"      yaml:"channels"`
	SearchTerms  []string      `env:"SEARCH_TERMS"          yaml:"search_terms"`
	MaxResults   int           `env:"MAX_VIDEOS_PER_SEARCH" yaml:"max_results"`
	LookbackDays int           `env:"DAYS_LOOKBACK"         yaml:"lookback_days"`
	Interval     time.Duration `env:"CHECK_INTERVAL_HOURS"  envunit:"hours" yaml:"interval"`
	Concurrency  int           `yaml:"concurrency"`
}

// DatabaseConfig holds the record store configuration.
type DatabaseConfig struct {
	Path string `env:"DATABASE_PATH" yaml:"path"`
}

// Load loads configuration from the specified path.
func Load(path string) (*Config, error) {
	return loadWithDefaults[Config](path, setDefaults)
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setYouTubeDefaults(&cfg.YouTube)
	setMonitorDefaults(&cfg.Monitor)
	if cfg.Database.Path == "" {
		cfg.Database.Path = defaultDatabasePath
	}
	cfg.Logging.SetDefaults()
}

func setServiceDefaults(s *ServiceConfig) {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
	if s.Port == 0 {
		s.Port = defaultServicePort
	}
	if s.OpsPort == 0 {
		s.OpsPort = defaultOpsPort
	}
}

func setYouTubeDefaults(y *YouTubeConfig) {
	if y.BaseURL == "" {
		y.BaseURL = defaultBaseURL
	}
	if y.RequestsPerSecond == 0 {
		y.RequestsPerSecond = defaultRequestsPerSec
	}
	if y.Burst == 0 {
		y.Burst = defaultBurst
	}
	if y.Timeout == 0 {
		y.Timeout = defaultRequestTimeout
	}
}

func setMonitorDefaults(m *MonitorConfig) {
	if m.MaxResults == 0 {
		m.MaxResults = defaultMaxResults
	}
	if m.LookbackDays == 0 {
		m.LookbackDays = defaultLookbackDays
	}
	if m.Interval == 0 {
		m.Interval = defaultIntervalHours * time.Hour
	}
	if m.Concurrency == 0 {
		m.Concurrency = defaultConcurrency
	}
}

// Validate checks required settings. A failure here is fatal at startup.
func (c *Config) Validate() error {
	if c.YouTube.APIKey == "" {
		return &domain.ConfigError{Setting: "youtube.api_key", Reason: "missing (set YOUTUBE_API_KEY)"}
	}
	if len(c.Monitor.Channels) == 0 && len(c.Monitor.SearchTerms) == 0 {
		return &domain.ConfigError{
			Setting: "monitor.channels",
			Reason:  "at least one channel or search term is required",
		}
	}
	if c.Monitor.LookbackDays < 0 {
		return &domain.ConfigError{Setting: "monitor.lookback_days", Reason: "must not be negative"}
	}
	return nil
}
