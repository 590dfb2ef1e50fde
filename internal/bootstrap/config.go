// Package bootstrap wires configuration, logging, storage, and the monitor
// together for the binaries in cmd/.
package bootstrap

import (
	"fmt"
	"log"

	"github.com/jonesrussell/vidwatch/internal/config"
	"github.com/jonesrussell/vidwatch/internal/logger"
)

// LoadConfig loads configuration. Uses defaults if the file doesn't exist.
func LoadConfig() (*config.Config, error) {
	configPath := config.GetConfigPath("config.yml")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Warning: failed to load config file (%s): %v", configPath, err)
		return nil, err
	}
	return cfg, nil
}

// CreateLogger creates a logger instance from configuration.
func CreateLogger(cfg *config.Config) (logger.Logger, error) {
	lg, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return lg.With(logger.String("service", cfg.Service.Name)), nil
}
