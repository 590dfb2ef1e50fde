package bootstrap

import (
	"fmt"

	"github.com/jonesrussell/vidwatch/internal/config"
	"github.com/jonesrussell/vidwatch/internal/logger"
	"github.com/jonesrussell/vidwatch/internal/store"
)

// OpenStore opens the sqlite record store configured in cfg.
func OpenStore(cfg *config.Config, log logger.Logger) (*store.Store, error) {
	s, err := store.Open(cfg.Database.Path, log)
	if err != nil {
		return nil, fmt.Errorf("open record store: %w", err)
	}
	return s, nil
}
