package bootstrap

import (
	"github.com/jonesrussell/vidwatch/internal/classifier"
	"github.com/jonesrussell/vidwatch/internal/config"
	"github.com/jonesrussell/vidwatch/internal/logger"
	"github.com/jonesrussell/vidwatch/internal/monitor"
	"github.com/jonesrussell/vidwatch/internal/store"
	"github.com/jonesrussell/vidwatch/internal/telemetry"
	"github.com/jonesrussell/vidwatch/internal/youtube"
)

// BuildMonitor assembles the discovery scheduler with its YouTube client
// and analyzer.
func BuildMonitor(
	cfg *config.Config,
	s *store.Store,
	tel *telemetry.Provider,
	log logger.Logger,
) *monitor.Monitor {
	client := youtube.New(cfg.YouTube, log.With(logger.String("component", "youtube")))
	analyzer := classifier.NewAnalyzer(log.With(logger.String("component", "classifier")))

	return monitor.New(
		cfg.Monitor,
		client,
		s,
		analyzer,
		tel,
		monitor.SystemClock(),
		log.With(logger.String("component", "monitor")),
	)
}
