package monitor

import (
	"context"
	"time"

	"github.com/jonesrussell/vidwatch/internal/domain"
)

// SourceType distinguishes the two discovery paths.
type SourceType string

const (
	SourceChannel SourceType = "channel"
	SourceSearch  SourceType = "search"
)

// Source is one unit of discovery work: a channel whose uploads are listed,
// or a search term that is queried.
type Source struct {
	Type  SourceType
	Value string
}

func (s Source) String() string {
	return string(s.Type) + ":" + s.Value
}

// Fetcher retrieves candidate videos from the upstream video platform.
type Fetcher interface {
	ChannelVideos(ctx context.Context, channel string, publishedAfter time.Time, max int) ([]*domain.Video, error)
	Search(ctx context.Context, query string, publishedAfter time.Time, max int) ([]*domain.Video, error)
}

// Recorder is the subset of the record store the monitor writes through.
type Recorder interface {
	PutIfAbsent(ctx context.Context, v *domain.Video) (bool, error)
	AllForDate(ctx context.Context, date string) ([]*domain.Video, error)
	SaveDailyReport(ctx context.Context, report *domain.DailyReport) error
}

// sourceResult carries the per-source tallies back from a worker.
type sourceResult struct {
	source     Source
	fetched    int
	stored     int
	duplicates int
	irrelevant int
	err        error
}

// buildSources expands the configured channels and search terms into the
// cycle's work list, channels first.
func buildSources(channels, searchTerms []string) []Source {
	sources := make([]Source, 0, len(channels)+len(searchTerms))
	for _, c := range channels {
		sources = append(sources, Source{Type: SourceChannel, Value: c})
	}
	for _, term := range searchTerms {
		sources = append(sources, Source{Type: SourceSearch, Value: term})
	}
	return sources
}
