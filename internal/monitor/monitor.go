// Package monitor drives the discovery loop: it polls the configured
// channels and search terms on an interval, classifies candidates, stores
// new relevant videos, and regenerates the current day's report.
package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonesrussell/vidwatch/internal/classifier"
	"github.com/jonesrussell/vidwatch/internal/config"
	"github.com/jonesrussell/vidwatch/internal/domain"
	"github.com/jonesrussell/vidwatch/internal/logger"
	"github.com/jonesrussell/vidwatch/internal/report"
	"github.com/jonesrussell/vidwatch/internal/telemetry"
)

const dateLayout = "2006-01-02"

// State represents the scheduler's position in its cycle.
type State string

const (
	StateIdle        State = "idle"
	StatePolling     State = "polling"
	StateAggregating State = "aggregating"
	StateSleeping    State = "sleeping"
)

// ValidateStateTransition checks if a scheduler state transition is valid.
func ValidateStateTransition(from, to State) error {
	validTransitions := map[State][]State{
		StateIdle:        {StatePolling, StateSleeping},
		StatePolling:     {StateAggregating, StateIdle},
		StateAggregating: {StateIdle},
		StateSleeping:    {StatePolling, StateIdle},
	}

	allowed, exists := validTransitions[from]
	if !exists {
		return fmt.Errorf("unknown source state: %s", from)
	}
	for _, s := range allowed {
		if s == to {
			return nil
		}
	}
	return fmt.Errorf("invalid state transition from %s to %s", from, to)
}

// CycleSummary reports what one discovery cycle did.
type CycleSummary struct {
	ID           string
	StartedAt    time.Time
	FinishedAt   time.Time
	Sources      int
	Fetched      int
	Stored       int
	Duplicates   int
	Irrelevant   int
	SourceErrors []error
}

// Monitor runs discovery cycles against a Fetcher and Recorder.
type Monitor struct {
	cfg       config.MonitorConfig
	fetcher   Fetcher
	store     Recorder
	analyzer  *classifier.Analyzer
	telemetry *telemetry.Provider
	clock     Clock
	logger    logger.Logger

	mu        sync.Mutex
	state     State
	lastCycle *CycleSummary
}

// New creates a Monitor. telemetry may be nil when metrics are not wanted.
func New(
	cfg config.MonitorConfig,
	fetcher Fetcher,
	store Recorder,
	analyzer *classifier.Analyzer,
	tel *telemetry.Provider,
	clock Clock,
	log logger.Logger,
) *Monitor {
	if clock == nil {
		clock = SystemClock()
	}
	return &Monitor{
		cfg:       cfg,
		fetcher:   fetcher,
		store:     store,
		analyzer:  analyzer,
		telemetry: tel,
		clock:     clock,
		logger:    log,
		state:     StateIdle,
	}
}

// State returns the scheduler's current state.
func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// LastCycle returns the most recent completed cycle summary, or nil before
// the first cycle finishes.
func (m *Monitor) LastCycle() *CycleSummary {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastCycle
}

func (m *Monitor) setState(to State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := ValidateStateTransition(m.state, to); err != nil {
		m.logger.Warn("state transition rejected", logger.Error(err))
		return
	}
	m.state = to
}

// Run executes discovery cycles until the context is cancelled, sleeping
// the configured interval between cycles. Cycle failures are logged and do
// not stop the loop.
func (m *Monitor) Run(ctx context.Context) error {
	m.logger.Info("monitor started",
		logger.Int("channels", len(m.cfg.Channels)),
		logger.Int("search_terms", len(m.cfg.SearchTerms)),
		logger.Duration("interval", m.cfg.Interval),
	)

	for {
		if _, err := m.RunCycle(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			m.logger.Error("discovery cycle failed", logger.Error(err))
		}

		m.setState(StateSleeping)
		select {
		case <-ctx.Done():
			m.setState(StateIdle)
			m.logger.Info("monitor stopped")
			return nil
		case <-m.clock.After(m.cfg.Interval):
		}
	}
}

// RunCycle performs one full discovery cycle: fan out over all sources,
// classify and store candidates, then rebuild today's report. Individual
// source failures are recorded in the summary and do not abort the cycle;
// a failure to persist the report does.
func (m *Monitor) RunCycle(ctx context.Context) (*CycleSummary, error) {
	m.setState(StatePolling)

	summary := &CycleSummary{
		ID:        uuid.NewString(),
		StartedAt: m.clock.Now().UTC(),
	}
	sources := buildSources(m.cfg.Channels, m.cfg.SearchTerms)
	summary.Sources = len(sources)

	m.logger.Info("cycle started",
		logger.String("cycle_id", summary.ID),
		logger.Int("sources", len(sources)),
	)

	for _, res := range m.pollSources(ctx, sources) {
		summary.Fetched += res.fetched
		summary.Stored += res.stored
		summary.Duplicates += res.duplicates
		summary.Irrelevant += res.irrelevant
		if res.err != nil {
			summary.SourceErrors = append(summary.SourceErrors, res.err)
			m.logger.Warn("source failed",
				logger.String("cycle_id", summary.ID),
				logger.String("source", res.source.String()),
				logger.Error(res.err),
			)
		}
	}

	m.setState(StateAggregating)
	err := m.rebuildTodayReport(ctx)

	summary.FinishedAt = m.clock.Now().UTC()
	m.finishCycle(summary, err)
	if err != nil {
		return summary, err
	}

	m.logger.Info("cycle finished",
		logger.String("cycle_id", summary.ID),
		logger.Int("fetched", summary.Fetched),
		logger.Int("stored", summary.Stored),
		logger.Int("duplicates", summary.Duplicates),
		logger.Int("irrelevant", summary.Irrelevant),
		logger.Int("source_errors", len(summary.SourceErrors)),
	)
	return summary, nil
}

func (m *Monitor) finishCycle(summary *CycleSummary, err error) {
	m.mu.Lock()
	m.lastCycle = summary
	m.mu.Unlock()

	if m.telemetry != nil {
		duration := summary.FinishedAt.Sub(summary.StartedAt)
		m.telemetry.RecordCycle(context.Background(), err == nil, duration)
	}
	m.setState(StateIdle)
}

// pollSources fans the source list out over a bounded worker pool and
// collects per-source tallies.
func (m *Monitor) pollSources(ctx context.Context, sources []Source) []sourceResult {
	if len(sources) == 0 {
		return nil
	}

	concurrency := m.cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	if concurrency > len(sources) {
		concurrency = len(sources)
	}

	jobs := make(chan Source, len(sources))
	results := make(chan sourceResult, len(sources))

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for src := range jobs {
				results <- m.processSource(ctx, src)
			}
		}()
	}

	for _, src := range sources {
		jobs <- src
	}
	close(jobs)

	wg.Wait()
	close(results)

	out := make([]sourceResult, 0, len(sources))
	for res := range results {
		out = append(out, res)
	}
	return out
}

// processSource fetches one source's candidates, classifies them, and stores
// the new relevant ones.
func (m *Monitor) processSource(ctx context.Context, src Source) sourceResult {
	res := sourceResult{source: src}
	start := m.clock.Now()

	cutoff := m.clock.Now().UTC().AddDate(0, 0, -m.cfg.LookbackDays)

	var (
		videos []*domain.Video
		err    error
	)
	switch src.Type {
	case SourceChannel:
		videos, err = m.fetcher.ChannelVideos(ctx, src.Value, cutoff, m.cfg.MaxResults)
	case SourceSearch:
		videos, err = m.fetcher.Search(ctx, src.Value, cutoff, m.cfg.MaxResults)
	default:
		err = fmt.Errorf("unknown source type %q", src.Type)
	}

	res.fetched = len(videos)
	if m.telemetry != nil {
		m.telemetry.RecordSource(ctx, string(src.Type), len(videos), m.clock.Now().Sub(start), err)
	}
	if err != nil {
		res.err = &domain.SourceError{Source: src.String(), Err: err}
		return res
	}

	for _, v := range videos {
		if err := m.ingest(ctx, src, v, &res); err != nil {
			res.err = err
			return res
		}
	}
	return res
}

// ingest classifies one candidate and stores it if it is new and relevant.
func (m *Monitor) ingest(ctx context.Context, src Source, v *domain.Video, res *sourceResult) error {
	evalStart := m.clock.Now()
	result := m.analyzer.Evaluate(v)
	if m.telemetry != nil {
		m.telemetry.RecordEvaluation(ctx, m.clock.Now().Sub(evalStart))
	}

	if !result.Relevant {
		res.irrelevant++
		if m.telemetry != nil {
			m.telemetry.RecordIrrelevant(ctx, string(src.Type))
		}
		return nil
	}

	v.Categories = result.Categories
	v.RelevanceScore = result.Score
	v.DiscoveredAt = m.clock.Now().UTC()

	stored, err := m.store.PutIfAbsent(ctx, v)
	if err != nil {
		return err
	}
	if !stored {
		res.duplicates++
		if m.telemetry != nil {
			m.telemetry.RecordDuplicate(ctx, string(src.Type))
		}
		return nil
	}

	res.stored++
	if m.telemetry != nil {
		m.telemetry.RecordStored(ctx, string(src.Type), v.RelevanceScore)
	}
	m.logger.Debug("video stored",
		logger.String("video_id", v.ID),
		logger.String("source", src.String()),
		logger.Int("score", v.RelevanceScore),
	)
	return nil
}

// rebuildTodayReport regenerates and persists the report for the current
// UTC date from everything discovered on that date.
func (m *Monitor) rebuildTodayReport(ctx context.Context) error {
	now := m.clock.Now().UTC()
	date := now.Format(dateLayout)

	items, err := m.store.AllForDate(ctx, date)
	if err != nil {
		return err
	}

	if err := m.store.SaveDailyReport(ctx, report.Build(date, items, now)); err != nil {
		return err
	}
	if m.telemetry != nil {
		m.telemetry.RecordReportWrite(ctx)
	}
	return nil
}
