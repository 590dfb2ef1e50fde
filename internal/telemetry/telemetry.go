// Package telemetry provides OpenTelemetry instrumentation for the monitor.
// It exports Prometheus metrics and provides tracing capabilities.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "vidwatch"

// Metrics holds all monitor Prometheus metrics
type Metrics struct {
	// Cycle metrics
	CyclesCompleted prometheus.Counter
	CyclesFailed    prometheus.Counter
	CycleDuration   prometheus.Histogram

	// Discovery metrics
	VideosFetched    *prometheus.CounterVec
	VideosStored     *prometheus.CounterVec
	VideosDuplicate  *prometheus.CounterVec
	VideosIrrelevant *prometheus.CounterVec
	SourceErrors     *prometheus.CounterVec
	SourceDuration   *prometheus.HistogramVec

	// Classification metrics
	EvaluationDuration prometheus.Histogram
	RelevanceScore     prometheus.Histogram

	// Store metrics
	ReportsWritten prometheus.Counter
}

// Provider wraps telemetry providers
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider initializes telemetry with Prometheus metrics
func NewProvider() *Provider {
	return &Provider{
		Tracer:  otel.Tracer(serviceName),
		Metrics: initMetrics(),
	}
}

// Handler returns the Prometheus HTTP handler for /metrics endpoint
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

func initMetrics() *Metrics {
	m := &Metrics{}
	initCycleMetrics(m)
	initDiscoveryMetrics(m)
	initClassificationMetrics(m)
	return m
}

func initCycleMetrics(m *Metrics) {
	m.CyclesCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vidwatch_cycles_completed_total",
		Help: "Total discovery cycles that ran to completion",
	})

	m.CyclesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vidwatch_cycles_failed_total",
		Help: "Total discovery cycles aborted by a store or aggregation error",
	})

	m.CycleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "vidwatch_cycle_duration_seconds",
		Help:    "Wall-clock duration of a full discovery cycle",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	})

	m.ReportsWritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vidwatch_reports_written_total",
		Help: "Total daily report writes (inserts and replacements)",
	})
}

func initDiscoveryMetrics(m *Metrics) {
	m.VideosFetched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vidwatch_videos_fetched_total",
		Help: "Total candidate videos returned by sources",
	}, []string{"source_type"})

	m.VideosStored = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vidwatch_videos_stored_total",
		Help: "Total new relevant videos stored",
	}, []string{"source_type"})

	m.VideosDuplicate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vidwatch_videos_duplicate_total",
		Help: "Total candidates skipped because the id was already stored",
	}, []string{"source_type"})

	m.VideosIrrelevant = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vidwatch_videos_irrelevant_total",
		Help: "Total candidates rejected by the relevance gate",
	}, []string{"source_type"})

	m.SourceErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vidwatch_source_errors_total",
		Help: "Total per-source fetch failures",
	}, []string{"source_type"})

	m.SourceDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vidwatch_source_duration_seconds",
		Help:    "Time to fetch and process one source",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"source_type"})
}

func initClassificationMetrics(m *Metrics) {
	m.EvaluationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "vidwatch_evaluation_duration_seconds",
		Help:    "Time to evaluate a single video",
		Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
	})

	m.RelevanceScore = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "vidwatch_relevance_score",
		Help:    "Relevance score of stored videos",
		Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
	})
}

// RecordCycle records the outcome and duration of a discovery cycle
func (p *Provider) RecordCycle(ctx context.Context, success bool, duration time.Duration) {
	if success {
		p.Metrics.CyclesCompleted.Inc()
	} else {
		p.Metrics.CyclesFailed.Inc()
	}
	p.Metrics.CycleDuration.Observe(duration.Seconds())
}

// RecordSource records the outcome of fetching one source
func (p *Provider) RecordSource(ctx context.Context, sourceType string, fetched int, duration time.Duration, err error) {
	if err != nil {
		p.Metrics.SourceErrors.WithLabelValues(sourceType).Inc()
	}
	p.Metrics.VideosFetched.WithLabelValues(sourceType).Add(float64(fetched))
	p.Metrics.SourceDuration.WithLabelValues(sourceType).Observe(duration.Seconds())
}

// RecordStored records a newly stored video with its score
func (p *Provider) RecordStored(ctx context.Context, sourceType string, score int) {
	p.Metrics.VideosStored.WithLabelValues(sourceType).Inc()
	p.Metrics.RelevanceScore.Observe(float64(score))
}

// RecordDuplicate records a candidate skipped as already stored
func (p *Provider) RecordDuplicate(ctx context.Context, sourceType string) {
	p.Metrics.VideosDuplicate.WithLabelValues(sourceType).Inc()
}

// RecordIrrelevant records a candidate rejected by the relevance gate
func (p *Provider) RecordIrrelevant(ctx context.Context, sourceType string) {
	p.Metrics.VideosIrrelevant.WithLabelValues(sourceType).Inc()
}

// RecordEvaluation records the time spent classifying one video
func (p *Provider) RecordEvaluation(ctx context.Context, duration time.Duration) {
	p.Metrics.EvaluationDuration.Observe(duration.Seconds())
}

// RecordReportWrite records a daily report write
func (p *Provider) RecordReportWrite(ctx context.Context) {
	p.Metrics.ReportsWritten.Inc()
}

// StartSpan starts a new trace span.
// The caller is responsible for ending the span with span.End().
//
//nolint:spancheck // Caller is responsible for ending the span
func (p *Provider) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := p.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	return ctx, span
}
