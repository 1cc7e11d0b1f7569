package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Guess outcome labels
const (
	OutcomeCorrect = "correct"
	OutcomeEarlier = "earlier"
	OutcomeLater   = "later"
)

// Metrics holds the game collectors. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	roundsStarted  prometheus.Counter
	catalogResets  prometheus.Counter
	guesses        *prometheus.CounterVec
	surrenders     prometheus.Counter
	cancels        prometheus.Counter
	cachedPlayers  prometheus.Gauge
	catalogEvents  prometheus.Gauge
	flushDuration  prometheus.Histogram
	flushedPlayers prometheus.Counter
}

// New creates the collectors and registers them on a fresh registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		roundsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "guessyear_rounds_started_total",
			Help: "Total number of rounds started",
		}),
		catalogResets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "guessyear_catalog_resets_total",
			Help: "Total number of times a player solved the whole catalog and started over",
		}),
		guesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "guessyear_guesses_total",
			Help: "Total number of guesses by outcome",
		}, []string{"outcome"}),
		surrenders: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "guessyear_surrenders_total",
			Help: "Total number of surrendered rounds",
		}),
		cancels: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "guessyear_cancels_total",
			Help: "Total number of cancelled rounds",
		}),
		cachedPlayers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "guessyear_cached_players",
			Help: "Number of players held in the in-memory cache",
		}),
		catalogEvents: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "guessyear_catalog_events",
			Help: "Number of events in the loaded catalog",
		}),
		flushDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "guessyear_flush_duration_seconds",
			Help:    "Duration of player cache flushes",
			Buckets: prometheus.DefBuckets,
		}),
		flushedPlayers: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "guessyear_flushed_players_total",
			Help: "Total number of players written by cache flushes",
		}),
	}

	m.registry.MustRegister(
		m.roundsStarted,
		m.catalogResets,
		m.guesses,
		m.surrenders,
		m.cancels,
		m.cachedPlayers,
		m.catalogEvents,
		m.flushDuration,
		m.flushedPlayers,
	)

	return m
}

// Registry returns the registry holding the collectors
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RoundStarted records a new round, and whether the player's solved list was reset first
func (m *Metrics) RoundStarted(reset bool) {
	if m == nil {
		return
	}
	m.roundsStarted.Inc()
	if reset {
		m.catalogResets.Inc()
	}
}

// Guess records a guess outcome
func (m *Metrics) Guess(outcome string) {
	if m == nil {
		return
	}
	m.guesses.WithLabelValues(outcome).Inc()
}

// Surrender records a surrendered round
func (m *Metrics) Surrender() {
	if m == nil {
		return
	}
	m.surrenders.Inc()
}

// Cancel records a cancelled round
func (m *Metrics) Cancel() {
	if m == nil {
		return
	}
	m.cancels.Inc()
}

// CachedPlayers sets the cache size
func (m *Metrics) CachedPlayers(n int) {
	if m == nil {
		return
	}
	m.cachedPlayers.Set(float64(n))
}

// CatalogEvents sets the catalog size
func (m *Metrics) CatalogEvents(n int) {
	if m == nil {
		return
	}
	m.catalogEvents.Set(float64(n))
}

// Flush records a completed flush
func (m *Metrics) Flush(took time.Duration, saved int) {
	if m == nil {
		return
	}
	m.flushDuration.Observe(took.Seconds())
	m.flushedPlayers.Add(float64(saved))
}
