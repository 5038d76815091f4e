package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Search outcomes used as the "outcome" label.
const (
	OutcomeReady               = "ready"
	OutcomePermissionDenied    = "permission_denied"
	OutcomeLocationUnavailable = "location_unavailable"
	OutcomeProviderError       = "provider_error"
	OutcomeNetworkError        = "network_error"
)

// DiscoveryCollector exposes discovery session metrics. A nil collector
// is valid and records nothing.
type DiscoveryCollector struct {
	gatherer prometheus.Gatherer

	Searches         *prometheus.CounterVec
	SearchDuration   prometheus.Histogram
	StaleCompletions prometheus.Counter
	PlacesReturned   prometheus.Histogram
	OpenScreens      prometheus.Gauge
}

// NewDiscoveryCollector registers discovery metrics against reg, defaulting
// to the global registry when nil.
func NewDiscoveryCollector(reg prometheus.Registerer) (*DiscoveryCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	searches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "discovery_searches_total",
		Help: "Completed discovery searches by outcome. Discarded stale completions are not counted.",
	}, []string{"outcome"})
	if err := register(reg, searches, "discovery_searches_total"); err != nil {
		return nil, err
	}

	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "discovery_search_duration_seconds",
		Help:    "Time from search command to settled phase, location acquisition included.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 15, 30},
	})
	if err := register(reg, duration, "discovery_search_duration_seconds"); err != nil {
		return nil, err
	}

	stale := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "discovery_stale_completions_total",
		Help: "Search completions discarded because a newer search was issued.",
	})
	if err := register(reg, stale, "discovery_stale_completions_total"); err != nil {
		return nil, err
	}

	placesReturned := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "discovery_places_returned",
		Help:    "Number of places in a Ready result set.",
		Buckets: []float64{0, 1, 5, 10, 20},
	})
	if err := register(reg, placesReturned, "discovery_places_returned"); err != nil {
		return nil, err
	}

	openScreens := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "discovery_open_screens",
		Help: "Screen sessions currently mounted.",
	})
	if err := register(reg, openScreens, "discovery_open_screens"); err != nil {
		return nil, err
	}

	return &DiscoveryCollector{
		gatherer:         gatherer,
		Searches:         searches,
		SearchDuration:   duration,
		StaleCompletions: stale,
		PlacesReturned:   placesReturned,
		OpenScreens:      openScreens,
	}, nil
}

// ObserveSearch records a settled search.
func (c *DiscoveryCollector) ObserveSearch(outcome string, d time.Duration, places int) {
	if c == nil {
		return
	}
	c.Searches.WithLabelValues(outcome).Inc()
	c.SearchDuration.Observe(d.Seconds())
	if outcome == OutcomeReady {
		c.PlacesReturned.Observe(float64(places))
	}
}

func (c *DiscoveryCollector) IncStaleCompletions() {
	if c == nil {
		return
	}
	c.StaleCompletions.Inc()
}

func (c *DiscoveryCollector) SetOpenScreens(n int) {
	if c == nil {
		return
	}
	c.OpenScreens.Set(float64(n))
}

// Handler exposes a ready-to-use /metrics handler.
func (c *DiscoveryCollector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func register(reg prometheus.Registerer, c prometheus.Collector, name string) error {
	if err := reg.Register(c); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return fmt.Errorf("collector %s already registered", name)
		}
		return err
	}
	return nil
}
