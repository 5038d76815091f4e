package observability

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoveryCollector_Records(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewDiscoveryCollector(reg)
	require.NoError(t, err)

	c.ObserveSearch(OutcomeReady, 200*time.Millisecond, 3)
	c.ObserveSearch(OutcomeProviderError, time.Second, 0)
	c.IncStaleCompletions()
	c.SetOpenScreens(2)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.Searches.WithLabelValues(OutcomeReady)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Searches.WithLabelValues(OutcomeProviderError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.StaleCompletions))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.OpenScreens))
	assert.Equal(t, 1, testutil.CollectAndCount(c.PlacesReturned))
}

func TestDiscoveryCollector_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewDiscoveryCollector(reg)
	require.NoError(t, err)

	_, err = NewDiscoveryCollector(reg)
	assert.Error(t, err)
}

func TestDiscoveryCollector_NilIsNoop(t *testing.T) {
	var c *DiscoveryCollector
	assert.NotPanics(t, func() {
		c.ObserveSearch(OutcomeReady, time.Second, 1)
		c.IncStaleCompletions()
		c.SetOpenScreens(1)
	})
}

func TestDiscoveryCollector_Handler(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewDiscoveryCollector(reg)
	require.NoError(t, err)
	c.IncStaleCompletions()

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "discovery_stale_completions_total 1")
}
