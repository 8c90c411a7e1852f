package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustRegisterMetricsIsIdempotent(t *testing.T) {
	assert.NotPanics(t, MustRegisterMetrics)
	assert.NotPanics(t, MustRegisterMetrics)

	err := prometheus.Register(PortfolioTotalValue)
	var already prometheus.AlreadyRegisteredError
	require.ErrorAs(t, err, &already)
}

func TestFetchCounterByOutcome(t *testing.T) {
	before := testutil.ToFloat64(PortfolioFetches.WithLabelValues(OutcomeStale))
	PortfolioFetches.WithLabelValues(OutcomeStale).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(PortfolioFetches.WithLabelValues(OutcomeStale)))
}
