package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCounterWith(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCounterWith(reg)

	c.WithLabelValues(UserCreated).Inc()
	c.WithLabelValues(UserCreated).Inc()
	c.WithLabelValues(AuthDenied).Inc()

	assert.Equal(t, float64(2), testutil.ToFloat64(c.WithLabelValues(UserCreated)))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.WithLabelValues(AuthDenied)))

	n, err := testutil.GatherAndCount(reg, "bakaapi_general_counters")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
