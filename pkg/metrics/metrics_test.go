package metrics_test

import (
	"context"
	"testing"
	"unfollower/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestSetupExportsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	mp, err := metrics.Setup(reg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	c := metrics.Counter(mp.Meter("test"), "unfollow_targets", "targets processed")
	c.Add(context.Background(), 2)

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, f := range families {
		if f.GetName() == "unfollow_targets_total" {
			found = true
			require.InDelta(t, 2, f.GetMetric()[0].GetCounter().GetValue(), 0)
		}
	}
	require.True(t, found, "counter should be exported through the prometheus registry")
}

func TestHistogramWithoutSetup(t *testing.T) {
	h := metrics.Histogram(metrics.Meter("test"), "page_fetch_seconds", "page fetch latency")
	require.NotPanics(t, func() { h.Record(context.Background(), 0.2) })
}
