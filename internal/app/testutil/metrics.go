package testutil

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

// HistogramSampleCount returns how many observations the unlabelled histogram
// name has received.
func HistogramSampleCount(t testing.TB, g prometheus.Gatherer, name string) uint64 {
	t.Helper()
	return histogram(t, g, name).GetSampleCount()
}

// HistogramSampleSum returns the sum of all observations of histogram name.
func HistogramSampleSum(t testing.TB, g prometheus.Gatherer, name string) float64 {
	t.Helper()
	return histogram(t, g, name).GetSampleSum()
}

func histogram(t testing.TB, g prometheus.Gatherer, name string) interface {
	GetSampleCount() uint64
	GetSampleSum() float64
} {
	t.Helper()

	families, err := g.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		require.Len(t, mf.GetMetric(), 1, "%s must have exactly one series", name)
		h := mf.GetMetric()[0].GetHistogram()
		require.NotNil(t, h, "%s is not a histogram", name)
		return h
	}
	require.FailNow(t, "metric not gathered", name)
	return nil
}
