package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VanityGen/internal/query"
	"VanityGen/internal/search"
)

func TestCollector_Counts(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(reg, 2)
	require.NoError(t, err)

	q := query.MustNew(query.Config{Text: "abc"})

	require.NoError(t, c.OnProgress(search.Progress{WorkerID: 0, TotalGenerated: 1000, BurstSize: 1000}))
	require.NoError(t, c.OnProgress(search.Progress{WorkerID: 1, TotalGenerated: 1000, BurstSize: 1000}))
	require.NoError(t, c.OnMatch(search.Match{WorkerID: 0, Query: q}))
	require.NoError(t, c.OnMatch(search.Match{WorkerID: 1, Query: q}))
	require.NoError(t, c.OnWorkerDone(search.Report{WorkerID: 0, TotalGenerated: 1500, State: search.StateCancelled}))

	s := c.Snapshot()
	assert.Equal(t, uint64(2500), s.Generated)
	assert.Equal(t, uint64(2), s.Matches)
	assert.Equal(t, 1, s.Running)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.matches.WithLabelValues("abc")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.done.WithLabelValues("cancelled")))
}

func TestCollector_DoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg, 1)
	require.NoError(t, err)
	_, err = New(reg, 1)
	assert.Error(t, err)
}

func TestCollector_WorksAsObserver(t *testing.T) {
	c, err := New(prometheus.NewRegistry(), 1)
	require.NoError(t, err)
	var _ search.Observer = c
}
