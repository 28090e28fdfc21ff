// Package metrics exposes search throughput as Prometheus metrics.
package metrics

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"VanityGen/internal/search"
)

// Collector is a search.Observer that records events into Prometheus
// collectors.
type Collector struct {
	generated prometheus.Counter
	matches   *prometheus.CounterVec
	done      *prometheus.CounterVec
	running   prometheus.Gauge

	mu       sync.Mutex
	reported map[int]uint64 // per worker, candidates already added to generated
}

// Snapshot is a point-in-time read of the collector.
type Snapshot struct {
	Generated uint64
	Matches   uint64
	Running   int
}

// New creates the collectors and registers them on reg. workers sets the
// initial running gauge.
func New(reg prometheus.Registerer, workers int) (*Collector, error) {
	c := &Collector{
		generated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vanitygen",
			Subsystem: "search",
			Name:      "candidates_generated_total",
			Help:      "Total candidate keys generated and tested by all workers.",
		}),
		matches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vanitygen",
			Subsystem: "search",
			Name:      "matches_total",
			Help:      "Total matches reported, by query text.",
		}, []string{"query"}),
		done: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vanitygen",
			Subsystem: "search",
			Name:      "workers_finished_total",
			Help:      "Workers that reached a terminal state, by state.",
		}, []string{"state"}),
		running: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vanitygen",
			Subsystem: "search",
			Name:      "workers_running",
			Help:      "Workers that have not reported completion yet.",
		}),
		reported: make(map[int]uint64),
	}
	for _, col := range []prometheus.Collector{c.generated, c.matches, c.done, c.running} {
		if err := reg.Register(col); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	c.running.Set(float64(workers))
	return c, nil
}

func (c *Collector) OnMatch(m search.Match) error {
	c.matches.WithLabelValues(m.Query.PlainText()).Inc()
	return nil
}

func (c *Collector) OnProgress(p search.Progress) error {
	c.advance(p.WorkerID, p.TotalGenerated)
	return nil
}

func (c *Collector) OnWorkerDone(r search.Report) error {
	c.advance(r.WorkerID, r.TotalGenerated)
	c.done.WithLabelValues(r.State.String()).Inc()
	c.running.Dec()
	return nil
}

func (c *Collector) advance(worker int, total uint64) {
	c.mu.Lock()
	prev := c.reported[worker]
	if total > prev {
		c.reported[worker] = total
	}
	c.mu.Unlock()
	if total > prev {
		c.generated.Add(float64(total - prev))
	}
}

// Snapshot reads the current values back from the collectors.
func (c *Collector) Snapshot() Snapshot {
	var s Snapshot
	var m dto.Metric
	if err := c.generated.Write(&m); err == nil {
		s.Generated = uint64(m.GetCounter().GetValue())
	}
	m.Reset()
	if err := c.running.Write(&m); err == nil {
		s.Running = int(m.GetGauge().GetValue())
	}

	ch := make(chan prometheus.Metric, 16)
	go func() {
		c.matches.Collect(ch)
		close(ch)
	}()
	for pm := range ch {
		var mm dto.Metric
		if err := pm.Write(&mm); err == nil {
			s.Matches += uint64(mm.GetCounter().GetValue())
		}
	}
	return s
}
