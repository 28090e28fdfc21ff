// Package search runs vanity searches: a fixed set of workers consuming one
// shared query pool and reporting to a caller-supplied Observer.
package search

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"VanityGen/internal/keys"
	"VanityGen/internal/network"
	"VanityGen/internal/pool"
	"VanityGen/internal/query"
	"VanityGen/pkg/logx"
)

// Config configures a Coordinator.
type Config struct {
	Workers      int    // defaults to runtime.NumCPU()
	UpdateAmount uint64 // defaults to DefaultUpdateAmount
	// Network is the default network for queries without their own.
	Network *network.Network
	Hint    SpawnHint
	// NewProvider returns the key provider of one worker. Defaults to
	// keys.NewRandomProvider.
	NewProvider func(workerID int) (keys.Provider, error)
}

// Coordinator owns the workers of one search run.
type Coordinator struct {
	cfg     Config
	pool    *pool.Pool
	workers []*Worker

	mu        sync.Mutex
	started   bool
	cancelled bool
	cancel    context.CancelFunc
	g         errgroup.Group
	reports   []Report
	errs      []error
}

// New builds a coordinator over a fresh pool holding qs.
func New(cfg Config, obs Observer, qs ...*query.Query) (*Coordinator, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.UpdateAmount == 0 {
		cfg.UpdateAmount = DefaultUpdateAmount
	}
	if cfg.Network == nil {
		cfg.Network = network.BitcoinMainnet
	}
	if err := cfg.Network.Validate(); err != nil {
		return nil, fmt.Errorf("default network: %w", err)
	}
	if cfg.NewProvider == nil {
		cfg.NewProvider = func(int) (keys.Provider, error) { return keys.NewRandomProvider(), nil }
	}

	c := &Coordinator{
		cfg:     cfg,
		pool:    pool.New(qs...),
		reports: make([]Report, cfg.Workers),
		errs:    make([]error, cfg.Workers),
	}
	for i := 0; i < cfg.Workers; i++ {
		prov, err := cfg.NewProvider(i)
		if err != nil {
			return nil, fmt.Errorf("provider for worker %d: %w", i, err)
		}
		wc := WorkerConfig{ID: i, UpdateAmount: cfg.UpdateAmount, Network: cfg.Network, Hint: cfg.Hint}
		c.workers = append(c.workers, NewWorker(wc, c.pool, prov, obs))
		c.reports[i] = Report{WorkerID: i, State: StateIdle}
	}
	return c, nil
}

// Pool is the query pool shared by the workers. Queries may be added or
// removed while the search runs.
func (c *Coordinator) Pool() *pool.Pool { return c.pool }

func (c *Coordinator) Workers() []*Worker { return c.workers }

// Start spawns every worker. It returns immediately.
func (c *Coordinator) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return ErrStarted
	}
	c.started = true

	ctx, c.cancel = context.WithCancel(ctx)
	if c.cancelled {
		c.cancel()
	}

	logx.S().Debugw("search started",
		"workers", len(c.workers),
		"queries", c.pool.Len(),
		"network", c.cfg.Network.Name,
	)
	for i, w := range c.workers {
		i, w := i, w
		c.g.Go(func() error {
			rep, err := w.Run(ctx)
			c.mu.Lock()
			c.reports[i] = rep
			c.errs[i] = err
			c.mu.Unlock()
			return err
		})
	}
	return nil
}

// Cancel asks every worker to stop after its current candidate. Cancelling
// before Start makes every worker stop as soon as it starts.
func (c *Coordinator) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelled = true
	if c.cancel != nil {
		c.cancel()
	}
}

// Wait blocks until every worker reached a terminal state and returns the
// joined worker failures. Failed workers are not restarted.
func (c *Coordinator) Wait() error {
	c.mu.Lock()
	started := c.started
	c.mu.Unlock()
	if !started {
		return ErrNotStarted
	}

	_ = c.g.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancel()
	return errors.Join(c.errs...)
}

// Run is Start followed by Wait.
func (c *Coordinator) Run(ctx context.Context) error {
	if err := c.Start(ctx); err != nil {
		return err
	}
	return c.Wait()
}

// Reports returns each worker's latest report, indexed by worker ID. Reports
// are final once Wait returned.
func (c *Coordinator) Reports() []Report {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Report, len(c.reports))
	copy(out, c.reports)
	return out
}

// Total is the number of candidates generated so far by all workers.
func (c *Coordinator) Total() uint64 {
	var n uint64
	for _, w := range c.workers {
		n += w.TotalGenerated()
	}
	return n
}
