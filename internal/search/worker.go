package search

import (
	"context"
	"errors"
	"sync/atomic"

	"VanityGen/internal/keys"
	"VanityGen/internal/network"
	"VanityGen/internal/pool"
	"VanityGen/pkg/logx"
)

// DefaultUpdateAmount is the number of candidates between progress reports.
const DefaultUpdateAmount = 1000

// WorkerConfig configures one worker.
type WorkerConfig struct {
	ID           int
	UpdateAmount uint64
	// Network is used for queries that carry no network of their own.
	Network *network.Network
	Hint    SpawnHint
}

// Worker runs one generate, match, report loop over a shared pool. A worker
// runs at most once.
type Worker struct {
	cfg      WorkerConfig
	pool     *pool.Pool
	provider keys.Provider
	obs      Observer

	state atomic.Int32
	total atomic.Uint64
}

func NewWorker(cfg WorkerConfig, p *pool.Pool, provider keys.Provider, obs Observer) *Worker {
	if cfg.UpdateAmount == 0 {
		cfg.UpdateAmount = DefaultUpdateAmount
	}
	if cfg.Network == nil {
		cfg.Network = network.BitcoinMainnet
	}
	if obs == nil {
		obs = ObserverFuncs{}
	}
	return &Worker{cfg: cfg, pool: p, provider: provider, obs: obs}
}

func (w *Worker) ID() int                { return w.cfg.ID }
func (w *Worker) State() State           { return State(w.state.Load()) }
func (w *Worker) TotalGenerated() uint64 { return w.total.Load() }

// Run searches until ctx is cancelled, the pool is empty, or the provider or
// observer fails. Cancellation is checked once per candidate. Exactly one
// OnWorkerDone is emitted; its error, if any, is joined to the returned one.
func (w *Worker) Run(ctx context.Context) (Report, error) {
	if !w.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return Report{WorkerID: w.cfg.ID, TotalGenerated: w.total.Load(), State: w.State()}, ErrWorkerStarted
	}

	release := w.cfg.Hint.apply(w.cfg.ID)
	defer release()

	state, err := w.loop(ctx)
	rep := Report{
		WorkerID:       w.cfg.ID,
		TotalGenerated: w.total.Load(),
		State:          state,
		Err:            err,
	}
	w.state.Store(int32(state))

	if derr := w.obs.OnWorkerDone(rep); derr != nil {
		err = errors.Join(err, &ObserverError{WorkerID: w.cfg.ID, Op: "done", Err: derr})
		rep.State = StateFailed
		rep.Err = err
		w.state.Store(int32(StateFailed))
	}
	logx.S().Debugw("worker stopped",
		"worker", w.cfg.ID,
		"state", rep.State.String(),
		"generated", rep.TotalGenerated,
	)
	return rep, err
}

func (w *Worker) loop(ctx context.Context) (State, error) {
	var total uint64
	for {
		if ctx.Err() != nil {
			return StateCancelled, nil
		}
		if w.pool.IsEmpty() {
			return StateCompleted, nil
		}

		c, err := w.provider.Next()
		if err != nil {
			return StateFailed, &ProviderError{WorkerID: w.cfg.ID, Err: err}
		}
		if err := w.test(c, total+1); err != nil {
			return StateFailed, err
		}

		total++
		w.total.Store(total)

		if total%w.cfg.UpdateAmount == 0 {
			p := Progress{WorkerID: w.cfg.ID, TotalGenerated: total, BurstSize: w.cfg.UpdateAmount}
			if err := w.obs.OnProgress(p); err != nil {
				return StateFailed, &ObserverError{WorkerID: w.cfg.ID, Op: "progress", Err: err}
			}
		}
	}
}

// test checks c against a snapshot of the pool. A single-shot hit ends the
// pass whether or not this worker won the removal; other hits let the pass
// continue.
func (w *Worker) test(c keys.Candidate, attempt uint64) error {
	for _, q := range w.pool.Snapshot() {
		hit, ok := q.Match(c, w.cfg.Network)
		if !ok {
			continue
		}
		m := Match{
			WorkerID:   w.cfg.ID,
			Query:      q,
			Candidate:  c,
			Address:    hit.Address,
			Network:    hit.Encoding.Network,
			Compressed: hit.Encoding.Compressed,
			Attempt:    attempt,
		}
		if hit.SingleShot {
			if w.pool.TryRemoveHit(q, hit) {
				return w.report(m)
			}
			return nil
		}
		if err := w.report(m); err != nil {
			return err
		}
	}
	return nil
}

func (w *Worker) report(m Match) error {
	if err := w.obs.OnMatch(m); err != nil {
		return &ObserverError{WorkerID: w.cfg.ID, Op: "match", Err: err}
	}
	return nil
}
