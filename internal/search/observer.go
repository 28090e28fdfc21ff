package search

import (
	"VanityGen/internal/keys"
	"VanityGen/internal/network"
	"VanityGen/internal/query"
)

// Match is delivered once per reported hit.
type Match struct {
	WorkerID  int
	Query     *query.Query
	Candidate keys.Candidate
	Address   string
	Network   *network.Network
	// Compressed is the key encoding the query asked for.
	Compressed bool
	// Attempt is the worker-local index of the matching candidate.
	Attempt uint64
}

// Progress is emitted by each worker every UpdateAmount candidates.
type Progress struct {
	WorkerID       int
	TotalGenerated uint64
	BurstSize      uint64
}

// Report is a worker's terminal report.
type Report struct {
	WorkerID       int
	TotalGenerated uint64
	State          State
	Err            error
}

// Observer receives search events. Its methods are called concurrently from
// every worker goroutine and must be safe for that. A returned error stops
// the calling worker.
type Observer interface {
	OnMatch(m Match) error
	OnProgress(p Progress) error
	// OnWorkerDone is called exactly once per worker, so a multi-worker run
	// delivers several completions.
	OnWorkerDone(r Report) error
}

// ObserverFuncs adapts optional callbacks to Observer.
type ObserverFuncs struct {
	Match    func(Match) error
	Progress func(Progress) error
	Done     func(Report) error
}

func (f ObserverFuncs) OnMatch(m Match) error {
	if f.Match == nil {
		return nil
	}
	return f.Match(m)
}

func (f ObserverFuncs) OnProgress(p Progress) error {
	if f.Progress == nil {
		return nil
	}
	return f.Progress(p)
}

func (f ObserverFuncs) OnWorkerDone(r Report) error {
	if f.Done == nil {
		return nil
	}
	return f.Done(r)
}

// MultiObserver forwards every event to each observer in order and stops at
// the first error.
type MultiObserver []Observer

func (m MultiObserver) OnMatch(ev Match) error {
	for _, o := range m {
		if err := o.OnMatch(ev); err != nil {
			return err
		}
	}
	return nil
}

func (m MultiObserver) OnProgress(p Progress) error {
	for _, o := range m {
		if err := o.OnProgress(p); err != nil {
			return err
		}
	}
	return nil
}

func (m MultiObserver) OnWorkerDone(r Report) error {
	for _, o := range m {
		if err := o.OnWorkerDone(r); err != nil {
			return err
		}
	}
	return nil
}
