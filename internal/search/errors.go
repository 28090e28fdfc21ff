package search

import (
	"errors"
	"fmt"
)

var (
	ErrWorkerStarted = errors.New("worker already started")
	ErrStarted       = errors.New("coordinator already started")
	ErrNotStarted    = errors.New("coordinator not started")
)

// ProviderError is a key provider failure. It is fatal to the worker that hit
// it and never retried.
type ProviderError struct {
	WorkerID int
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("worker %d: key provider: %v", e.WorkerID, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// ObserverError is an error returned by an observer callback. It stops the
// worker that made the call.
type ObserverError struct {
	WorkerID int
	Op       string // match|progress|done
	Err      error
}

func (e *ObserverError) Error() string {
	return fmt.Sprintf("worker %d: observer %s: %v", e.WorkerID, e.Op, e.Err)
}

func (e *ObserverError) Unwrap() error { return e.Err }
