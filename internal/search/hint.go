package search

// SpawnHint carries optional scheduling preferences applied by a worker
// goroutine as it starts.
type SpawnHint struct {
	// LockOSThread pins the worker goroutine to its own OS thread.
	LockOSThread bool
	// Nice lowers the thread's scheduling priority (Linux only). Implies
	// LockOSThread; the thread is discarded when the worker exits.
	Nice int
}

func (h SpawnHint) zero() bool {
	return !h.LockOSThread && h.Nice == 0
}
