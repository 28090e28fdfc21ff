//go:build linux

package search

import (
	"runtime"

	"golang.org/x/sys/unix"

	"VanityGen/pkg/logx"
)

func (h SpawnHint) apply(workerID int) (release func()) {
	if h.zero() {
		return func() {}
	}
	runtime.LockOSThread()
	if h.Nice == 0 {
		return runtime.UnlockOSThread
	}
	if err := unix.Setpriority(unix.PRIO_PROCESS, unix.Gettid(), h.Nice); err != nil {
		logx.S().Warnw("set worker priority failed", "worker", workerID, "nice", h.Nice, "err", err)
		return runtime.UnlockOSThread
	}
	// Leave the thread locked: the runtime terminates it with the goroutine
	// instead of reusing a deprioritized thread.
	return func() {}
}
