//go:build !linux

package search

import (
	"runtime"

	"VanityGen/pkg/logx"
)

func (h SpawnHint) apply(workerID int) (release func()) {
	if h.zero() {
		return func() {}
	}
	if h.Nice != 0 {
		logx.S().Debugw("thread priority hint unsupported on this platform", "worker", workerID, "os", runtime.GOOS)
	}
	runtime.LockOSThread()
	return runtime.UnlockOSThread
}
