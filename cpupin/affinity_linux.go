// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

// Package cpupin pins the calling OS thread to a single CPU core. Both
// the producer and consumer sides of the queue are meant to run as
// strictly single-threaded roles on distinct cores; letting the
// scheduler migrate either one between calls reintroduces the cache
// effects the whole protocol exists to avoid.
package cpupin

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"
)

// Pin locks the calling goroutine to the current OS thread with
// runtime.LockOSThread and sets that thread's CPU affinity mask to the
// single core cpu. The caller must not call runtime.UnlockOSThread
// itself; the returned unpin function does that in the right order.
func Pin(cpu int) (unpin func(), err error) {
	runtime.LockOSThread()

	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("cpupin: sched_setaffinity(cpu=%d): %w", cpu, err)
	}
	return runtime.UnlockOSThread, nil
}
