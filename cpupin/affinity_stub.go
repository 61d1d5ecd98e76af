// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !linux

package cpupin

import "runtime"

// Pin locks the calling goroutine to its OS thread but cannot set core
// affinity outside Linux; the returned unpin function still exists for
// API parity with the Linux build.
func Pin(cpu int) (unpin func(), err error) {
	runtime.LockOSThread()
	return runtime.UnlockOSThread, nil
}
