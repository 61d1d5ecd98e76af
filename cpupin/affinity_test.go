// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cpupin

import (
	"runtime"
	"testing"
)

func TestPinReturnsWorkingUnpin(t *testing.T) {
	unpin, err := Pin(0)
	if err != nil {
		t.Skipf("Pin(0) unavailable in this environment: %v", err)
	}
	if unpin == nil {
		t.Fatalf("Pin returned a nil unpin function")
	}
	unpin()
}

func TestPinRejectsNothingForCPUZero(t *testing.T) {
	// CPU 0 exists on every machine that can run this test.
	if runtime.NumCPU() < 1 {
		t.Skip("no CPUs reported")
	}
	unpin, err := Pin(0)
	if err != nil {
		t.Skipf("sched_setaffinity unavailable: %v", err)
	}
	defer unpin()
}
