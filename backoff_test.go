// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cxlq

import "testing"

func TestBackoffDoublesUntilCap(t *testing.T) {
	var events, cycles atomixCounter
	b := newBackoff(128, &events, &cycles)

	want := uint32(128)
	for i := 0; i < 10; i++ {
		if b.currentWait != want {
			t.Fatalf("iteration %d: currentWait = %d want %d", i, b.currentWait, want)
		}
		b.pause()
		if want < maxBackoffWait {
			want *= 2
			if want > maxBackoffWait {
				want = maxBackoffWait
			}
		}
	}
	if b.currentWait != maxBackoffWait {
		t.Fatalf("backoff did not saturate at max_wait: got %d", b.currentWait)
	}
}

func TestBackoffResetReturnsToMinWait(t *testing.T) {
	var events, cycles atomixCounter
	b := newBackoff(50, &events, &cycles)
	b.pause()
	b.pause()
	b.pause()
	if b.currentWait == 50 {
		t.Fatalf("currentWait should have grown past min_wait after three pauses")
	}
	b.reset()
	if b.currentWait != 50 {
		t.Fatalf("reset did not restore min_wait: got %d", b.currentWait)
	}
}

func TestBackoffCountersAccumulate(t *testing.T) {
	var events, cycles atomixCounter
	b := newBackoff(100, &events, &cycles)
	b.pause()
	b.pause()
	if events.load() != 2 {
		t.Fatalf("events = %d want 2", events.load())
	}
	if cycles.load() != 100+200 {
		t.Fatalf("cycles = %d want %d", cycles.load(), 300)
	}
}
