// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cxlq

import "fabricmem.dev/cxlq/internal/mem"

const maxBackoffWait = 16384

const (
	minWaitProducerFull     = 128
	minWaitConsumerEmpty    = 50
	minWaitConsumerChecksum = 100
)

// backoff implements one of the three independent adaptive exponential
// backoff schedules driving the queue: producer-full, consumer-empty and
// consumer-checksum each run their own instance with a distinct minWait.
type backoff struct {
	minWait     uint32
	currentWait uint32
	events      *atomixCounter
	cycles      *atomixCounter
}

func newBackoff(minWait uint32, events, cycles *atomixCounter) *backoff {
	return &backoff{minWait: minWait, currentWait: minWait, events: events, cycles: cycles}
}

// pause calls mem.PauseCycles(currentWait), records the event and
// currentWait as the cycle count, then doubles currentWait up to
// maxBackoffWait.
func (b *backoff) pause() {
	mem.PauseCycles(b.currentWait)
	b.events.add(1)
	b.cycles.add(uint64(b.currentWait))
	next := b.currentWait * 2
	if next > maxBackoffWait || next < b.currentWait {
		next = maxBackoffWait
	}
	b.currentWait = next
}

// reset returns the schedule to its minimum wait, called whenever the
// site that owns this schedule makes forward progress.
func (b *backoff) reset() {
	b.currentWait = b.minWait
}
