// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cxlq

import (
	"time"
	"unsafe"

	"fabricmem.dev/cxlq/internal/mem"
)

// Handshake coordinates two independent processes (potentially on two
// hosts) attaching to the same arena around a shared ring: one side owns
// construction, the other attaches. It is built from three 64-byte
// shared lines in addition to the queue's own shared tail — producer_
// ready, consumer_ready and start_signal — allocated from the arena in
// that fixed order alongside ring and shared_tail.
type Handshake struct {
	producerReady *uint64
	consumerReady *uint64
	startSignal   *uint64
	pollInterval  time.Duration
}

// NewHandshake wraps three 64-byte-aligned shared lines. pollInterval
// controls how often each side re-observes the line it is waiting on;
// it defaults to 1 microsecond if zero or negative.
func NewHandshake(producerReady, consumerReady, startSignal *uint64, pollInterval time.Duration) (*Handshake, error) {
	for _, p := range []*uint64{producerReady, consumerReady, startSignal} {
		if !alignedTo64(unsafe.Pointer(p)) {
			return nil, ErrMisaligned
		}
	}
	if pollInterval <= 0 {
		pollInterval = time.Microsecond
	}
	return &Handshake{
		producerReady: producerReady,
		consumerReady: consumerReady,
		startSignal:   startSignal,
		pollInterval:  pollInterval,
	}, nil
}

func (h *Handshake) waitFor(line *uint64) {
	for mem.ObserveU64(line) == 0 {
		time.Sleep(h.pollInterval)
	}
}

// ProducerSide runs the producer's half of the handshake: zero all three
// ready/start lines (the ring itself is New's job, not this), run
// warmUp, signal producer_ready, wait for consumer_ready, then signal
// start_signal once both sides are ready to begin measurement.
//
// Zeroing first matters on a reused arena — a DAX device file, say —
// where producer_ready/consumer_ready/start_signal can still carry a
// prior run's 1 values; without clearing them here, waitFor would
// observe stale state and the rendezvous would never actually
// synchronize with this run's consumer.
func (h *Handshake) ProducerSide(warmUp func()) {
	mem.PublishU64(h.producerReady, 0)
	mem.PublishU64(h.consumerReady, 0)
	mem.PublishU64(h.startSignal, 0)

	if warmUp != nil {
		warmUp()
	}
	mem.PublishU64(h.producerReady, 1)
	h.waitFor(h.consumerReady)
	mem.PublishU64(h.startSignal, 1)
}

// ConsumerSide runs the consumer's half: wait for producer_ready, signal
// consumer_ready, then wait for start_signal before the caller begins
// timed measurement.
func (h *Handshake) ConsumerSide() {
	h.waitFor(h.producerReady)
	mem.PublishU64(h.consumerReady, 1)
	h.waitFor(h.startSignal)
}
