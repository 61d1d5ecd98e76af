// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cxlq

import (
	"log/slog"
	"unsafe"

	"fabricmem.dev/cxlq/internal/mem"
)

// Queue is a single-producer/single-consumer ring of fixed 64-byte Entry
// slots over memory the caller has allocated — typically CXL or other
// fabric-attached shared memory, but any 64-byte-aligned region works.
// The producer and consumer sides must each be driven from exactly one
// goroutine or OS thread for the lifetime of the queue; Queue performs
// no internal locking and none is needed if that discipline holds.
type Queue struct {
	ring       unsafe.Pointer
	sharedTail *uint64
	order      uint32
	capacity   uint64
	mask       uint64
	flushEvery uint64
	logger     *slog.Logger

	_ pad

	head        uint64
	shadowTail  uint64
	fullBackoff *backoff

	_ pad

	tail         uint64
	emptyBackoff *backoff
	tornBackoff  *backoff

	metrics Metrics
}

// New constructs a Queue over an externally allocated ring of
// 2^order Entry slots and a separately allocated 64-byte shared-tail
// line. Both pointers must already be 64-byte aligned; ring must point
// to at least 2^order * 64 bytes the caller owns for the queue's
// lifetime.
//
// When cfg.Owner is true (the default), New zeroes the entire ring and
// publishes a zero shared tail before returning — this process is
// initialising a fresh arena. A second process attaching to the same
// arena in cross-host mode sets Owner to false and trusts the state the
// owner already wrote.
func New(ring unsafe.Pointer, order uint32, sharedTail *uint64, opts ...Option) (*Queue, error) {
	cfg := DefaultConfig(order)
	for _, opt := range opts {
		opt(&cfg)
	}
	if !validOrder(cfg.Order) {
		return nil, ErrMisaligned
	}
	if !alignedTo64(ring) || !alignedTo64(unsafe.Pointer(sharedTail)) {
		return nil, ErrMisaligned
	}

	capacity := uint64(1) << cfg.Order
	q := &Queue{
		ring:       ring,
		sharedTail: sharedTail,
		order:      cfg.Order,
		capacity:   capacity,
		mask:       capacity - 1,
		flushEvery: maxU64(1, capacity/4),
		logger:     cfg.Logger,
	}
	q.fullBackoff = newBackoff(cfg.MinWaitFull, &q.metrics.ProducerBackoffEvents, &q.metrics.ProducerBackoffCycles)
	q.emptyBackoff = newBackoff(cfg.MinWaitIdle, &q.metrics.ConsumerBackoffEvents, &q.metrics.ConsumerBackoffCycles)
	q.tornBackoff = newBackoff(cfg.MinWaitTorn, &q.metrics.ConsumerBackoffEvents, &q.metrics.ConsumerBackoffCycles)

	if cfg.Owner {
		var zero Entry
		for i := uint64(0); i < capacity; i++ {
			*(*Entry)(q.slot(i)) = zero
		}
		mem.PublishU64(sharedTail, 0)
	}
	return q, nil
}

func maxU64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

func (q *Queue) slot(idx uint64) unsafe.Pointer {
	return unsafe.Add(q.ring, uintptr(idx&q.mask)*EntrySize)
}

// debug emits a per-call trace line if the queue was constructed with a
// non-nil logger. Callers pass their arguments unconditionally; slog
// itself skips formatting when the handler's level excludes Debug.
func (q *Queue) debug(msg string, args ...any) {
	if q.logger != nil {
		q.logger.Debug(msg, args...)
	}
}

// Cap returns the number of Entry slots the ring holds.
func (q *Queue) Cap() uint64 {
	return q.capacity
}

// Metrics returns the queue's live counters. The returned pointer is
// valid for the lifetime of the Queue and safe to read concurrently
// with Enqueue/Dequeue.
func (q *Queue) Metrics() *Metrics {
	return &q.metrics
}

// Enqueue stamps entry's epoch and checksum fields and publishes it into
// the next slot, returning false without mutating shared state if the
// ring is full. Must only be called from the single producer. Traces its
// outcome at Debug level through the logger set by WithLogger.
func (q *Queue) Enqueue(entry *Entry) bool {
	q.metrics.EnqueueCalls.add(1)

	head := q.head
	if head-q.shadowTail >= q.capacity {
		q.shadowTail = mem.ObserveU64(q.sharedTail)
		q.metrics.SharedTailReads.add(1)
		if head-q.shadowTail >= q.capacity {
			q.metrics.QueueFullEvents.add(1)
			q.debug("enqueue: ring full", "head", head, "shadow_tail", q.shadowTail)
			q.fullBackoff.pause()
			return false
		}
	}
	q.fullBackoff.reset()

	entry.Epoch = expectedEpoch(head, q.order)
	stampChecksum(entry)

	mem.PublishLine(q.slot(head), unsafe.Pointer(entry))
	q.head = head + 1
	q.debug("enqueue: published", "head", head, "epoch", entry.Epoch, "request_id", entry.RequestID)
	return true
}

// Dequeue observes the next slot into out, returning false without
// advancing the tail if no new item has arrived (epoch mismatch) or if
// the observed line is a torn read (checksum mismatch — the producer's
// publication is in flight). Must only be called from the single
// consumer. Traces its outcome at Debug level through the logger set by
// WithLogger.
func (q *Queue) Dequeue(out *Entry) bool {
	q.metrics.DequeueCalls.add(1)

	tail := q.tail
	mem.ObserveLine(unsafe.Pointer(out), q.slot(tail))

	if out.Epoch != expectedEpoch(tail, q.order) {
		q.metrics.NoNewItemPolls.add(1)
		q.debug("dequeue: no new item", "tail", tail, "epoch", out.Epoch)
		q.emptyBackoff.pause()
		return false
	}
	if !verifyChecksum(out) {
		q.metrics.ChecksumFailures.add(1)
		q.debug("dequeue: torn read", "tail", tail)
		q.tornBackoff.pause()
		return false
	}

	q.emptyBackoff.reset()
	q.tornBackoff.reset()

	tail++
	q.tail = tail
	if tail%q.flushEvery == 0 {
		mem.PublishU64(q.sharedTail, tail)
		q.metrics.TailFlushes.add(1)
		q.debug("dequeue: tail flushed", "tail", tail)
	}
	q.debug("dequeue: observed", "tail", tail-1, "request_id", out.RequestID)
	return true
}
