// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cxlq implements a single-producer/single-consumer ring queue
// over shared memory that is cache-coherent but slow to access — the
// operating case is CXL or other fabric-attached memory, whether shared
// between two threads in one process, two processes on one host, or two
// processes on two hosts joined by the fabric.
//
// The queue carries fixed 64-byte Entry slots. There is no generic
// element type: the wire layout is specified byte-for-byte so that two
// independently compiled binaries (potentially on different hosts) agree
// on it without sharing Go type information.
//
// # Quick start
//
//	ring, _ := allocator.AllocateAligned(64*(1<<order), 64)
//	tail, _ := allocator.AllocateAligned(64, 64)
//	q, err := cxlq.New(ring, order, (*uint64)(tail), cxlq.WithOwner(true))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	var e cxlq.Entry
//	e.RequestID = 7
//	for !q.Enqueue(&e) {
//	    // producer backoff already ran inside Enqueue; retry
//	}
//
//	var out cxlq.Entry
//	for !q.Dequeue(&out) {
//	    // consumer backoff already ran inside Dequeue; retry
//	}
//
// # Why not a generic Queue[T]
//
// Ordinary lock-free queues move pointers or small values between
// goroutines inside one address space and can stay generic. This queue's
// payload crosses a coherence domain whose only contract is "64 bytes,
// this byte layout" — there is no Go object identity on the other side,
// so Entry is a concrete struct rather than a type parameter.
//
// # Ordering model
//
// The producer and consumer never synchronize through Go's memory model;
// cross-side visibility is provided entirely by the memory primitives in
// internal/mem (streaming stores with a trailing fence on publish,
// explicit cache-line invalidation on observe) plus the epoch/checksum
// pair stamped into every Entry. Enqueue and Dequeue are both
// non-blocking and total: a call either completes or returns false,
// never partially mutates shared state, and never blocks the OS thread
// beyond the bounded spin inside backoff.pause.
//
// # Race detector caveat
//
// Because cross-side ordering is enforced by cache-control instructions
// rather than atomic loads/stores the Go race detector can see, threaded
// SPSC tests exercising the real handoff are skipped under -race; see
// [RaceEnabled].
//
// # Debug tracing
//
// New's default Config routes a Debug-level trace of every Enqueue and
// Dequeue call's outcome through slog.Default(), silent unless the
// caller's handler is configured for that level. Pass WithLogger(nil) to
// disable it outright, or WithLogger(customLogger) to route it elsewhere.
package cxlq
