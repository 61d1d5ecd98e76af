// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cxlq

import (
	"errors"

	"code.hybscloud.com/iox"
)

// Fatal construction- and startup-time errors.
//
// These are distinct from the transient "try again" signal Enqueue/Dequeue
// return as a plain bool: a fatal error means the queue or its backing
// arena can never become usable and the embedding should abort with a
// diagnostic rather than retry.
var (
	// ErrMisaligned is returned when the ring or shared-tail pointer
	// handed to New is not 64-byte aligned, or order is below minOrder.
	ErrMisaligned = errors.New("cxlq: ring or shared-tail pointer is not 64-byte aligned, or order too small")

	// ErrAllocationFailure classifies a fatal startup failure to obtain
	// arena space. alloc.Allocator implementations return their own
	// concrete errors (e.g. alloc.ErrExhausted) from AllocateAligned; an
	// embedding that treats allocation failure as fatal wraps that error
	// with %w around ErrAllocationFailure so errors.Is/IsFatal still
	// classify it correctly. See cmd/ping-pong and cmd/throughput.
	ErrAllocationFailure = errors.New("cxlq: allocator exhausted or unavailable")

	// ErrSelfTestFailed classifies a fatal startup failure of an
	// Allocator's TestMemory write-flush-read round trip, meaning the
	// arena is not coherent or not writable. TestMemory itself returns a
	// bool; an embedding surfaces the failure as this error. See
	// cmd/ping-pong and cmd/throughput.
	ErrSelfTestFailed = errors.New("cxlq: arena self-test failed (not coherent or not writable)")
)

// IsWouldBlock reports whether err indicates the operation would block.
// Reused from [code.hybscloud.com/iox] for ecosystem consistency with the
// allocator boundary, which returns ordinary errors (unlike Enqueue/
// Dequeue, which signal backpressure via a plain bool per the protocol).
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsFatal reports whether err is one of the fatal construction/startup
// errors (ErrMisaligned, ErrAllocationFailure, ErrSelfTestFailed) as
// opposed to a semantic, retryable condition.
func IsFatal(err error) bool {
	return errors.Is(err, ErrMisaligned) ||
		errors.Is(err, ErrAllocationFailure) ||
		errors.Is(err, ErrSelfTestFailed)
}
