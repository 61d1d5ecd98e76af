// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package mem provides the four memory-access primitives the shared-memory
// ring protocol is built on, plus a core-local pause.
//
// PublishLine/PublishU64 use a streaming (non-temporal) store path so a
// publication does not linger in the producer's cache and reaches shared
// memory promptly. ObserveLine/ObserveU64 invalidate the local cached copy
// of an address before reading it, so a read is never satisfied from a
// stale local cache line. Each store is followed by a store barrier.
//
// Layout contract: all addresses passed to the 64-byte operations must be
// 64-byte aligned; this is a programmer precondition, not validated here
// (the caller — cxlq.New — asserts it once at construction).
package mem
