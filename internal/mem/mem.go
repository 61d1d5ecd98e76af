// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mem

import "unsafe"

// PublishLine copies 64 bytes from src to dst using a store path that
// does not linger in the local cache, then issues a store barrier. Both
// addresses must be 64-byte aligned.
//
//go:nosplit
func PublishLine(dst, src unsafe.Pointer) {
	publishLine64(dst, src)
}

// ObserveLine invalidates any locally cached copy of src, barriers, then
// copies 64 bytes from src into dst. Both addresses must be 64-byte
// aligned. The returned contents are guaranteed not to come from the
// local cache.
//
//go:nosplit
func ObserveLine(dst, src unsafe.Pointer) {
	observeLine64(dst, src)
}

// PublishU64 is the scalar (8-byte) counterpart of PublishLine.
//
//go:nosplit
func PublishU64(dst *uint64, v uint64) {
	publishU64(dst, v)
}

// ObserveU64 is the scalar (8-byte) counterpart of ObserveLine.
//
//go:nosplit
func ObserveU64(src *uint64) uint64 {
	return observeU64(src)
}

// PauseCycles spins on the current core for n iterations of a spin-wait
// hint (PAUSE on amd64, YIELD on arm64) without issuing any load or store
// to memory. Each hint costs a microarchitecture-dependent number of
// cycles, so the wait grows with n but is not calibrated to n cycles. The
// generic build runs an n-iteration counting loop instead, yielding the
// goroutine every 1024 iterations and storing its result to a package
// variable once at the end. Used exclusively by backoff schedules between
// failed probes.
//
//go:nosplit
func PauseCycles(n uint32) {
	pauseCycles(n)
}
