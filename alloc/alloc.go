// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package alloc provides the arena allocators the queue's embedding is
// expected to supply: a bump-pointer region of shared memory the ring
// and shared-tail line are carved out of, plus a self-test that proves
// the region round-trips a write through a cache flush.
package alloc

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	"fabricmem.dev/cxlq/internal/mem"
)

// ErrExhausted is returned when an arena has no room left for a request.
var ErrExhausted = errors.New("alloc: arena exhausted")

const (
	// DefaultDaxOffset is the byte offset used by the reference CLI
	// tools when no offset is given: 81 GiB in, clear of any partition
	// table or filesystem the device might also carry.
	DefaultDaxOffset = 81 * 1024 * 1024 * 1024
	// DefaultDaxLength is the default arena size mapped from the DAX
	// device.
	DefaultDaxLength = 1024 * 1024 * 1024
)

// Allocator is the capability object every arena implementation
// satisfies. There is no inheritance hierarchy: device-backed and
// NUMA-local arenas are two constructors returning the same interface.
type Allocator interface {
	// AllocateAligned reserves bytes with the given alignment (a power
	// of two) from the arena and returns a pointer to it. It returns
	// ErrExhausted if the request does not fit in the remaining space.
	AllocateAligned(bytes uintptr, alignment uintptr) (unsafe.Pointer, error)

	// TestMemory performs a write-flush-read-back round trip on the
	// first 64 bytes of the arena and reports whether the bytes read
	// back match what was written.
	TestMemory() bool

	// Used, Remaining and Capacity report the bump-pointer cursor state
	// in bytes.
	Used() uintptr
	Remaining() uintptr
	Capacity() uintptr

	// Close releases the underlying mapping or allocation.
	Close() error
}

// bumpPtr is a bump-pointer cursor over a fixed region [base,
// base+length), guarded by a mutex so concurrent allocations are safe.
// Every Allocator implementation embeds one.
type bumpPtr struct {
	mu     sync.Mutex
	base   uintptr
	end    uintptr
	cur    uintptr
	base64 bool
}

func newBumpPtr(base unsafe.Pointer, length uintptr) *bumpPtr {
	b := uintptr(base)
	return &bumpPtr{
		base:   b,
		end:    b + length,
		cur:    b,
		base64: b&63 == 0,
	}
}

func (b *bumpPtr) alloc(bytes, align uintptr) (unsafe.Pointer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	aligned := (b.cur + align - 1) &^ (align - 1)
	if aligned+bytes > b.end {
		return nil, fmt.Errorf("alloc: request of %d bytes (align %d): %w", bytes, align, ErrExhausted)
	}
	b.cur = aligned + bytes
	return unsafe.Pointer(aligned), nil
}

func (b *bumpPtr) used() uintptr {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cur - b.base
}

func (b *bumpPtr) remaining() uintptr {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.end - b.cur
}

func (b *bumpPtr) capacity() uintptr {
	return b.end - b.base
}

// testMemoryAt writes a byte pattern into the first 64 bytes at base
// using the same streaming-store path the queue uses to publish a slot,
// then reads it back through the same invalidate-and-load path a
// consumer uses to observe one, and compares.
func testMemoryAt(base unsafe.Pointer) bool {
	var pattern [64]byte
	for i := range pattern {
		pattern[i] = byte(i)
	}
	mem.PublishLine(base, unsafe.Pointer(&pattern[0]))

	var verify [64]byte
	mem.ObserveLine(unsafe.Pointer(&verify[0]), base)
	return verify == pattern
}

func logArenaReady(logger *slog.Logger, kind string, base unsafe.Pointer, length uintptr) {
	logger.Info("arena mapped", "kind", kind, "base", fmt.Sprintf("%#x", uintptr(base)), "length", length)
}
