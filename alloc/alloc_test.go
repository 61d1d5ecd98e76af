// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package alloc

import (
	"errors"
	"testing"
	"unsafe"
)

func alignedBuf(t *testing.T, n int) []byte {
	t.Helper()
	raw := make([]byte, n+63)
	off := uintptr(unsafe.Pointer(&raw[0])) & 63
	if off != 0 {
		raw = raw[64-off:]
	}
	return raw[:n:n]
}

func TestBumpPtrAllocatesWithAlignment(t *testing.T) {
	buf := alignedBuf(t, 4096)
	bp := newBumpPtr(unsafe.Pointer(&buf[0]), uintptr(len(buf)))

	p1, err := bp.alloc(8, 1)
	if err != nil {
		t.Fatalf("alloc(8,1): %v", err)
	}
	p2, err := bp.alloc(64, 64)
	if err != nil {
		t.Fatalf("alloc(64,64): %v", err)
	}
	if uintptr(p2)&63 != 0 {
		t.Fatalf("64-byte aligned allocation returned unaligned pointer %#x", uintptr(p2))
	}
	if uintptr(p2) <= uintptr(p1) {
		t.Fatalf("bump pointer must advance monotonically")
	}
}

func TestBumpPtrExhaustionReturnsErrExhausted(t *testing.T) {
	buf := alignedBuf(t, 64)
	bp := newBumpPtr(unsafe.Pointer(&buf[0]), uintptr(len(buf)))

	if _, err := bp.alloc(64, 1); err != nil {
		t.Fatalf("first allocation of the whole arena should succeed: %v", err)
	}
	if _, err := bp.alloc(1, 1); !errors.Is(err, ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}
}

func TestBumpPtrUsedRemainingCapacity(t *testing.T) {
	buf := alignedBuf(t, 256)
	bp := newBumpPtr(unsafe.Pointer(&buf[0]), uintptr(len(buf)))

	if bp.capacity() != 256 {
		t.Fatalf("capacity = %d want 256", bp.capacity())
	}
	if _, err := bp.alloc(100, 1); err != nil {
		t.Fatalf("alloc: %v", err)
	}
	if bp.used() != 100 {
		t.Fatalf("used = %d want 100", bp.used())
	}
	if bp.remaining() != 156 {
		t.Fatalf("remaining = %d want 156", bp.remaining())
	}
}

func TestTestMemoryAtRoundTrips(t *testing.T) {
	buf := alignedBuf(t, 64)
	if !testMemoryAt(unsafe.Pointer(&buf[0])) {
		t.Fatalf("write-flush-read-back self-test failed on a plain writable buffer")
	}
}
