// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mem

import (
	"testing"
	"unsafe"
)

func alignedBuf64(t *testing.T) []byte {
	t.Helper()
	raw := make([]byte, 128)
	off := uintptr(unsafe.Pointer(&raw[0])) & 63
	if off != 0 {
		raw = raw[64-off:]
	}
	return raw[:64:64]
}

func TestPublishObserveLineRoundTrip(t *testing.T) {
	src := alignedBuf64(t)
	dst := alignedBuf64(t)
	for i := range src {
		src[i] = byte(i * 7)
	}

	PublishLine(unsafe.Pointer(&dst[0]), unsafe.Pointer(&src[0]))

	back := alignedBuf64(t)
	ObserveLine(unsafe.Pointer(&back[0]), unsafe.Pointer(&dst[0]))

	for i := range src {
		if back[i] != src[i] {
			t.Fatalf("byte %d: got %d want %d", i, back[i], src[i])
		}
	}
}

func TestPublishObserveU64RoundTrip(t *testing.T) {
	var word uint64
	PublishU64(&word, 0xdeadbeefcafef00d)
	if got := ObserveU64(&word); got != 0xdeadbeefcafef00d {
		t.Fatalf("got %#x want %#x", got, uint64(0xdeadbeefcafef00d))
	}
}

func TestPauseCyclesReturns(t *testing.T) {
	PauseCycles(0)
	PauseCycles(64)
	PauseCycles(4096)
}

func TestPublishLineDoesNotTouchTail(t *testing.T) {
	raw := make([]byte, 136)
	off := uintptr(unsafe.Pointer(&raw[0])) & 63
	if off != 0 {
		raw = raw[64-off:]
	}
	dst := raw[:64:64]
	sentinel := raw[64:72]
	for i := range sentinel {
		sentinel[i] = 0xAB
	}

	src := alignedBuf64(t)
	for i := range src {
		src[i] = 0xff
	}

	PublishLine(unsafe.Pointer(&dst[0]), unsafe.Pointer(&src[0]))
	for i, b := range sentinel {
		if b != 0xAB {
			t.Fatalf("sentinel byte %d clobbered: %#x", i, b)
		}
	}
}
