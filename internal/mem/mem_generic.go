// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build (!amd64 && !arm64) || purego

package mem

import (
	"runtime"
	"sync/atomic"
	"unsafe"
)

// This build has no architecture-specific cache-control or non-temporal
// store instructions wired in, so publish and observe degrade to plain
// loads and stores ordered by the Go memory model's atomic operations.
// Correctness on true CXL-class fabric memory is not guaranteed here;
// this path exists so the package builds and its tests run on any GOARCH,
// not as a production target.

func publishLine64(dst, src unsafe.Pointer) {
	d := (*[8]uint64)(dst)
	s := (*[8]uint64)(src)
	for i := 0; i < 8; i++ {
		atomic.StoreUint64(&d[i], atomic.LoadUint64(&s[i]))
	}
}

func observeLine64(dst, src unsafe.Pointer) {
	d := (*[8]uint64)(dst)
	s := (*[8]uint64)(src)
	for i := 0; i < 8; i++ {
		atomic.StoreUint64(&d[i], atomic.LoadUint64(&s[i]))
	}
}

func publishU64(dst *uint64, v uint64) {
	atomic.StoreUint64(dst, v)
}

func observeU64(src *uint64) uint64 {
	return atomic.LoadUint64(src)
}

func pauseCycles(n uint32) {
	var x uint64
	for i := uint32(0); i < n; i++ {
		x += uint64(i)
		if i&1023 == 0 {
			runtime.Gosched()
		}
	}
	atomic.StoreUint64(&sink, x)
}

var sink uint64
