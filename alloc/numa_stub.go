// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !linux

package alloc

import (
	"log/slog"
	"unsafe"
)

// NumaAllocator is an empty placeholder on non-Linux platforms:
// AllocateAligned and Close return ErrUnsupportedPlatform, TestMemory
// reports false, and Used, Remaining and Capacity report zero.
type NumaAllocator struct{}

// OpenNuma is unavailable outside Linux.
func OpenNuma(node int, length uintptr, logger *slog.Logger) (*NumaAllocator, error) {
	return nil, ErrUnsupportedPlatform
}

func (*NumaAllocator) AllocateAligned(bytes, alignment uintptr) (unsafe.Pointer, error) {
	return nil, ErrUnsupportedPlatform
}
func (*NumaAllocator) TestMemory() bool   { return false }
func (*NumaAllocator) Used() uintptr      { return 0 }
func (*NumaAllocator) Remaining() uintptr { return 0 }
func (*NumaAllocator) Capacity() uintptr  { return 0 }
func (*NumaAllocator) Close() error       { return ErrUnsupportedPlatform }
