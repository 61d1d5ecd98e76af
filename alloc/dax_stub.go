// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !linux

package alloc

import (
	"errors"
	"log/slog"
	"unsafe"
)

// ErrUnsupportedPlatform is returned by OpenDax and OpenNuma on
// platforms other than Linux, where MAP_SYNC and mbind(2) don't exist.
var ErrUnsupportedPlatform = errors.New("alloc: DAX/NUMA arenas require linux")

// DaxAllocator is an empty placeholder on non-Linux platforms:
// AllocateAligned and Close return ErrUnsupportedPlatform, TestMemory
// reports false, and Used, Remaining and Capacity report zero.
type DaxAllocator struct{}

// OpenDax is unavailable outside Linux.
func OpenDax(path string, offset int64, length uintptr, logger *slog.Logger) (*DaxAllocator, error) {
	return nil, ErrUnsupportedPlatform
}

func (*DaxAllocator) AllocateAligned(bytes, alignment uintptr) (unsafe.Pointer, error) {
	return nil, ErrUnsupportedPlatform
}
func (*DaxAllocator) TestMemory() bool   { return false }
func (*DaxAllocator) Used() uintptr      { return 0 }
func (*DaxAllocator) Remaining() uintptr { return 0 }
func (*DaxAllocator) Capacity() uintptr  { return 0 }
func (*DaxAllocator) Close() error       { return ErrUnsupportedPlatform }
