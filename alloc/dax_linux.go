// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package alloc

import (
	"fmt"
	"log/slog"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// DaxAllocator is an arena backed by a memory-mapped slice of a
// device-DAX or fsdax file (e.g. /dev/dax1.0, or a file on a DAX-mounted
// filesystem), mapped with MAP_SYNC so that stores reach the backing
// device's persistence domain directly. It provides the cross-host
// shared memory the queue's two-process bootstrapping mode rendezvouses
// through.
type DaxAllocator struct {
	path   string
	offset int64
	length uintptr
	fd     int
	base   unsafe.Pointer
	bp     *bumpPtr
	logger *slog.Logger
}

// OpenDax opens path (which must already exist and be at least
// offset+length bytes) and maps [offset, offset+length) with
// PROT_READ|PROT_WRITE and MAP_SHARED_VALIDATE|MAP_SYNC.
func OpenDax(path string, offset int64, length uintptr, logger *slog.Logger) (*DaxAllocator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_SYNC, 0)
	if err != nil {
		return nil, fmt.Errorf("alloc: open %s: %w", path, err)
	}

	pageSize := int64(os.Getpagesize())
	if offset%pageSize != 0 {
		unix.Close(fd)
		return nil, fmt.Errorf("alloc: offset %d is not page-aligned (page size %d)", offset, pageSize)
	}

	data, err := unix.Mmap(fd, offset, int(length), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED_VALIDATE|unix.MAP_SYNC)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("alloc: mmap %s offset=%d length=%d: %w", path, offset, length, err)
	}

	base := unsafe.Pointer(&data[0])
	if err := unix.Madvise(data, unix.MADV_DONTFORK); err != nil {
		logger.Warn("madvise(MADV_DONTFORK) failed, continuing", "err", err)
	}

	d := &DaxAllocator{
		path:   path,
		offset: offset,
		length: length,
		fd:     fd,
		base:   base,
		bp:     newBumpPtr(base, length),
		logger: logger,
	}
	logArenaReady(logger, "dax", base, length)
	return d, nil
}

func (d *DaxAllocator) AllocateAligned(bytes, alignment uintptr) (unsafe.Pointer, error) {
	return d.bp.alloc(bytes, alignment)
}

func (d *DaxAllocator) TestMemory() bool {
	ok := testMemoryAt(d.base)
	d.logger.Info("dax arena self-test", "ok", ok)
	return ok
}

func (d *DaxAllocator) Used() uintptr      { return d.bp.used() }
func (d *DaxAllocator) Remaining() uintptr { return d.bp.remaining() }
func (d *DaxAllocator) Capacity() uintptr  { return d.bp.capacity() }

func (d *DaxAllocator) Close() error {
	slice := unsafe.Slice((*byte)(d.base), d.length)
	if err := unix.Munmap(slice); err != nil {
		unix.Close(d.fd)
		return fmt.Errorf("alloc: munmap %s: %w", d.path, err)
	}
	return unix.Close(d.fd)
}

// BaseAligned reports whether the mapping's base address happens to be
// 64-byte aligned. mmap on Linux always returns page-aligned addresses,
// so this is true in practice, but callers relying on it for correctness
// should use AllocateAligned instead.
func (d *DaxAllocator) BaseAligned() bool {
	return d.bp.base64
}
