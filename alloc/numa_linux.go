// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package alloc

import (
	"fmt"
	"log/slog"
	"unsafe"

	"golang.org/x/sys/unix"
)

const mpolBindNodes = 2 // MPOL_BIND, see linux/mempolicy.h

// NumaAllocator is an arena of anonymous DRAM pinned to a single NUMA
// node via mbind(2). It stands in for CXL memory in single-host testing
// where a real fabric-attached device isn't available: the node-local
// binding still exercises the queue's assumption that the arena has a
// fixed home and does not migrate under it.
type NumaAllocator struct {
	node   int
	length uintptr
	base   unsafe.Pointer
	bp     *bumpPtr
	logger *slog.Logger
}

// OpenNuma allocates length bytes of anonymous memory and binds it to
// node with mbind(MPOL_BIND).
func OpenNuma(node int, length uintptr, logger *slog.Logger) (*NumaAllocator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	data, err := unix.Mmap(-1, 0, int(length), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("alloc: anonymous mmap of %d bytes: %w", length, err)
	}
	base := unsafe.Pointer(&data[0])

	mask := uint64(1) << uint(node)
	_, _, errno := unix.Syscall6(
		unix.SYS_MBIND,
		uintptr(base),
		length,
		uintptr(mpolBindNodes),
		uintptr(unsafe.Pointer(&mask)),
		64, // maxnode: mask holds up to 64 node bits
		0,
	)
	if errno != 0 {
		unix.Munmap(data)
		return nil, fmt.Errorf("alloc: mbind node=%d: %w", node, errno)
	}

	n := &NumaAllocator{
		node:   node,
		length: length,
		base:   base,
		bp:     newBumpPtr(base, length),
		logger: logger,
	}
	logArenaReady(logger, "numa", base, length)
	return n, nil
}

func (n *NumaAllocator) AllocateAligned(bytes, alignment uintptr) (unsafe.Pointer, error) {
	return n.bp.alloc(bytes, alignment)
}

func (n *NumaAllocator) TestMemory() bool {
	ok := testMemoryAt(n.base)
	n.logger.Info("numa arena self-test", "ok", ok, "node", n.node)
	return ok
}

func (n *NumaAllocator) Used() uintptr      { return n.bp.used() }
func (n *NumaAllocator) Remaining() uintptr { return n.bp.remaining() }
func (n *NumaAllocator) Capacity() uintptr  { return n.bp.capacity() }

func (n *NumaAllocator) Close() error {
	slice := unsafe.Slice((*byte)(n.base), n.length)
	return unix.Munmap(slice)
}
