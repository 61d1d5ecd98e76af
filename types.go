// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cxlq

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// EntrySize is the fixed, wire-stable size of a queue slot.
const EntrySize = 64

// PayloadSize is the portion of an Entry available to the caller.
const PayloadSize = 56

// Entry is one 64-byte, 64-byte-aligned ring slot.
//
// Layout (little-endian, byte offsets):
//
//	0x00..0x37  Payload   (56 B, opaque)
//	0x38        Epoch     (u8)
//	0x39        Method    (u8)
//	0x3A..0x3B  RequestID (u16)
//	0x3C..0x3D  AuxIndex  (i16)
//	0x3E..0x3F  Checksum  (u16)
//
// A valid Entry's 64 bytes XOR-fold (see checksum.go) to zero. The struct
// must stay at exactly 64 bytes: anything wider no longer maps to one
// cache line and breaks the torn-read detection the whole protocol rests
// on — init() asserts this at package load.
type Entry struct {
	Payload   [PayloadSize]byte
	Epoch     uint8
	Method    uint8
	RequestID uint16
	AuxIndex  int16
	Checksum  uint16
}

func init() {
	if unsafe.Sizeof(Entry{}) != EntrySize {
		panic("cxlq: Entry must be exactly 64 bytes")
	}
}

// pad keeps producer-local and consumer-local fields off each other's
// cache line when a single process hosts both roles (e.g. the ping-pong
// reference tool).
type pad = cpu.CacheLinePad

// minOrder is the smallest ring order the protocol allows. An order of
// zero would make capacity and shadow_tail arithmetic degenerate (a
// one-slot ring can never distinguish "full" from "empty" through the
// head/tail difference), so one slot of headroom is the floor.
const minOrder = 1

// validOrder reports whether order is a legal ring order.
func validOrder(order uint32) bool {
	return order >= minOrder
}

// alignedTo64 reports whether p is 64-byte aligned.
func alignedTo64(p unsafe.Pointer) bool {
	return uintptr(p)&63 == 0
}
