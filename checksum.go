// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cxlq

import "unsafe"

// xorFold64 XOR-folds the eight 64-bit words of a 64-byte-aligned line
// down to 16 bits: the 64-bit accumulator is folded to 32 bits, then to
// 16.
//
//go:nosplit
func xorFold64(p unsafe.Pointer) uint16 {
	words := (*[8]uint64)(p)
	var acc uint64
	for _, w := range words {
		acc ^= w
	}
	acc = (acc >> 32) ^ (acc & 0xFFFFFFFF)
	acc = (acc >> 16) ^ (acc & 0xFFFF)
	return uint16(acc)
}

// stampChecksum zeroes e.Checksum and sets it to the whole-line XOR fold.
func stampChecksum(e *Entry) {
	e.Checksum = 0
	e.Checksum = xorFold64(unsafe.Pointer(e))
}

// verifyChecksum reports whether e's 64 bytes fold to zero.
func verifyChecksum(e *Entry) bool {
	return xorFold64(unsafe.Pointer(e)) == 0
}

// expectedEpoch computes ((seq >> order) + 1) mod 256 for the absolute
// producer/consumer sequence number seq.
func expectedEpoch(seq uint64, order uint32) uint8 {
	return uint8((seq >> order) + 1)
}
