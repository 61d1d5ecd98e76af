// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build amd64 && !purego

package mem

import "unsafe"

//go:noescape
func publishLine64(dst, src unsafe.Pointer)

//go:noescape
func observeLine64(dst, src unsafe.Pointer)

//go:noescape
func publishU64(dst *uint64, v uint64)

//go:noescape
func observeU64(src *uint64) uint64

//go:noescape
func pauseCycles(n uint32)
