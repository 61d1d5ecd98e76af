// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package cxlq

// RaceEnabled is true when the race detector is active.
// Used by tests to skip the threaded SPSC scenarios: the unsafe-pointer
// publish/observe path has no instrumented synchronization edge, so the
// race detector reports false positives on otherwise-correct handoffs.
const RaceEnabled = true
