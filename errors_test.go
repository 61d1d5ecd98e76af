// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cxlq

import (
	"errors"
	"fmt"
	"testing"

	"fabricmem.dev/cxlq/alloc"
)

func TestIsFatalClassifiesConstructionErrors(t *testing.T) {
	for _, err := range []error{ErrMisaligned, ErrAllocationFailure, ErrSelfTestFailed} {
		if !IsFatal(err) {
			t.Fatalf("%v should be classified fatal", err)
		}
	}
	if IsFatal(errors.New("some unrelated error")) {
		t.Fatalf("an unrelated error must not be classified fatal")
	}
}

func TestIsWouldBlockRejectsAllocatorExhaustion(t *testing.T) {
	wrapped := fmt.Errorf("ring arena: %w", alloc.ErrExhausted)
	if errors.Is(wrapped, ErrAllocationFailure) {
		t.Fatalf("alloc.ErrExhausted must not alias ErrAllocationFailure")
	}
	if IsWouldBlock(wrapped) {
		t.Fatalf("alloc.ErrExhausted is not a would-block condition")
	}
}

func TestErrAllocationFailureSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("%w: ring: %v", ErrAllocationFailure, alloc.ErrExhausted)
	if !errors.Is(wrapped, ErrAllocationFailure) {
		t.Fatalf("an embedding's wrapped allocator error must still classify as ErrAllocationFailure")
	}
	if !IsFatal(wrapped) {
		t.Fatalf("a wrapped ErrAllocationFailure must be classified fatal")
	}
}
