// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cxlq

import (
	"testing"
	"time"
	"unsafe"
)

func TestHandshakeRejectsMisalignedLines(t *testing.T) {
	buf := make([]byte, 128)
	off := uintptr(unsafe.Pointer(&buf[0])) & 63
	var misalignedPtr unsafe.Pointer
	if off == 0 {
		misalignedPtr = unsafe.Pointer(&buf[1])
	} else {
		misalignedPtr = unsafe.Pointer(&buf[0])
	}
	misaligned := (*uint64)(misalignedPtr)
	good := alignedU64(t)
	if _, err := NewHandshake(misaligned, good, good, time.Microsecond); err == nil {
		t.Fatalf("misaligned producer_ready line must be rejected")
	}
}

func TestHandshakeBothSidesReachStart(t *testing.T) {
	producerReady := alignedU64(t)
	consumerReady := alignedU64(t)
	startSignal := alignedU64(t)

	hsProducer, err := NewHandshake(producerReady, consumerReady, startSignal, time.Microsecond)
	if err != nil {
		t.Fatalf("NewHandshake: %v", err)
	}
	hsConsumer, err := NewHandshake(producerReady, consumerReady, startSignal, time.Microsecond)
	if err != nil {
		t.Fatalf("NewHandshake: %v", err)
	}

	producerDone := make(chan struct{})
	consumerDone := make(chan struct{})
	warmedUp := false

	go func() {
		hsProducer.ProducerSide(func() { warmedUp = true })
		close(producerDone)
	}()
	go func() {
		hsConsumer.ConsumerSide()
		close(consumerDone)
	}()

	select {
	case <-producerDone:
	case <-time.After(2 * time.Second):
		t.Fatalf("producer side of handshake never completed")
	}
	select {
	case <-consumerDone:
	case <-time.After(2 * time.Second):
		t.Fatalf("consumer side of handshake never completed")
	}
	if !warmedUp {
		t.Fatalf("warm-up callback was never invoked")
	}
}
