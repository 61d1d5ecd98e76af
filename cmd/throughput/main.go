// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command throughput runs a two-process producer/consumer benchmark over
// a cxlq queue backed by a DAX-mapped arena, using the arena's handshake
// lines to rendezvous the two processes before timed measurement starts.
//
// Usage:
//
//	throughput producer pin <cpu_id> dax [iterations]
//	throughput consumer pin <cpu_id> dax [iterations]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"
	"unsafe"

	"fabricmem.dev/cxlq"
	"fabricmem.dev/cxlq/alloc"
	"fabricmem.dev/cxlq/cpupin"
)

const (
	order         = 14
	defaultIters  = 10_000_000
	daxDevicePath = "/dev/dax1.0"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage  : %s <producer|consumer> pin <cpu_id> dax [iter_count]\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "notes  : iter_count defaults to %d when omitted\n", defaultIters)
	fmt.Fprintf(os.Stderr, "       : 'dax' mode is required for multi-process test\n")
}

func main() {
	os.Exit(run())
}

func run() int {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	flag.Usage = usage
	flag.Parse()
	args := flag.Args()

	if len(args) < 4 {
		usage()
		return 1
	}
	role := args[0]
	if role != "producer" && role != "consumer" {
		usage()
		return 1
	}
	if args[1] != "pin" {
		usage()
		return 1
	}
	var cpuID int
	fmt.Sscanf(args[2], "%d", &cpuID)
	if args[3] != "dax" {
		fmt.Fprintln(os.Stderr, "error: two-process mode requires 'dax' allocator")
		usage()
		return 1
	}
	iters := defaultIters
	if len(args) >= 5 {
		fmt.Sscanf(args[4], "%d", &iters)
	}

	unpin, err := cpupin.Pin(cpuID)
	if err != nil {
		logger.Warn("pin failed, continuing unpinned", "err", err)
	} else {
		defer unpin()
	}

	arena, err := alloc.OpenDax(daxDevicePath, alloc.DefaultDaxOffset, alloc.DefaultDaxLength, logger)
	if err != nil {
		logger.Error("open dax arena", "err", err)
		return 1
	}
	defer arena.Close()

	if !arena.TestMemory() {
		logger.Error("arena self-test failed", "err", cxlq.ErrSelfTestFailed)
		return 1
	}

	isProducer := role == "producer"

	ringPtr, err := mustAllocate(arena, cxlq.EntrySize<<order, 64, "ring", logger)
	if err != nil {
		return 1
	}
	tailPtr, err := mustAllocate(arena, 64, 64, "shared tail", logger)
	if err != nil {
		return 1
	}
	producerReadyPtr, err := mustAllocate(arena, 64, 64, "producer_ready", logger)
	if err != nil {
		return 1
	}
	consumerReadyPtr, err := mustAllocate(arena, 64, 64, "consumer_ready", logger)
	if err != nil {
		return 1
	}
	startSignalPtr, err := mustAllocate(arena, 64, 64, "start_signal", logger)
	if err != nil {
		return 1
	}

	q, err := cxlq.New(ringPtr, order, (*uint64)(tailPtr), cxlq.WithOwner(isProducer))
	if err != nil {
		logger.Error("construct queue", "err", err)
		return 1
	}
	hs, err := cxlq.NewHandshake((*uint64)(producerReadyPtr), (*uint64)(consumerReadyPtr), (*uint64)(startSignalPtr), 0)
	if err != nil {
		logger.Error("construct handshake", "err", err)
		return 1
	}

	logger.Info("throughput starting", "role", role, "cpu", cpuID, "iterations", iters)

	const warmUpEntries = 1000
	if isProducer {
		hs.ProducerSide(func() {
			var warm cxlq.Entry
			for i := 0; i < warmUpEntries; i++ {
				for !q.Enqueue(&warm) {
				}
			}
		})
	} else {
		hs.ConsumerSide()
		// Drain the producer's warm-up entries so the rpc_id check below
		// starts at the first measured entry.
		var warm cxlq.Entry
		for i := 0; i < warmUpEntries; i++ {
			for !q.Dequeue(&warm) {
			}
		}
	}

	start := time.Now()
	if isProducer {
		var e cxlq.Entry
		for i := 0; i < iters; i++ {
			e.RequestID = uint16(i & 0xFFFF)
			for !q.Enqueue(&e) {
			}
		}
	} else {
		var out cxlq.Entry
		var mismatches int
		for i := 0; i < iters; i++ {
			for !q.Dequeue(&out) {
			}
			if out.RequestID != uint16(i&0xFFFF) {
				mismatches++
			}
		}
		if mismatches > 0 {
			logger.Error("rpc_id mismatch observed", "count", mismatches)
			return 2
		}
	}
	elapsed := time.Since(start)

	rate := float64(iters) / elapsed.Seconds()
	fmt.Printf("\nRole               : %s\n", role)
	fmt.Printf("Total elapsed      : %s\n", elapsed)
	fmt.Printf("Throughput         : %.0f msgs/sec\n", rate)

	fmt.Println("\n[queue stats]")
	q.Metrics().WriteTo(os.Stdout, role)

	return 0
}

// mustAllocate wraps arena.AllocateAligned, surfacing any failure as
// cxlq.ErrAllocationFailure (the core's own fatal-error taxonomy) rather
// than the allocator-local error it was given.
func mustAllocate(arena alloc.Allocator, bytes, align uintptr, what string, logger *slog.Logger) (unsafe.Pointer, error) {
	p, err := arena.AllocateAligned(bytes, align)
	if err != nil {
		err = fmt.Errorf("%w: %s: %v", cxlq.ErrAllocationFailure, what, err)
		logger.Error("allocate", "what", what, "err", err)
		return nil, err
	}
	return p, nil
}
