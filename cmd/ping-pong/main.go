// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command ping-pong runs a single-process producer/consumer echo loop
// over a pair of cxlq queues (request and response), reporting
// round-trip and one-way latency.
//
// Usage:
//
//	ping-pong pin <cpu_id> numa <node_id> [iterations]
//	ping-pong pin <cpu_id> dax            [iterations]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"
	"unsafe"

	"fabricmem.dev/cxlq"
	"fabricmem.dev/cxlq/alloc"
	"fabricmem.dev/cxlq/cpupin"
)

const order = 14 // 16 Ki-entry ring

func usage() {
	fmt.Fprintf(os.Stderr, "Usage:\n")
	fmt.Fprintf(os.Stderr, "  %s pin <cpu_id> numa <node_id> [iterations]\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  %s pin <cpu_id> dax            [iterations]\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "    iterations defaults to 1000000\n")
}

func main() {
	os.Exit(run())
}

func run() int {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	flag.Usage = usage
	flag.Parse()
	args := flag.Args()

	if len(args) < 3 || args[0] != "pin" {
		usage()
		return 1
	}
	var clientCPU int
	if _, err := fmt.Sscanf(args[1], "%d", &clientCPU); err != nil {
		usage()
		return 1
	}

	var arena alloc.Allocator
	iterations := 1_000_000
	rest := args[2:]

	switch rest[0] {
	case "numa":
		if len(rest) < 2 {
			usage()
			return 1
		}
		var node int
		fmt.Sscanf(rest[1], "%d", &node)
		if len(rest) >= 3 {
			fmt.Sscanf(rest[2], "%d", &iterations)
		}
		a, err := alloc.OpenNuma(node, alloc.DefaultDaxLength, logger)
		if err != nil {
			logger.Error("open numa arena", "err", err)
			return 1
		}
		arena = a
		logger.Info("allocator: numa", "node", node)
	case "dax":
		if len(rest) >= 2 {
			fmt.Sscanf(rest[1], "%d", &iterations)
		}
		a, err := alloc.OpenDax("/dev/dax1.0", alloc.DefaultDaxOffset, alloc.DefaultDaxLength, logger)
		if err != nil {
			logger.Error("open dax arena", "err", err)
			return 1
		}
		arena = a
		logger.Info("allocator: dax", "path", "/dev/dax1.0")
	default:
		usage()
		return 1
	}
	defer arena.Close()

	if !arena.TestMemory() {
		logger.Error("arena self-test failed", "err", cxlq.ErrSelfTestFailed)
		return 1
	}

	reqRing, err := mustAllocate(arena, cxlq.EntrySize<<order, 64, "request ring", logger)
	if err != nil {
		return 1
	}
	reqTailPtr, err := mustAllocate(arena, 64, 64, "request tail", logger)
	if err != nil {
		return 1
	}
	rspRing, err := mustAllocate(arena, cxlq.EntrySize<<order, 64, "response ring", logger)
	if err != nil {
		return 1
	}
	rspTailPtr, err := mustAllocate(arena, 64, 64, "response tail", logger)
	if err != nil {
		return 1
	}

	qReq, err := cxlq.New(reqRing, order, (*uint64)(reqTailPtr))
	if err != nil {
		logger.Error("construct request queue", "err", err)
		return 1
	}
	qRsp, err := cxlq.New(rspRing, order, (*uint64)(rspTailPtr))
	if err != nil {
		logger.Error("construct response queue", "err", err)
		return 1
	}

	logger.Info("ping-pong starting", "client_cpu", clientCPU, "iterations", iterations)

	serverReady := make(chan struct{})
	serverDone := make(chan error, 1)

	go func() {
		unpin, err := cpupin.Pin((clientCPU + 1) % maxInt(1, runtime.NumCPU()))
		if err != nil {
			logger.Warn("server pin failed, continuing unpinned", "err", err)
		} else {
			defer unpin()
		}
		close(serverReady)

		var req, rsp cxlq.Entry
		for i := 0; i < iterations; i++ {
			for !qReq.Dequeue(&req) {
			}
			if req.RequestID != uint16(i&0xFFFF) {
				serverDone <- fmt.Errorf("server: validation error at i=%d", i)
				return
			}
			rsp = req
			for !qRsp.Enqueue(&rsp) {
			}
		}
		serverDone <- nil
	}()

	<-serverReady
	if unpin, err := cpupin.Pin(clientCPU); err == nil {
		defer unpin()
	} else {
		logger.Warn("client pin failed, continuing unpinned", "err", err)
	}

	var req, rsp cxlq.Entry
	start := time.Now()
	for i := 0; i < iterations; i++ {
		req.RequestID = uint16(i & 0xFFFF)
		req.Method = 0

		for !qReq.Enqueue(&req) {
		}
		for !qRsp.Dequeue(&rsp) {
		}
		if rsp.RequestID != req.RequestID {
			logger.Error("client: validation error", "i", i)
			return 1
		}
	}
	elapsed := time.Since(start)

	if err := <-serverDone; err != nil {
		logger.Error("server loop failed", "err", err)
		return 1
	}

	rtt := elapsed / time.Duration(iterations)
	fmt.Printf("\nTotal elapsed      : %s\n", elapsed)
	fmt.Printf("Round-trip latency : %s\n", rtt)
	fmt.Printf("One-way latency    : %s\n", rtt/2)

	fmt.Println("\n[queue stats]")
	qReq.Metrics().WriteTo(os.Stdout, "request")
	fmt.Println()
	qRsp.Metrics().WriteTo(os.Stdout, "response")

	return 0
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
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
