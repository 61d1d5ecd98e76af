// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cxlq

import (
	"fmt"
	"io"

	"code.hybscloud.com/atomix"
)

// atomixCounter is a monotonic, cross-goroutine-visible counter backed by
// atomix.Uint64. It exists as a named type so backoff schedules can be
// handed a pointer to whichever queue-owned field they increment without
// depending on the Metrics struct's layout.
type atomixCounter struct {
	v atomix.Uint64
}

func (c *atomixCounter) add(n uint64) {
	c.v.AddAcqRel(n)
}

func (c *atomixCounter) load() uint64 {
	return c.v.LoadAcquire()
}

// Metrics holds the eleven monotonic counters named in the queue's
// operating contract. Every field is safe to read from any goroutine
// while the queue is in use; none of them are safe to reset except by
// discarding the queue.
type Metrics struct {
	EnqueueCalls          atomixCounter
	DequeueCalls          atomixCounter
	SharedTailReads       atomixCounter
	QueueFullEvents       atomixCounter
	NoNewItemPolls        atomixCounter
	ChecksumFailures      atomixCounter
	TailFlushes           atomixCounter
	ProducerBackoffEvents atomixCounter
	ProducerBackoffCycles atomixCounter
	ConsumerBackoffEvents atomixCounter
	ConsumerBackoffCycles atomixCounter
}

// WriteTo prints a human-readable dump of every counter, one per line,
// prefixed by label. Intended for the reference CLI tools, not for
// machine parsing.
func (m *Metrics) WriteTo(w io.Writer, label string) (int64, error) {
	rows := []struct {
		name string
		val  uint64
	}{
		{"enqueue_calls", m.EnqueueCalls.load()},
		{"dequeue_calls", m.DequeueCalls.load()},
		{"shared_tail_reads", m.SharedTailReads.load()},
		{"queue_full_events", m.QueueFullEvents.load()},
		{"no_new_item_polls", m.NoNewItemPolls.load()},
		{"checksum_failures", m.ChecksumFailures.load()},
		{"tail_flushes", m.TailFlushes.load()},
		{"producer_backoff_events", m.ProducerBackoffEvents.load()},
		{"producer_backoff_cycles", m.ProducerBackoffCycles.load()},
		{"consumer_backoff_events", m.ConsumerBackoffEvents.load()},
		{"consumer_backoff_cycles", m.ConsumerBackoffCycles.load()},
	}
	var total int64
	for _, r := range rows {
		n, err := fmt.Fprintf(w, "%s.%s=%d\n", label, r.name, r.val)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
