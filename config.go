// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cxlq

import "log/slog"

// Config carries the construction-time parameters for New. Owner selects
// whether this process zero-initialises the ring and shared tail (the
// two-process/two-host attach case sets Owner=false and trusts whatever
// the owning process already wrote).
type Config struct {
	Order       uint32
	Owner       bool
	MinWaitFull uint32
	MinWaitIdle uint32
	MinWaitTorn uint32
	Logger      *slog.Logger
}

// Option mutates a Config in place; New applies functional options over
// DefaultConfig(order).
type Option func(*Config)

// DefaultConfig returns the recommended backoff tuning from the queue's
// operating contract for the given order, with Owner set to true and
// per-call debug tracing routed to slog.Default() (silent unless the
// caller's handler is configured for Debug level).
func DefaultConfig(order uint32) Config {
	return Config{
		Order:       order,
		Owner:       true,
		MinWaitFull: minWaitProducerFull,
		MinWaitIdle: minWaitConsumerEmpty,
		MinWaitTorn: minWaitConsumerChecksum,
		Logger:      slog.Default(),
	}
}

// WithOwner overrides whether this process performs zero-initialisation
// of the ring and shared tail line.
func WithOwner(owner bool) Option {
	return func(c *Config) { c.Owner = owner }
}

// WithBackoffTuning overrides the three per-site minimum wait cycle
// counts. Zero leaves the corresponding field at its current value.
func WithBackoffTuning(minWaitFull, minWaitIdle, minWaitTorn uint32) Option {
	return func(c *Config) {
		if minWaitFull != 0 {
			c.MinWaitFull = minWaitFull
		}
		if minWaitIdle != 0 {
			c.MinWaitIdle = minWaitIdle
		}
		if minWaitTorn != 0 {
			c.MinWaitTorn = minWaitTorn
		}
	}
}

// WithLogger overrides the logger Enqueue/Dequeue trace their per-call
// outcome to at Debug level. A nil logger disables tracing entirely.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) { c.Logger = logger }
}
