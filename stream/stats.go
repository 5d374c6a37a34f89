// SPDX-License-Identifier: EPL-2.0

package stream

import "time"

// Statistics is a snapshot of a processor's cumulative counters.
type Statistics struct {
	// ProcessorID identifies the processor instance in telemetry.
	ProcessorID string
	// SamplesProcessed counts samples accepted into the ring.
	SamplesProcessed uint64
	// BlocksEmitted counts reconciled blocks delivered to the sink.
	BlocksEmitted uint64
	// AvgBlockTime and MaxBlockTime cover the transform+reconcile+emit
	// path per block.
	AvgBlockTime time.Duration
	MaxBlockTime time.Duration
	// Throughput is samples per second over elapsed wall time.
	Throughput float64
	// BufferLevel is the current ring utilization in [0, 1].
	BufferLevel float64
	// Capacity is the current ring capacity in samples.
	Capacity int
	// Uptime is the wall time since construction.
	Uptime time.Duration
}
