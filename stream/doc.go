// SPDX-License-Identifier: EPL-2.0

// Package stream provides the sample-buffering and windowed-dispatch
// core: a bounded circular buffer that accumulates incoming samples,
// exposes fixed-size overlapping windows for block processing, merges
// the overlapping output via weighted overlap-add, and adapts its own
// capacity to observed load.
//
// # Components
//
// The package is built leaf-first from five pieces:
//
//   - SampleRing: a power-of-two circular buffer with monotonic
//     read/write cursors, non-blocking offer/poll/peek and zero-copy
//     Segment views.
//   - WindowedView: fixed window/hop semantics over a ring. Reports
//     when a full window is buffered, copies it into a reusable
//     scratch block, and advances by the hop size.
//   - OverlapReconciler: weights each block by a window function and
//     overlap-adds it with the previous block's tail, emitting the
//     hop-size portion per step.
//   - CapacityController: grows and shrinks the ring between bounds
//     based on utilization and throughput, hysteresis-gated.
//   - Processor: the orchestrator tying them together behind
//     Process/Flush/Close.
//
// Data flows one way: samples -> SampleRing -> WindowedView -> block
// transform -> OverlapReconciler -> sink.
//
// # Basic usage
//
//	cfg := stream.DefaultConfig()
//	cfg.WindowSize = 256
//	cfg.HopSize = 128
//
//	var out []float64
//	sink := stream.SinkFunc(func(block []float64) error {
//	    out = append(out, block...)
//	    return nil
//	})
//
//	p, err := stream.NewProcessor(cfg, transform, sink)
//	if err != nil {
//	    // invalid configuration
//	}
//
//	if err := p.ProcessBatch(samples); err != nil {
//	    // terminal stream failure
//	}
//	if err := p.Close(); err != nil {
//	    // flush failure
//	}
//
// # Concurrency
//
// A Processor is synchronous and single-threaded: Process performs
// ingestion, window extraction, transform invocation and emission
// inline on the calling goroutine. The SampleRing additionally supports
// a single-producer/single-consumer split across two goroutines, with
// atomic cursors providing release/acquire visibility, as long as each
// side sticks to its own half of the API. Clear and Resize require the
// ring to be quiesced.
//
// # Lifecycle and errors
//
// A processor is open until Close, which flushes buffered samples
// (zero-padding a final partial window) and is idempotent. Mutating
// calls after Close fail with ErrClosed. Errors from the block
// transform or the sink are terminal: the stream stops emitting, a
// FailableSink is notified, and later calls return the original cause.
// The expected "not ready yet" conditions (ring full, no window
// buffered) are reported as boolean results, not errors.
//
// # Windows and overlap-add
//
// Blocks are extracted every HopSize samples, so adjacent blocks share
// WindowSize-HopSize samples. The reconciler weights each block with a
// periodic window function (Hann, Hamming, Tukey) whose overlapping
// coefficients sum to one at the matching overlap ratio; periodic Hann
// at 50% overlap reconstructs exactly. The Rectangular window is a
// pass-through fast path.
package stream
