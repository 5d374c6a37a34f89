// SPDX-License-Identifier: EPL-2.0

package stream

import "errors"

var (
	// Construction-time validation failures. These are fatal: no
	// partially-constructed value is ever returned alongside them.
	ErrInvalidWindowSize = errors.New("window size must be a power of two, at least 16")
	ErrInvalidHopSize    = errors.New("hop size must be between 1 and the window size")
	ErrInvalidCapacity   = errors.New("capacity must be a power of two within configured bounds")
	ErrInvalidTaper      = errors.New("tukey taper must be between 0 and 1")
	ErrInvalidThresholds = errors.New("utilization thresholds must satisfy 0 < low < high < 1")
	ErrUnknownWindowFunc = errors.New("unknown window function")
	ErrNilTransform      = errors.New("block transform must not be nil")
	ErrNilSink           = errors.New("sink must not be nil")

	// Runtime failures.
	ErrClosed           = errors.New("processor is closed")
	ErrRingDeadlock     = errors.New("ring full with no window available")
	ErrInvalidBlockSize = errors.New("block length must equal the window size")
	ErrSegmentRange     = errors.New("segment range exceeds buffered samples")
)
