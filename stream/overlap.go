// SPDX-License-Identifier: EPL-2.0

package stream

// OverlapReconciler merges successive window-length blocks back into a
// continuous stream. Each block is weighted by the window function and
// its overlap region is summed with the tail carried over from the
// previous block, so independently processed, overlapping blocks
// reconstruct a smooth signal instead of introducing discontinuities at
// block boundaries.
//
// Per step it emits only the hopSize samples that no later block will
// contribute to, except for the very first block, which is emitted
// whole since there is nothing to merge it against. With a Rectangular
// window it skips weighting and history entirely and emits the hopSize
// prefix of every block, which makes reconciliation an exact
// pass-through of the input.
type OverlapReconciler struct {
	windowSize int
	hopSize    int
	fn         WindowFunc
	coeffs     []float64 // nil for Rectangular
	prevTail   []float64
	hasHistory bool
}

// NewOverlapReconciler validates the geometry, precomputes the window
// coefficients and returns a reconciler.
func NewOverlapReconciler(windowSize, hopSize int, fn WindowFunc, taper float64) (*OverlapReconciler, error) {
	if windowSize < MinWindowSize || !isPowerOfTwo(windowSize) {
		return nil, ErrInvalidWindowSize
	}
	if hopSize < 1 || hopSize > windowSize {
		return nil, ErrInvalidHopSize
	}

	o := &OverlapReconciler{
		windowSize: windowSize,
		hopSize:    hopSize,
		fn:         fn,
		prevTail:   make([]float64, windowSize-hopSize),
	}

	if fn != Rectangular {
		coeffs, err := Coefficients(fn, windowSize, taper)
		if err != nil {
			return nil, err
		}
		o.coeffs = coeffs
	}

	return o, nil
}

// WindowFunction returns the configured window function.
func (o *OverlapReconciler) WindowFunction() WindowFunc { return o.fn }

// Reconcile weights block, merges it with the carried tail and returns
// the emitted portion. The block is modified in place and the returned
// slice aliases it, so it is only valid until the caller reuses the
// block. The block length must equal the window size.
func (o *OverlapReconciler) Reconcile(block []float64) ([]float64, error) {
	if len(block) != o.windowSize {
		return nil, ErrInvalidBlockSize
	}

	// Rectangular fast path: no weighting, no history. The hopSize
	// prefix of each block is exactly the hopSize new samples.
	if o.coeffs == nil {
		return block[:o.hopSize], nil
	}

	for i := range block {
		block[i] *= o.coeffs[i]
	}

	overlap := o.windowSize - o.hopSize
	if !o.hasHistory {
		copy(o.prevTail, block[o.hopSize:])
		o.hasHistory = true
		return block, nil
	}

	for i := 0; i < overlap; i++ {
		block[i] += o.prevTail[i]
	}
	// The tail is taken after the add: when hopSize < windowSize/2
	// more than two windows overlap a sample and the partial sums
	// must keep accumulating across steps.
	copy(o.prevTail, block[o.hopSize:])

	return block[:o.hopSize], nil
}

// Reset clears the carried history so the next block is treated as the
// first of a stream.
func (o *OverlapReconciler) Reset() {
	o.hasHistory = false
	for i := range o.prevTail {
		o.prevTail[i] = 0
	}
}
