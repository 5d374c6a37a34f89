// SPDX-License-Identifier: EPL-2.0

package stream

// MinWindowSize is the smallest supported window.
const MinWindowSize = 16

// WindowedView layers fixed window/hop semantics on a SampleRing: it
// reports when a full window of samples is buffered, copies it out, and
// advances the read cursor by the hop size.
//
// The view owns a single scratch block that Extract reuses on every
// call, so extracted windows are only valid until the next Extract and
// must not be shared across concurrent callers. There is exactly one
// logical consumer per view; callers that need concurrent extraction
// must copy into their own buffers.
type WindowedView struct {
	ring       *SampleRing
	windowSize int
	hopSize    int
	scratch    []float64
}

// NewWindowedView validates the window geometry and returns a view over
// ring. The window size must be a power of two of at least
// MinWindowSize; the hop size must be between 1 and the window size.
func NewWindowedView(ring *SampleRing, windowSize, hopSize int) (*WindowedView, error) {
	if windowSize < MinWindowSize || !isPowerOfTwo(windowSize) {
		return nil, ErrInvalidWindowSize
	}
	if hopSize < 1 || hopSize > windowSize {
		return nil, ErrInvalidHopSize
	}

	return &WindowedView{
		ring:       ring,
		windowSize: windowSize,
		hopSize:    hopSize,
		scratch:    make([]float64, windowSize),
	}, nil
}

// WindowSize returns the window length in samples.
func (v *WindowedView) WindowSize() int { return v.windowSize }

// HopSize returns the number of samples consumed per window.
func (v *WindowedView) HopSize() int { return v.hopSize }

// OverlapSize returns windowSize - hopSize.
func (v *WindowedView) OverlapSize() int { return v.windowSize - v.hopSize }

// HasWindow reports whether a full window of samples is buffered.
func (v *WindowedView) HasWindow() bool {
	return v.ring.Len() >= v.windowSize
}

// Extract copies the next window into the view's scratch block and
// returns it. It does not advance the read cursor: calling Extract
// again without Advance returns the same samples, so a caller may
// inspect a window before committing to consume it. It returns false
// when no full window is buffered.
func (v *WindowedView) Extract() ([]float64, bool) {
	if v.scratch == nil || !v.ring.CopyOut(v.scratch, 0) {
		return nil, false
	}
	return v.scratch, true
}

// Advance moves the read cursor forward by the hop size. It returns
// false when fewer than hopSize samples are buffered. In normal use it
// follows a successful Extract.
func (v *WindowedView) Advance() bool {
	return v.ring.Skip(v.hopSize)
}

// release drops the scratch block. Extract fails afterwards; used when
// the owning processor closes.
func (v *WindowedView) release() {
	v.scratch = nil
}
