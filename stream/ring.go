// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"sync/atomic"
)

// cacheLine separates the producer and consumer cursors so that a
// producer store never invalidates the consumer's cache line.
const cacheLine = 64

// SampleRing is a fixed-capacity circular buffer of float64 samples.
//
// The capacity is always a power of two so slot indexing is a bitmask
// rather than a modulo. The read and write cursors increase
// monotonically and never wrap; only their masked value indexes the
// backing array. Invariant: 0 <= writePos-readPos <= capacity.
//
// The ring follows a single-producer/single-consumer discipline. One
// goroutine may call Offer while another calls Poll, Peek, Skip and
// CopyOut; the cursors are atomic with release/acquire ordering so the
// consumer never observes an advanced write cursor without the sample
// that was written under it. Mixing roles across goroutines beyond that
// is undefined. The common case in this package is both roles on the
// same goroutine.
//
// Clear and Resize are not part of the SPSC contract: they may only run
// while the ring is quiesced (no concurrent Offer or Poll).
type SampleRing struct {
	writePos atomic.Uint64
	_        [cacheLine - 8]byte
	readPos  atomic.Uint64
	_        [cacheLine - 8]byte

	buf  []float64
	mask uint64

	// generation is bumped on every backing-array swap or Clear so
	// outstanding Segments can detect that their view is stale.
	generation atomic.Uint64
	resizing   atomic.Bool
}

// NewSampleRing returns an empty ring of the given capacity.
// The capacity must be a power of two.
func NewSampleRing(capacity int) (*SampleRing, error) {
	if !isPowerOfTwo(capacity) {
		return nil, ErrInvalidCapacity
	}

	return &SampleRing{
		buf:  make([]float64, capacity),
		mask: uint64(capacity) - 1,
	}, nil
}

// isPowerOfTwo reports whether n is a positive power of two.
func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Cap returns the current capacity.
func (r *SampleRing) Cap() int { return len(r.buf) }

// Len returns the number of buffered samples.
func (r *SampleRing) Len() int {
	return int(r.writePos.Load() - r.readPos.Load())
}

// Free returns the number of samples that can be offered before the
// ring is full.
func (r *SampleRing) Free() int { return r.Cap() - r.Len() }

// Utilization returns Len/Cap as a fraction in [0, 1].
func (r *SampleRing) Utilization() float64 {
	return float64(r.Len()) / float64(r.Cap())
}

// Offer appends one sample. It returns false, without blocking and
// without touching buffered data, when the ring is full.
func (r *SampleRing) Offer(v float64) bool {
	w := r.writePos.Load()
	rd := r.readPos.Load()
	if w-rd == uint64(len(r.buf)) {
		return false
	}

	r.buf[w&r.mask] = v
	r.writePos.Store(w + 1)
	return true
}

// Poll removes and returns the oldest sample. The second return value
// is false when the ring is empty.
func (r *SampleRing) Poll() (float64, bool) {
	rd := r.readPos.Load()
	w := r.writePos.Load()
	if w == rd {
		return 0, false
	}

	v := r.buf[rd&r.mask]
	r.readPos.Store(rd + 1)
	return v, true
}

// Peek returns the sample at the given offset from the read cursor
// without consuming it. It returns false when offset >= Len().
func (r *SampleRing) Peek(offset int) (float64, bool) {
	if offset < 0 {
		return 0, false
	}

	rd := r.readPos.Load()
	w := r.writePos.Load()
	if uint64(offset) >= w-rd {
		return 0, false
	}

	return r.buf[(rd+uint64(offset))&r.mask], true
}

// Skip advances the read cursor by n samples. It returns false, and
// leaves the cursor untouched, when fewer than n samples are buffered.
func (r *SampleRing) Skip(n int) bool {
	if n < 0 {
		return false
	}

	rd := r.readPos.Load()
	w := r.writePos.Load()
	if uint64(n) > w-rd {
		return false
	}

	r.readPos.Store(rd + uint64(n))
	return true
}

// CopyOut copies len(dst) samples starting at the given offset from the
// read cursor into dst, without consuming them. It returns false when
// the requested range exceeds the buffered samples.
func (r *SampleRing) CopyOut(dst []float64, offset int) bool {
	if offset < 0 {
		return false
	}

	rd := r.readPos.Load()
	w := r.writePos.Load()
	n := uint64(len(dst))
	if uint64(offset)+n > w-rd {
		return false
	}

	start := (rd + uint64(offset)) & r.mask
	first := uint64(len(r.buf)) - start
	if first >= n {
		copy(dst, r.buf[start:start+n])
	} else {
		copy(dst, r.buf[start:])
		copy(dst[first:], r.buf[:n-first])
	}
	return true
}

// Clear resets both cursors to zero and invalidates all outstanding
// segments. Only valid while the ring is quiesced.
func (r *SampleRing) Clear() {
	r.readPos.Store(0)
	r.writePos.Store(0)
	r.generation.Add(1)
}

// Resize swaps the backing array for one of newCapacity, preserving the
// buffered samples in order. The read cursor is reset to 0 and the
// write cursor to Len() against the new array.
//
// Resize must not interleave with Offer or Poll: a write landing on the
// old array after the copy began would be silently lost. The ring only
// enforces this against itself, via an in-progress flag; callers are
// responsible for quiescing both sides.
//
// It returns false, leaving the ring unchanged, when newCapacity is not
// a power of two, is smaller than the number of buffered samples, or a
// resize is already in progress.
func (r *SampleRing) Resize(newCapacity int) bool {
	if !isPowerOfTwo(newCapacity) {
		return false
	}
	if !r.resizing.CompareAndSwap(false, true) {
		return false
	}
	defer r.resizing.Store(false)

	rd := r.readPos.Load()
	w := r.writePos.Load()
	size := w - rd
	if uint64(newCapacity) < size {
		return false
	}
	if newCapacity == len(r.buf) {
		return true
	}

	fresh := make([]float64, newCapacity)
	start := rd & r.mask
	first := uint64(len(r.buf)) - start
	if first >= size {
		copy(fresh, r.buf[start:start+size])
	} else {
		copy(fresh, r.buf[start:])
		copy(fresh[first:], r.buf[:size-first])
	}

	r.buf = fresh
	r.mask = uint64(newCapacity) - 1
	r.readPos.Store(0)
	r.writePos.Store(size)
	r.generation.Add(1)
	return true
}

// Segment returns a zero-copy view of length samples starting at the
// given offset from the read cursor. The view stays valid only until a
// write overwrites the referenced range, the ring is resized, or it is
// cleared; re-check Valid before every read. The only safe long-lived
// access is CopyTo.
func (r *SampleRing) Segment(offset, length int) (*Segment, error) {
	if offset < 0 || length < 0 {
		return nil, ErrSegmentRange
	}

	rd := r.readPos.Load()
	w := r.writePos.Load()
	if uint64(offset)+uint64(length) > w-rd {
		return nil, ErrSegmentRange
	}

	return &Segment{
		ring: r,
		pos:  rd + uint64(offset),
		n:    length,
		gen:  r.generation.Load(),
	}, nil
}

// Segment is a view into a SampleRing addressed by absolute cursor
// position. It performs no copying; the referenced samples live in the
// ring's backing array and may be overwritten by later writes.
type Segment struct {
	ring *SampleRing
	pos  uint64
	n    int
	gen  uint64
}

// Len returns the number of samples the segment spans.
func (s *Segment) Len() int { return s.n }

// Valid reports whether the referenced range is still intact: the
// backing array has not been swapped and no write has lapped the
// segment's oldest sample.
func (s *Segment) Valid() bool {
	if s.ring.generation.Load() != s.gen {
		return false
	}

	w := s.ring.writePos.Load()
	if s.pos+uint64(s.n) > w {
		return false
	}
	return w-s.pos <= uint64(len(s.ring.buf))
}

// At returns the i-th sample of the segment. It returns false when i is
// out of range or the segment has been invalidated. Validity is
// re-checked after the read, so a true result means the value was not
// torn by a concurrent overwrite.
func (s *Segment) At(i int) (float64, bool) {
	if i < 0 || i >= s.n || !s.Valid() {
		return 0, false
	}

	v := s.ring.buf[(s.pos+uint64(i))&s.ring.mask]
	if !s.Valid() {
		return 0, false
	}
	return v, true
}

// CopyTo copies the segment into dst and reports whether the copy is
// trustworthy: it validates before and after copying, so a true result
// means no write invalidated the range mid-copy. dst must hold at least
// Len samples.
func (s *Segment) CopyTo(dst []float64) bool {
	if len(dst) < s.n || !s.Valid() {
		return false
	}

	start := s.pos & s.ring.mask
	n := uint64(s.n)
	first := uint64(len(s.ring.buf)) - start
	if first >= n {
		copy(dst, s.ring.buf[start:start+n])
	} else {
		copy(dst, s.ring.buf[start:])
		copy(dst[first:], s.ring.buf[:n-first])
	}

	return s.Valid()
}
