// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"testing"
)

func newTestView(t *testing.T, capacity, windowSize, hopSize int) (*SampleRing, *WindowedView) {
	t.Helper()

	ring, err := NewSampleRing(capacity)
	if err != nil {
		t.Fatalf("NewSampleRing(%d) error = %v", capacity, err)
	}
	view, err := NewWindowedView(ring, windowSize, hopSize)
	if err != nil {
		t.Fatalf("NewWindowedView(%d, %d) error = %v", windowSize, hopSize, err)
	}
	return ring, view
}

func TestNewWindowedView_Validation(t *testing.T) {
	t.Parallel()

	ring, _ := NewSampleRing(64)

	tests := []struct {
		name       string
		windowSize int
		hopSize    int
		wantErr    error
	}{
		{"window too small", 8, 4, ErrInvalidWindowSize},
		{"window not power of two", 24, 8, ErrInvalidWindowSize},
		{"hop zero", 16, 0, ErrInvalidHopSize},
		{"hop negative", 16, -1, ErrInvalidHopSize},
		{"hop exceeds window", 16, 17, ErrInvalidHopSize},
		{"valid", 16, 16, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWindowedView(ring, tt.windowSize, tt.hopSize)
			if err != tt.wantErr {
				t.Errorf("NewWindowedView() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWindowedView_HasWindow(t *testing.T) {
	t.Parallel()

	ring, view := newTestView(t, 64, 16, 8)

	for i := 0; i < 15; i++ {
		ring.Offer(float64(i))
		if view.HasWindow() {
			t.Fatalf("HasWindow() = true with %d samples, want false", i+1)
		}
	}

	ring.Offer(15)
	if !view.HasWindow() {
		t.Error("HasWindow() = false with 16 samples, want true")
	}
}

func TestWindowedView_ExtractIsIdempotentPeek(t *testing.T) {
	t.Parallel()

	ring, view := newTestView(t, 64, 16, 4)
	for i := 0; i < 20; i++ {
		ring.Offer(float64(i))
	}

	first, ok := view.Extract()
	if !ok {
		t.Fatal("Extract() = false, want true")
	}
	for i := 0; i < 16; i++ {
		if first[i] != float64(i) {
			t.Errorf("first[%d] = %v, want %v", i, first[i], float64(i))
		}
	}

	// Extract again without Advance: identical samples.
	second, ok := view.Extract()
	if !ok {
		t.Fatal("second Extract() = false, want true")
	}
	for i := 0; i < 16; i++ {
		if second[i] != float64(i) {
			t.Errorf("second[%d] = %v, want %v", i, second[i], float64(i))
		}
	}
}

func TestWindowedView_Advance(t *testing.T) {
	t.Parallel()

	ring, view := newTestView(t, 64, 16, 4)
	for i := 0; i < 20; i++ {
		ring.Offer(float64(i))
	}

	if _, ok := view.Extract(); !ok {
		t.Fatal("Extract() failed")
	}
	if !view.Advance() {
		t.Fatal("Advance() = false, want true")
	}

	// The next window starts one hop later.
	block, ok := view.Extract()
	if !ok {
		t.Fatal("Extract() after Advance failed")
	}
	for i := 0; i < 16; i++ {
		if block[i] != float64(4+i) {
			t.Errorf("block[%d] = %v, want %v", i, block[i], float64(4+i))
		}
	}
}

func TestWindowedView_AdvanceWithoutSamples(t *testing.T) {
	t.Parallel()

	ring, view := newTestView(t, 64, 16, 8)
	for i := 0; i < 7; i++ {
		ring.Offer(float64(i))
	}

	if view.Advance() {
		t.Error("Advance() with fewer than hopSize samples = true, want false")
	}
	if ring.Len() != 7 {
		t.Errorf("Len() after refused advance = %d, want 7", ring.Len())
	}
}

func TestWindowedView_ExtractWithoutWindow(t *testing.T) {
	t.Parallel()

	ring, view := newTestView(t, 64, 16, 8)
	for i := 0; i < 15; i++ {
		ring.Offer(float64(i))
	}

	if _, ok := view.Extract(); ok {
		t.Error("Extract() without a full window = true, want false")
	}
}

func TestWindowedView_Geometry(t *testing.T) {
	t.Parallel()

	_, view := newTestView(t, 64, 32, 24)

	if view.WindowSize() != 32 {
		t.Errorf("WindowSize() = %d, want 32", view.WindowSize())
	}
	if view.HopSize() != 24 {
		t.Errorf("HopSize() = %d, want 24", view.HopSize())
	}
	if view.OverlapSize() != 8 {
		t.Errorf("OverlapSize() = %d, want 8", view.OverlapSize())
	}
}
