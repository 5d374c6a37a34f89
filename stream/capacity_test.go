// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"testing"
	"time"
)

func newTestController(t *testing.T, capacity, minCap, maxCap int) (*SampleRing, *CapacityController) {
	t.Helper()

	ring, err := NewSampleRing(capacity)
	if err != nil {
		t.Fatalf("NewSampleRing(%d) error = %v", capacity, err)
	}
	ctrl, err := NewCapacityController(ring, minCap, maxCap, 0.9, 0.1, time.Second)
	if err != nil {
		t.Fatalf("NewCapacityController() error = %v", err)
	}
	return ring, ctrl
}

// tickUntil drives the controller with a fixed utilization, one tick
// per interval, and returns how many resizes were applied.
func tickUntil(ctrl *CapacityController, utilization float64, ticks int) int {
	now := time.Unix(0, 0)
	resized := 0
	for i := 0; i < ticks; i++ {
		now = now.Add(time.Second)
		if ctrl.Tick(now, utilization, 0) {
			resized++
		}
	}
	return resized
}

func TestNewCapacityController_Validation(t *testing.T) {
	t.Parallel()

	ring, _ := NewSampleRing(64)

	tests := []struct {
		name      string
		minCap    int
		maxCap    int
		high, low float64
		wantErr   error
	}{
		{"min not power of two", 48, 256, 0.9, 0.1, ErrInvalidCapacity},
		{"max not power of two", 32, 100, 0.9, 0.1, ErrInvalidCapacity},
		{"min above max", 256, 128, 0.9, 0.1, ErrInvalidCapacity},
		{"ring below min", 128, 256, 0.9, 0.1, ErrInvalidCapacity},
		{"ring above max", 16, 32, 0.9, 0.1, ErrInvalidCapacity},
		{"low not positive", 32, 256, 0.9, 0, ErrInvalidThresholds},
		{"high not below one", 32, 256, 1.0, 0.1, ErrInvalidThresholds},
		{"low above high", 32, 256, 0.2, 0.5, ErrInvalidThresholds},
		{"valid", 32, 256, 0.9, 0.1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCapacityController(ring, tt.minCap, tt.maxCap, tt.high, tt.low, time.Second)
			if err != tt.wantErr {
				t.Errorf("NewCapacityController() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCapacityController_GrowsUnderSustainedHighUtilization(t *testing.T) {
	t.Parallel()

	ring, ctrl := newTestController(t, 64, 32, 512)

	// Utilization held above the high threshold across consecutive
	// intervals doubles capacity up to the maximum and no further.
	tickUntil(ctrl, 0.95, 20)

	if ring.Cap() != 512 {
		t.Errorf("Cap() = %d, want 512", ring.Cap())
	}

	grows, shrinks := ctrl.Resizes()
	if grows != 3 || shrinks != 0 {
		t.Errorf("Resizes() = %d grows, %d shrinks, want 3/0", grows, shrinks)
	}
}

func TestCapacityController_ShrinksUnderSustainedLowUtilization(t *testing.T) {
	t.Parallel()

	ring, ctrl := newTestController(t, 512, 32, 512)

	tickUntil(ctrl, 0.02, 30)

	if ring.Cap() != 32 {
		t.Errorf("Cap() = %d, want 32", ring.Cap())
	}
}

func TestCapacityController_CapacityStaysPowerOfTwoWithinBounds(t *testing.T) {
	t.Parallel()

	ring, ctrl := newTestController(t, 64, 32, 512)

	now := time.Unix(0, 0)
	utilizations := []float64{0.95, 0.95, 0.95, 0.95, 0.02, 0.02, 0.95, 0.02, 0.02, 0.02, 0.02, 0.95, 0.95, 0.95}
	for _, u := range utilizations {
		now = now.Add(time.Second)
		ctrl.Tick(now, u, 0)

		if !isPowerOfTwo(ring.Cap()) {
			t.Fatalf("Cap() = %d, not a power of two", ring.Cap())
		}
		if ring.Cap() < 32 || ring.Cap() > 512 {
			t.Fatalf("Cap() = %d, outside [32, 512]", ring.Cap())
		}
	}
}

func TestCapacityController_HysteresisBlocksSpikes(t *testing.T) {
	t.Parallel()

	ring, ctrl := newTestController(t, 64, 32, 512)

	// Alternating high and mid utilization never sustains the signal
	// long enough to resize.
	now := time.Unix(0, 0)
	for i := 0; i < 10; i++ {
		now = now.Add(time.Second)
		u := 0.5
		if i%2 == 0 {
			u = 0.95
		}
		if ctrl.Tick(now, u, 0) {
			t.Fatal("Tick() resized on an alternating signal")
		}
	}

	if ring.Cap() != 64 {
		t.Errorf("Cap() = %d, want unchanged 64", ring.Cap())
	}
}

func TestCapacityController_IntervalGating(t *testing.T) {
	t.Parallel()

	ring, ctrl := newTestController(t, 64, 32, 512)

	// Many calls inside one interval count as a single evaluation.
	base := time.Unix(100, 0)
	ctrl.Tick(base, 0.95, 0)
	for i := 0; i < 50; i++ {
		ctrl.Tick(base.Add(time.Duration(i)*time.Millisecond), 0.95, 0)
	}

	if ring.Cap() != 64 {
		t.Errorf("Cap() = %d after rapid ticks, want 64", ring.Cap())
	}
}

func TestCapacityController_ThroughputSecondarySignal(t *testing.T) {
	t.Parallel()

	ring, ctrl := newTestController(t, 64, 32, 512)

	// Utilization in the middle band, but the stream turns the buffer
	// over far more than the high-turnover watermark: grow.
	now := time.Unix(0, 0)
	for i := 0; i < 6; i++ {
		now = now.Add(time.Second)
		ctrl.Tick(now, 0.5, float64(ring.Cap())*highTurnoverPerSec*2)
	}

	if ring.Cap() <= 64 {
		t.Errorf("Cap() = %d, want growth from sustained high throughput", ring.Cap())
	}

	grows, _ := ctrl.Resizes()
	if grows == 0 {
		t.Error("Resizes() reported no grows")
	}
}

func TestCapacityController_ShrinkRefusedByLiveContents(t *testing.T) {
	t.Parallel()

	ring, ctrl := newTestController(t, 64, 32, 512)

	// More live samples than half the capacity: shrink is refused and
	// the stream keeps operating at the prior capacity.
	for i := 0; i < 40; i++ {
		ring.Offer(1)
	}

	// Low *reported* utilization forces the shrink decision through.
	tickUntil(ctrl, 0.05, 10)

	if ring.Cap() != 64 {
		t.Errorf("Cap() = %d, want unchanged 64", ring.Cap())
	}
	if ring.Len() != 40 {
		t.Errorf("Len() = %d, want 40 preserved", ring.Len())
	}
}
