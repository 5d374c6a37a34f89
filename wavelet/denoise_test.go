// SPDX-License-Identifier: EPL-2.0

package wavelet

import (
	"math"
	"math/rand"
	"testing"
)

func TestDenoiser_ReducesNoise(t *testing.T) {
	t.Parallel()

	const (
		size = 1024
		freq = 4.0
	)

	rng := rand.New(rand.NewSource(42))
	clean := make([]float64, size)
	noisy := make([]float64, size)
	for i := range clean {
		clean[i] = math.Sin(2 * math.Pi * freq * float64(i) / size)
		noisy[i] = clean[i] + rng.NormFloat64()*0.1
	}

	den := NewDenoiser(4)
	out, err := den.TransformBlock(noisy)
	if err != nil {
		t.Fatalf("TransformBlock() error = %v", err)
	}
	if len(out) != size {
		t.Fatalf("output length = %d, want %d", len(out), size)
	}

	mseBefore := meanSquaredError(noisy, clean)
	mseAfter := meanSquaredError(out, clean)

	if mseAfter >= mseBefore {
		t.Errorf("denoising increased error: before = %v, after = %v", mseBefore, mseAfter)
	}
}

func TestDenoiser_CleanSignalNearlyUntouched(t *testing.T) {
	t.Parallel()

	// With no noise the finest band is tiny, so the threshold is tiny
	// and the output should track the input closely.
	size := 512
	in := make([]float64, size)
	for i := range in {
		in[i] = math.Sin(2 * math.Pi * 2 * float64(i) / float64(size))
	}

	den := NewDenoiser(3)
	out, err := den.TransformBlock(in)
	if err != nil {
		t.Fatalf("TransformBlock() error = %v", err)
	}

	for i := range in {
		if math.Abs(out[i]-in[i]) > 0.1 {
			t.Fatalf("out[%d] = %v, drifted too far from %v", i, out[i], in[i])
		}
	}
}

func TestDenoiser_InputUntouched(t *testing.T) {
	t.Parallel()

	in := make([]float64, 64)
	for i := range in {
		in[i] = float64(i)
	}
	snapshot := make([]float64, len(in))
	copy(snapshot, in)

	den := NewDenoiser(2)
	if _, err := den.TransformBlock(in); err != nil {
		t.Fatalf("TransformBlock() error = %v", err)
	}

	for i := range in {
		if in[i] != snapshot[i] {
			t.Fatalf("input[%d] modified: %v != %v", i, in[i], snapshot[i])
		}
	}
}

func TestDenoiser_InvalidBlockLength(t *testing.T) {
	t.Parallel()

	den := NewDenoiser(2)
	if _, err := den.TransformBlock(make([]float64, 100)); err != ErrNotPowerOfTwo {
		t.Errorf("TransformBlock() error = %v, want ErrNotPowerOfTwo", err)
	}
	if _, err := den.TransformBlock(make([]float64, 2)); err != ErrInvalidLevels {
		t.Errorf("TransformBlock() error = %v, want ErrInvalidLevels", err)
	}
}

func TestNewDenoiser_ClampsLevels(t *testing.T) {
	t.Parallel()

	den := NewDenoiser(0)
	if den.levels != 1 {
		t.Errorf("levels = %d, want 1", den.levels)
	}
}

func meanSquaredError(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum / float64(len(a))
}
