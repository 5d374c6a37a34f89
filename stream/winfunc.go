// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"fmt"
	"math"
	"strings"

	"gopkg.in/yaml.v3"
)

// WindowFunc selects the per-sample weighting applied to each block
// before overlap-add.
type WindowFunc int

const (
	// Rectangular applies no weighting. Overlap-add degenerates to
	// pass-through and the reconciler bypasses windowing entirely.
	Rectangular WindowFunc = iota
	// Hann is the periodic Hann window. At 50% overlap the
	// overlapping weights sum to exactly 1 (constant overlap-add).
	Hann
	// Hamming is the periodic Hamming window.
	Hamming
	// Tukey is the periodic Tukey window; the taper fraction is
	// configurable. Taper 0 equals Rectangular, taper 1 equals Hann.
	Tukey
)

// DefaultTukeyTaper is the taper fraction used when none is configured.
const DefaultTukeyTaper = 0.5

func (f WindowFunc) String() string {
	switch f {
	case Rectangular:
		return "rectangular"
	case Hann:
		return "hann"
	case Hamming:
		return "hamming"
	case Tukey:
		return "tukey"
	default:
		return fmt.Sprintf("windowfunc(%d)", int(f))
	}
}

// ParseWindowFunc maps a case-insensitive name to its WindowFunc.
func ParseWindowFunc(name string) (WindowFunc, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "rectangular", "rect":
		return Rectangular, nil
	case "hann":
		return Hann, nil
	case "hamming":
		return Hamming, nil
	case "tukey":
		return Tukey, nil
	default:
		return Rectangular, fmt.Errorf("%w: %q", ErrUnknownWindowFunc, name)
	}
}

// MarshalYAML encodes the window function by name.
func (f WindowFunc) MarshalYAML() (any, error) {
	return f.String(), nil
}

// UnmarshalYAML decodes a window function from its name.
func (f *WindowFunc) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return fmt.Errorf("%w", err)
	}

	parsed, err := ParseWindowFunc(name)
	if err != nil {
		return err
	}

	*f = parsed
	return nil
}

// Coefficients generates the periodic window of the given size. The
// periodic (DFT-even) formulation is required for constant overlap-add
// exactness at the targeted overlap ratios; the symmetric variants do
// not sum to a constant.
//
// Generation is a cheap, pure, per-instance computation: there is no
// process-wide cache.
func Coefficients(f WindowFunc, size int, taper float64) ([]float64, error) {
	if size < 1 {
		return nil, ErrInvalidWindowSize
	}

	w := make([]float64, size)
	switch f {
	case Rectangular:
		for i := range w {
			w[i] = 1
		}
	case Hann:
		for i := range w {
			w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(size))
		}
	case Hamming:
		for i := range w {
			w[i] = 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/float64(size))
		}
	case Tukey:
		if taper < 0 || taper > 1 {
			return nil, ErrInvalidTaper
		}
		tukey(w, taper)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownWindowFunc, int(f))
	}

	return w, nil
}

// tukey fills w with the periodic Tukey window: cosine tapers of
// taper*size/2 samples at each edge, flat in between.
func tukey(w []float64, taper float64) {
	size := float64(len(w))
	edge := taper * size / 2
	if edge == 0 {
		for i := range w {
			w[i] = 1
		}
		return
	}

	for i := range w {
		n := float64(i)
		switch {
		case n < edge:
			w[i] = 0.5 * (1 + math.Cos(math.Pi*(n/edge-1)))
		case n < size-edge:
			w[i] = 1
		default:
			w[i] = 0.5 * (1 + math.Cos(math.Pi*(n-(size-edge))/edge))
		}
	}
}
