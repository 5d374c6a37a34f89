// SPDX-License-Identifier: EPL-2.0

package wavelet

import (
	"math"
	"sort"
)

// madScale converts a median absolute deviation into an estimate of the
// standard deviation for Gaussian noise.
const madScale = 0.6745

// SoftThreshold shrinks every coefficient towards zero by t. Values
// with magnitude below t collapse to zero.
func SoftThreshold(coeffs []float64, t float64) {
	if t <= 0 {
		return
	}

	for i, c := range coeffs {
		switch {
		case c > t:
			coeffs[i] = c - t
		case c < -t:
			coeffs[i] = c + t
		default:
			coeffs[i] = 0
		}
	}
}

// UniversalThreshold derives the VisuShrink threshold sigma*sqrt(2 ln N)
// from the finest detail band, with sigma estimated via the median
// absolute deviation. n is the full signal length.
func UniversalThreshold(details []float64, n int) float64 {
	if len(details) == 0 || n < 2 {
		return 0
	}

	sigma := mad(details) / madScale
	return sigma * math.Sqrt(2*math.Log(float64(n)))
}

// mad computes the median of the absolute coefficient values.
func mad(coeffs []float64) float64 {
	abs := make([]float64, len(coeffs))
	for i, c := range coeffs {
		abs[i] = math.Abs(c)
	}
	sort.Float64s(abs)

	mid := len(abs) / 2
	if len(abs)%2 == 1 {
		return abs[mid]
	}
	return (abs[mid-1] + abs[mid]) / 2
}
