// SPDX-License-Identifier: EPL-2.0

package wavelet

import "math"

// Forward applies the in-place Haar transform to data for the given
// number of decomposition levels. len(data) must be a power of two and
// at least 1<<levels.
func Forward(data []float64, levels int) error {
	n := len(data)
	if n == 0 || n&(n-1) != 0 {
		return ErrNotPowerOfTwo
	}
	if levels < 1 || n>>levels < 1 {
		return ErrInvalidLevels
	}

	tmp := make([]float64, n)
	length := n

	for lvl := 0; lvl < levels; lvl++ {
		half := length / 2
		for i := 0; i < half; i++ {
			a, b := data[2*i], data[2*i+1]
			tmp[i] = (a + b) / math.Sqrt2
			tmp[half+i] = (a - b) / math.Sqrt2
		}
		copy(data[:length], tmp[:length])
		length = half
	}

	return nil
}

// Inverse undoes Forward with the same decomposition depth.
func Inverse(data []float64, levels int) error {
	n := len(data)
	if n == 0 || n&(n-1) != 0 {
		return ErrNotPowerOfTwo
	}
	if levels < 1 || n>>levels < 1 {
		return ErrInvalidLevels
	}

	tmp := make([]float64, n)
	length := n >> levels

	for lvl := 0; lvl < levels; lvl++ {
		half := length
		length *= 2
		for i := 0; i < half; i++ {
			s, d := data[i], data[half+i]
			tmp[2*i] = (s + d) / math.Sqrt2
			tmp[2*i+1] = (s - d) / math.Sqrt2
		}
		copy(data[:length], tmp[:length])
	}

	return nil
}
