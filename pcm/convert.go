// SPDX-License-Identifier: EPL-2.0

package pcm

// Float64ToInt16 clamps x to [-1, 1] and scales it to 16-bit PCM.
func Float64ToInt16(x float64) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// 32767 for the positive max to avoid overflow.
	return int16(x * 32767.0)
}

// Int16ToFloat64 scales a 16-bit PCM sample into [-1, 1).
func Int16ToFloat64(v int16) float64 {
	return float64(v) / 32768.0
}

// Float64ToInt16Slice converts samples in batch, reusing dst when it
// has enough capacity.
func Float64ToInt16Slice(samples []float64, dst []int16) []int16 {
	if cap(dst) < len(samples) {
		dst = make([]int16, len(samples))
	}
	dst = dst[:len(samples)]

	for i, s := range samples {
		dst[i] = Float64ToInt16(s)
	}
	return dst
}
