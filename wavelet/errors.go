// SPDX-License-Identifier: EPL-2.0

package wavelet

import "errors"

var (
	// ErrNotPowerOfTwo indicates the signal length is not a power of two.
	ErrNotPowerOfTwo = errors.New("signal length must be a power of two")

	// ErrInvalidLevels indicates the decomposition depth does not fit
	// the signal length.
	ErrInvalidLevels = errors.New("invalid decomposition depth for signal length")
)
