// SPDX-License-Identifier: EPL-2.0

// Package wavelet implements the Haar discrete wavelet transform and a
// soft-threshold denoiser built on it.
//
// The transform is orthonormal: Forward followed by Inverse reconstructs
// the input to floating-point precision, and signal energy is preserved
// across the transform. Coefficients are stored in the usual pyramid
// layout, approximations in the front of the slice and detail bands
// behind them, finest band last.
//
// # Denoising
//
// Denoiser estimates the noise floor from the finest detail band using
// the median absolute deviation, derives the universal threshold
// sigma * sqrt(2 ln N), and soft-thresholds every detail coefficient
// before inverting. It implements the block transform interface of the
// stream package, so it can be dropped directly into a Processor:
//
//	den := wavelet.NewDenoiser(4)
//	p, err := stream.NewProcessor(cfg, den, sink)
//
// Block lengths must be a power of two and large enough for the chosen
// decomposition depth.
package wavelet
