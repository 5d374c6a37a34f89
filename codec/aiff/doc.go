// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF audio file decoding.
//
// This package uses github.com/go-audio/aiff to decode AIFF files.
// The decoder returns a pcm.Source that provides samples as float64
// values normalized to the range [-1.0, 1.0].
//
// # Supported Formats
//
// Currently supported:
//   - PCM 16-bit AIFF
//   - Mono and stereo
//   - Any sample rate
//
// # Error Handling
//
// The package defines several error types:
//   - ErrNotAiffFile: The input is not a valid AIFF file
//   - ErrOnlyPCM16bitSupported: Only 16-bit PCM is supported
//   - ErrUnsupportedAiffLayout: Unsupported AIFF file structure
//
// # Limitations
//
//   - AIFF writing is not supported (decoding only)
//   - AIFF-C compressed variants are not supported
package aiff
