// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio file decoding.
//
// This package uses github.com/jfreymuth/oggvorbis to decode Ogg Vorbis
// files. The decoder returns a pcm.Source that provides samples as
// float64 values normalized to the range [-1.0, 1.0].
//
// # Output Format
//
// Vorbis decoder output:
//   - Sample format: float64 in range [-1.0, 1.0]
//   - Channels: depends on file (mono or stereo typically)
//   - Sample rate: depends on file (commonly 44.1kHz or 48kHz)
//
// For stereo files, samples are interleaved:
//
//	[L0, R0, L1, R1, L2, R2, ...]
//
// To collapse to mono, wrap the source in a pcm.MonoMixer.
//
// # Limitations
//
//   - Vorbis encoding is not supported (decoding only)
//   - Reading is frame-based (whole frames are decoded at a time)
package vorbis
