// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MP3 files.
// The decoder returns a pcm.Source that provides samples as float64
// values normalized to the range [-1.0, 1.0].
//
// # Output Format
//
// MP3 decoder output:
//   - Sample format: float64 in range [-1.0, 1.0]
//   - Channels: 2 (go-mp3 always outputs stereo)
//   - Sample rate: depends on the MP3 file (typically 44.1kHz or 48kHz)
//
// To collapse to mono, wrap the source in a pcm.MonoMixer:
//
//	source, _ := mp3.Decoder{}.Decode(file)
//	mono := pcm.NewMonoMixer(source)
//
// # Limitations
//
//   - MP3 writing is not supported (decoding only)
//   - Output is always stereo
package mp3
