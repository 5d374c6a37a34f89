// SPDX-License-Identifier: EPL-2.0

// Package pcm defines how sample data enters and leaves the streaming
// core.
//
// # Source Interface
//
// The Source interface is the producer side of every pipeline:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float64) (int, error)
//	    Close() error
//	}
//
// Format decoders (see the codec subpackages) implement Source, as does
// the MonoMixer in this package, so stages chain naturally.
//
// # Sample Format
//
// Samples are float64 in [-1.0, 1.0]: 0.0 is silence, the bounds are
// full scale. The conversion helpers bridge to 16-bit PCM at the edges
// of a pipeline.
//
// # Channel Mixing
//
// The streaming core operates on a single channel. MonoMixer collapses
// any interleaved multi-channel Source to mono by averaging:
//
//	mono := pcm.NewMonoMixer(src)
//	buf := make([]float64, 4096)
//	n, err := mono.ReadSamples(buf)
//
// # Decoder Registry
//
// The Registry maps format keys to decoders so callers can pick one by
// file extension or probe result:
//
//	reg := pcm.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//	dec, ok := reg.Get("wav")
//
// # Error Handling
//
// ReadSamples returns io.EOF when the source is exhausted; any other
// error means the source itself failed.
package pcm
