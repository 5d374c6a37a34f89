// SPDX-License-Identifier: EPL-2.0

// Package audstream provides high-level helpers for windowed stream
// processing of audio sample data.
//
// The heavy lifting lives in the subpackages: stream implements the
// buffering, windowing and dispatch core, wavelet provides a block
// denoiser, pcm defines the sample source interfaces and codec/*
// decode common audio container formats. This package ties them
// together for the common run-a-source-through-a-transform case.
//
// # Supported Formats
//
// The codec subpackages decode the following audio formats:
//   - WAV (PCM 16-bit) via codec/wav
//   - MP3 via codec/mp3
//   - Ogg Vorbis via codec/vorbis
//   - AIFF (PCM 16-bit) via codec/aiff
//
// # Quick Start
//
// Decode a file and run it through a transform:
//
//	decoder := wav.Decoder{}
//	file, _ := os.Open("audio.wav")
//	src, _ := decoder.Decode(file)
//
//	cfg := stream.DefaultConfig()
//	out, err := audstream.Run(src, cfg, wavelet.NewDenoiser(4))
//
// out contains the processed samples as float64 in [-1.0, 1.0]. For
// 16-bit PCM output (for example to hand to wav.WriteWAV16), use
// RunToPCM16 instead.
//
// # Custom Pipelines
//
// For streaming delivery, backpressure control, or adaptive buffer
// sizing, construct a stream.Processor directly and feed it with
// Process or ProcessBatch; Run is a convenience wrapper around exactly
// that machinery with a collecting sink.
package audstream
