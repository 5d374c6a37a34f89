// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio file decoding and encoding.
//
// This package supports reading and writing WAV files in PCM 16-bit format.
// Decoding is backed by the github.com/go-audio/wav library for robust
// chunk handling.
//
// # Supported Formats
//
// Currently supported:
//   - PCM 16-bit (most common WAV format)
//   - Mono and stereo
//   - Any sample rate
//
// # Decoding WAV Files
//
// Use the Decoder to read WAV files:
//
//	decoder := wav.Decoder{}
//	file, _ := os.Open("audio.wav")
//	source, err := decoder.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	// Read samples
//	buf := make([]float64, 4096)
//	n, err := source.ReadSamples(buf)
//
// The decoder returns a pcm.Source that provides samples as float64
// values in the range [-1.0, 1.0].
//
// # Writing WAV Files
//
// Use WriteWAV16 to create WAV files:
//
//	samples := []int16{100, -100, 200, -200}
//	file, _ := os.Create("output.wav")
//	err := wav.WriteWAV16(file, 8000, samples)
//
// The function writes a complete mono WAV file with proper headers and
// works with any io.Writer, including in-memory buffers.
//
// # Error Handling
//
// The package defines several error types:
//   - ErrNotWavFile: The input is not a valid WAV file
//   - ErrOnlyPCM16bitSupported: Only 16-bit PCM is supported
//   - ErrUnsupportedWavLayout: Unsupported WAV file structure
//
// Example:
//
//	source, err := decoder.Decode(file)
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    fmt.Println("Not a WAV file")
//	}
//
// # Performance
//
// The WAV encoder writes in chunks with a pre-allocated header buffer,
// keeping allocations near zero for large files. The decoder streams
// through go-audio's PCM buffer reading, reusing its conversion buffer
// across calls.
package wav
