// SPDX-License-Identifier: EPL-2.0

// Package streamtest provides mock sample sources shared by tests.
package streamtest

import (
	"io"
	"math"
)

// MockSource is a test helper that generates sample data for testing.
// It implements the pcm.Source interface (without importing it to avoid cycles).
type MockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // per channel
	generated    int // per channel
	waveform     func(sample int, channel int) float64
}

// NewMockSource creates a new mock sample source. totalSamples is the
// number of frames to generate; waveform maps (frame, channel) to a
// sample value.
func NewMockSource(sampleRate, channels, totalSamples int, waveform func(sample int, channel int) float64) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

// NewSilentSource creates a mock source that generates silence.
func NewSilentSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample, channel int) float64 {
		return 0
	})
}

// NewSineSource creates a mock source that generates a sine wave.
func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample, channel int) float64 {
		t := float64(sample) / float64(sampleRate)
		return math.Sin(2 * math.Pi * frequency * t)
	})
}

// NewConstantSource creates a mock source with constant value.
func NewConstantSource(sampleRate, channels, totalSamples int, value float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample, channel int) float64 {
		return value
	})
}

// NewRampSource creates a mock source whose samples count up from zero,
// handy for asserting exact block boundaries.
func NewRampSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample, channel int) float64 {
		return float64(sample)
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) Close() error    { return nil }

// Reset rewinds the source so it can be read again.
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float64) (int, error) {
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	framesRequested := len(dst) / m.channels
	framesToWrite := min(framesRequested, m.totalSamples-m.generated)

	for frame := 0; frame < framesToWrite; frame++ {
		sampleIndex := m.generated + frame
		for ch := 0; ch < m.channels; ch++ {
			dst[frame*m.channels+ch] = m.waveform(sampleIndex, ch)
		}
	}

	m.generated += framesToWrite
	samplesWritten := framesToWrite * m.channels

	if m.generated >= m.totalSamples {
		return samplesWritten, io.EOF
	}

	return samplesWritten, nil
}
