// SPDX-License-Identifier: EPL-2.0

package pcm

import "fmt"

// MonoMixer collapses a multi-channel Source to mono by averaging the
// channels of each frame. Mono input passes through untouched.
type MonoMixer struct {
	src Source
	tmp []float64
}

func NewMonoMixer(src Source) *MonoMixer {
	return &MonoMixer{
		src: src,
		tmp: make([]float64, 4096),
	}
}

func (m *MonoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *MonoMixer) Channels() int   { return 1 }

func (m *MonoMixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// ReadSamples fills dst with mono samples, one per source frame.
func (m *MonoMixer) ReadSamples(dst []float64) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	channels := m.src.Channels()
	if channels == 1 {
		return m.src.ReadSamples(dst)
	}

	needed := len(dst) * channels
	if cap(m.tmp) < needed {
		m.tmp = make([]float64, needed)
	}
	m.tmp = m.tmp[:needed]

	n, err := m.src.ReadSamples(m.tmp)
	if n == 0 {
		return 0, err
	}
	frames := n / channels

	switch channels {
	case 2:
		for f := 0; f < frames; f++ {
			idx := f << 1
			dst[f] = (m.tmp[idx] + m.tmp[idx+1]) * 0.5
		}
	default:
		inv := 1.0 / float64(channels)
		for f := 0; f < frames; f++ {
			base := f * channels
			sum := 0.0
			for c := 0; c < channels; c++ {
				sum += m.tmp[base+c]
			}
			dst[f] = sum * inv
		}
	}

	return frames, err
}
