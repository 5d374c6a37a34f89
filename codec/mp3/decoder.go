// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/audstream/pcm"
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	channels   int
	buf        []byte
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float64) (int, error) {
	// go-mp3 yields 16-bit little-endian PCM, stereo interleaved;
	// two bytes per sample value.
	bytesNeeded := len(dst) * 2
	if cap(s.buf) < bytesNeeded {
		s.buf = make([]byte, bytesNeeded)
	}
	s.buf = s.buf[:bytesNeeded]

	n, err := s.dec.Read(s.buf)
	if n == 0 {
		if err != nil {
			return 0, err
		}
		return 0, nil
	}

	samples := n / 2
	for i := 0; i < samples; i++ {
		v := int16(binary.LittleEndian.Uint16(s.buf[2*i : 2*i+2]))
		dst[i] = float64(v) / 32768.0
	}

	return samples, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (pcm.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	// go-mp3 decodes every stream to stereo.
	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   2,
		buf:        make([]byte, 8192),
	}, nil
}
