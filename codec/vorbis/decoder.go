// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/audstream/pcm"
)

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
	frameBuf   []float32
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float64) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	// oggvorbis reads whole frames; keep the request frame-aligned.
	// A dst shorter than one frame cannot hold any sample.
	wanted := (len(dst) / s.channels) * s.channels
	if wanted == 0 {
		return 0, nil
	}

	if cap(s.frameBuf) < wanted {
		s.frameBuf = make([]float32, wanted)
	}
	s.frameBuf = s.frameBuf[:wanted]

	n, err := s.dec.Read(s.frameBuf)
	if n == 0 {
		if err != nil {
			return 0, err
		}
		return 0, nil
	}

	for i := 0; i < n; i++ {
		dst[i] = float64(s.frameBuf[i])
	}

	return n, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (pcm.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
		frameBuf:   make([]float32, 4096),
	}, nil
}
