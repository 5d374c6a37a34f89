// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"io"
	"sync"
)

// Source is a pull-based stream of interleaved float64 samples in
// [-1, 1].
type Source interface {
	// SampleRate of the stream in Hz.
	SampleRate() int
	// Channels count (1=mono, 2=stereo, ...).
	Channels() int
	// ReadSamples fills dst with interleaved samples and returns the
	// number of values written. n == 0 with io.EOF means the stream
	// is finished.
	ReadSamples(dst []float64) (n int, err error)
	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from encoded input.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry maps format keys (e.g. "wav", "mp3") to decoders. Safe for
// concurrent use.
type Registry struct {
	codecs map[string]Decoder
	mtx    sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Decoder)}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[format] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[format]
	return d, ok
}
