// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"io"
	"testing"

	goaudio "github.com/go-audio/audio"
)

// mockAiffReader simulates go-audio's aiff.Decoder for testing
type mockAiffReader struct {
	format  *goaudio.Format
	samples []int
	offset  int
}

func (m *mockAiffReader) Format() *goaudio.Format { return m.format }

func (m *mockAiffReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.offset >= len(m.samples) {
		return 0, nil
	}

	n := copy(buf.Data, m.samples[m.offset:])
	m.offset += n
	return n, nil
}

func TestDecoder_NotAiffFile(t *testing.T) {
	t.Parallel()

	decoder := Decoder{}
	_, err := decoder.Decode(bytes.NewReader([]byte("definitely not an AIFF file")))

	if err != ErrNotAiffFile {
		t.Errorf("Decode() error = %v, want ErrNotAiffFile", err)
	}
}

func TestDecoder_EmptyInput(t *testing.T) {
	t.Parallel()

	decoder := Decoder{}
	_, err := decoder.Decode(bytes.NewReader(nil))

	if err == nil {
		t.Error("Decode() error = nil, want error for empty input")
	}
}

func TestSource_ReadSamplesConversion(t *testing.T) {
	t.Parallel()

	src := &source{
		dec: &mockAiffReader{
			format:  &goaudio.Format{NumChannels: 1, SampleRate: 22050},
			samples: []int{0, 16384, -32768, 32767},
		},
		sampleRate: 22050,
		channels:   1,
	}

	buf := make([]float64, 4)
	n, err := src.ReadSamples(buf)
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 4 {
		t.Fatalf("ReadSamples() n = %d, want 4", n)
	}

	want := []float64{0, 0.5, -1, 32767.0 / 32768.0}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("buf[%d] = %v, want %v", i, buf[i], want[i])
		}
	}
}

func TestSource_ReadSamplesEOF(t *testing.T) {
	t.Parallel()

	src := &source{
		dec: &mockAiffReader{
			format:  &goaudio.Format{NumChannels: 1, SampleRate: 22050},
			samples: []int{1, 2, 3},
		},
		sampleRate: 22050,
		channels:   1,
	}

	buf := make([]float64, 8)
	n, err := src.ReadSamples(buf)
	if n != 3 {
		t.Errorf("ReadSamples() n = %d, want 3", n)
	}
	if err != io.EOF {
		t.Errorf("ReadSamples() error = %v, want io.EOF", err)
	}

	n, err = src.ReadSamples(buf)
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() after EOF = %d/%v, want 0/io.EOF", n, err)
	}
}

func TestSource_EmptyDst(t *testing.T) {
	t.Parallel()

	src := &source{
		dec: &mockAiffReader{
			format:  &goaudio.Format{NumChannels: 1, SampleRate: 8000},
			samples: []int{1},
		},
		sampleRate: 8000,
		channels:   1,
	}

	n, err := src.ReadSamples(nil)
	if n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d/%v, want 0/nil", n, err)
	}
}
