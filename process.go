// SPDX-License-Identifier: EPL-2.0

package audstream

import (
	"fmt"
	"io"

	"github.com/ik5/audstream/pcm"
	"github.com/ik5/audstream/stream"
)

// Run feeds every sample of src through a windowed Processor built from
// cfg and tf, and collects the reconstructed output.
//
// The pipeline is:
//  1. Read interleaved float64 samples from src
//  2. Buffer them through the processor's sample ring
//  3. Apply tf to each extracted window
//  4. Overlap-add the transformed windows back into a sample stream
//
// Run closes the processor when the source is exhausted, which flushes
// any buffered partial window (zero-padded) into the output. Multi-
// channel sources are processed as a flat interleaved stream; callers
// that want per-channel treatment should collapse to mono first, e.g.
// with pcm.NewMonoMixer.
//
// Example:
//
//	src, _ := decoder.Decode(file)
//	cfg := stream.DefaultConfig()
//	out, err := audstream.Run(src, cfg, wavelet.NewDenoiser(4))
func Run(src pcm.Source, cfg stream.Config, tf stream.BlockTransform) ([]float64, error) {
	out := make([]float64, 0, cfg.WindowSize*8)
	collector := stream.SinkFunc(func(block []float64) error {
		out = append(out, block...)
		return nil
	})

	p, err := stream.NewProcessor(cfg, tf, collector)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	buf := make([]float64, 4096)

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			if perr := p.ProcessBatch(buf[:n]); perr != nil {
				return nil, fmt.Errorf("%w", perr)
			}
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}

	if err := p.Close(); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return out, nil
}

// RunToPCM16 is Run followed by a batch conversion to 16-bit PCM. The
// returned rate is the source sample rate, ready to hand to a WAV
// writer.
func RunToPCM16(src pcm.Source, cfg stream.Config, tf stream.BlockTransform) ([]int16, int, error) {
	out, err := Run(src, cfg, tf)
	if err != nil {
		return nil, 0, err
	}

	return pcm.Float64ToInt16Slice(out, nil), src.SampleRate(), nil
}
