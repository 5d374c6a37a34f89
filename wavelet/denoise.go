// SPDX-License-Identifier: EPL-2.0

package wavelet

// Denoiser soft-thresholds wavelet detail coefficients to suppress
// broadband noise. It satisfies the stream package's block transform
// contract, so a single instance can be handed to a Processor.
//
// A Denoiser reuses its internal work buffer across calls and is not
// safe for concurrent use.
type Denoiser struct {
	levels int
	work   []float64
}

// NewDenoiser returns a Denoiser decomposing levels deep. Deeper
// decompositions remove lower-frequency noise but need longer blocks.
func NewDenoiser(levels int) *Denoiser {
	if levels < 1 {
		levels = 1
	}
	return &Denoiser{levels: levels}
}

// TransformBlock denoises one block. The input is left untouched; the
// returned slice belongs to the Denoiser and is valid until the next
// call.
func (d *Denoiser) TransformBlock(block []float64) ([]float64, error) {
	n := len(block)

	if cap(d.work) < n {
		d.work = make([]float64, n)
	}
	d.work = d.work[:n]
	copy(d.work, block)

	if err := Forward(d.work, d.levels); err != nil {
		return nil, err
	}

	// Noise floor comes from the finest band; the shrink applies to
	// every detail coefficient.
	t := UniversalThreshold(d.work[n/2:], n)
	SoftThreshold(d.work[n>>d.levels:], t)

	if err := Inverse(d.work, d.levels); err != nil {
		return nil, err
	}

	return d.work, nil
}
