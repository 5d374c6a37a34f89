// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// BlockTransform is the external per-window processing step. It
// receives a window-length block and returns a block of the same
// length. It may modify and return the input slice. The processor
// treats it as a black box; any error it returns is terminal for the
// stream.
type BlockTransform interface {
	TransformBlock(block []float64) ([]float64, error)
}

// BlockTransformFunc adapts a plain function to BlockTransform.
type BlockTransformFunc func(block []float64) ([]float64, error)

func (f BlockTransformFunc) TransformBlock(block []float64) ([]float64, error) {
	return f(block)
}

// Sink receives the reconciled output blocks. The emitted slice is only
// valid for the duration of the call; implementations that retain data
// must copy. Delivery and fan-out semantics are the sink's concern.
type Sink interface {
	Emit(block []float64) error
}

// SinkFunc adapts a plain function to Sink.
type SinkFunc func(block []float64) error

func (f SinkFunc) Emit(block []float64) error { return f(block) }

// FailableSink is a Sink that wants to be told when the stream
// terminates with an error, so it can close its downstream channel
// exceptionally.
type FailableSink interface {
	Sink
	Fail(err error)
}

// Processor lifecycle states. The transition open -> closing -> closed
// happens at most once; failed is terminal like closed but preserves
// the cause.
const (
	stateOpen int32 = iota
	stateClosing
	stateClosed
	stateFailed
)

// Backoff bounds for the full-ring-no-window path. Under the validated
// sizing invariant (capacity >= 2x window) a full ring always contains
// a window, so this path only triggers on a broken configuration; the
// bound turns what would be a livelock into a diagnosable error.
const (
	backoffInitial     = time.Microsecond
	backoffMax         = time.Millisecond
	backoffMaxAttempts = 10
)

// Processor accepts samples, dispatches full windows through the block
// transform, reconciles the overlapping output and emits it to the
// sink. All of that happens inline on the calling goroutine: there is
// no background work, and none of the operations block indefinitely.
//
// A processor instance exclusively owns its ring, view, reconciler and
// controller; it is not safe for concurrent use.
type Processor struct {
	cfg   Config
	id    string
	ring  *SampleRing
	view  *WindowedView
	recon *OverlapReconciler
	ctrl  *CapacityController // nil when adaptive resize is disabled
	tf    BlockTransform
	sink  Sink

	state   atomic.Int32
	failErr error

	samplesIn  uint64
	blocksOut  uint64
	totalBlock time.Duration
	maxBlock   time.Duration
	started    time.Time

	now func() time.Time
}

// NewProcessor validates cfg and builds a processor around tf and sink.
// Validation failures are fatal: no partially-constructed processor is
// returned.
func NewProcessor(cfg Config, tf BlockTransform, sink Sink) (*Processor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if tf == nil {
		return nil, ErrNilTransform
	}
	if sink == nil {
		return nil, ErrNilSink
	}

	ring, err := NewSampleRing(cfg.InitialCapacity())
	if err != nil {
		return nil, err
	}

	view, err := NewWindowedView(ring, cfg.WindowSize, cfg.HopSize)
	if err != nil {
		return nil, err
	}

	recon, err := NewOverlapReconciler(cfg.WindowSize, cfg.HopSize, cfg.Window, cfg.TukeyTaper)
	if err != nil {
		return nil, err
	}

	p := &Processor{
		cfg:     cfg,
		id:      uuid.NewString(),
		ring:    ring,
		view:    view,
		recon:   recon,
		tf:      tf,
		sink:    sink,
		started: time.Now(),
		now:     time.Now,
	}

	if cfg.AdaptiveResize {
		ctrl, err := NewCapacityController(
			ring,
			cfg.MinCapacity(), cfg.MaxCapacity(),
			cfg.HighUtilization, cfg.LowUtilization,
			cfg.CheckInterval(),
		)
		if err != nil {
			return nil, err
		}
		p.ctrl = ctrl
	}

	return p, nil
}

// ID returns the processor's telemetry identity.
func (p *Processor) ID() string { return p.id }

// Process accepts one sample and dispatches any windows that become
// ready. After Close it fails with ErrClosed; after a terminal failure
// it returns the original cause.
func (p *Processor) Process(sample float64) error {
	if err := p.ensureOpen(); err != nil {
		return err
	}
	return p.ingest(sample)
}

// ProcessBatch accepts samples in order, dispatching windows as they
// become ready. On error, samples before the failure point have been
// ingested.
func (p *Processor) ProcessBatch(samples []float64) error {
	if err := p.ensureOpen(); err != nil {
		return err
	}

	for _, s := range samples {
		if err := p.ingest(s); err != nil {
			return err
		}
	}
	return nil
}

// IsReady reports whether a full window is buffered.
func (p *Processor) IsReady() bool { return p.view.HasWindow() }

// BufferLevel returns the ring utilization in [0, 1].
func (p *Processor) BufferLevel() float64 { return p.ring.Utilization() }

// Stats returns a snapshot of the cumulative counters.
func (p *Processor) Stats() Statistics {
	uptime := p.now().Sub(p.started)

	var avg time.Duration
	if p.blocksOut > 0 {
		avg = p.totalBlock / time.Duration(p.blocksOut)
	}

	return Statistics{
		ProcessorID:      p.id,
		SamplesProcessed: p.samplesIn,
		BlocksEmitted:    p.blocksOut,
		AvgBlockTime:     avg,
		MaxBlockTime:     p.maxBlock,
		Throughput:       p.throughput(uptime),
		BufferLevel:      p.ring.Utilization(),
		Capacity:         p.ring.Cap(),
		Uptime:           uptime,
	}
}

// Flush dispatches every buffered whole window, then zero-pads and
// dispatches any partial remainder. The ring is empty afterwards.
//
// The padded remainder goes through the same overlap-add path as a
// regular window, which emits its hop-size prefix only: up to
// windowSize-hopSize trailing samples of the remainder never reach
// the sink. Callers needing exact sample counts should feed input in
// multiples of the hop size.
func (p *Processor) Flush() error {
	switch p.state.Load() {
	case stateOpen, stateClosing:
	case stateFailed:
		return p.failErr
	default:
		return ErrClosed
	}
	return p.flush()
}

// Close flushes buffered samples, releases the scratch block and moves
// the processor to its terminal state. It is idempotent: the transition
// happens at most once and later calls return nil without effect.
// Mutating calls after Close fail with ErrClosed.
func (p *Processor) Close() error {
	if !p.state.CompareAndSwap(stateOpen, stateClosing) {
		return nil
	}

	err := p.flush()
	p.view.release()
	p.state.CompareAndSwap(stateClosing, stateClosed)
	return err
}

func (p *Processor) ensureOpen() error {
	switch p.state.Load() {
	case stateOpen:
		return nil
	case stateFailed:
		return p.failErr
	default:
		return ErrClosed
	}
}

// ingest writes one sample, draining ready windows to make room when
// the ring is full. A full ring without a ready window signals a broken
// sizing invariant; a bounded exponential backoff re-checks before the
// stream fails with ErrRingDeadlock.
func (p *Processor) ingest(sample float64) error {
	if p.ring.Offer(sample) {
		p.samplesIn++
		return p.drain()
	}

	for p.view.HasWindow() {
		if err := p.dispatch(); err != nil {
			return err
		}
		if p.ring.Offer(sample) {
			p.samplesIn++
			return p.drain()
		}
	}

	delay := backoffInitial
	for attempt := 0; attempt < backoffMaxAttempts; attempt++ {
		time.Sleep(delay)
		delay *= 2
		if delay > backoffMax {
			delay = backoffMax
		}

		if p.view.HasWindow() {
			if err := p.dispatch(); err != nil {
				return err
			}
		}
		if p.ring.Offer(sample) {
			p.samplesIn++
			return p.drain()
		}
	}

	return p.fail(fmt.Errorf("%w after %d attempts (capacity %d, window %d)",
		ErrRingDeadlock, backoffMaxAttempts, p.ring.Cap(), p.cfg.WindowSize))
}

// drain dispatches windows while they are ready, keeping emission in
// strict arrival order with one hop of new samples per block.
func (p *Processor) drain() error {
	for p.view.HasWindow() {
		if err := p.dispatch(); err != nil {
			return err
		}
	}
	return nil
}

// dispatch extracts the next window, runs it through the transform,
// reconciler and sink, and advances the read cursor by the hop size.
// The cursor only advances after the block has been fully emitted.
func (p *Processor) dispatch() error {
	block, ok := p.view.Extract()
	if !ok {
		return nil
	}
	return p.dispatchBlock(block)
}

func (p *Processor) dispatchBlock(block []float64) error {
	start := p.now()

	out, err := p.tf.TransformBlock(block)
	if err != nil {
		return p.fail(fmt.Errorf("transform block: %w", err))
	}

	merged, err := p.recon.Reconcile(out)
	if err != nil {
		return p.fail(fmt.Errorf("reconcile block: %w", err))
	}

	if err := p.sink.Emit(merged); err != nil {
		return p.fail(fmt.Errorf("emit block: %w", err))
	}

	p.view.Advance()

	elapsed := p.now().Sub(start)
	p.blocksOut++
	p.totalBlock += elapsed
	if elapsed > p.maxBlock {
		p.maxBlock = elapsed
	}

	p.maybeTick()
	return nil
}

// flush drains whole windows, then zero-pads a final partial window if
// samples remain.
func (p *Processor) flush() error {
	if err := p.drain(); err != nil {
		return err
	}

	n := p.ring.Len()
	if n == 0 {
		return nil
	}

	scratch := p.view.scratch
	if scratch == nil {
		return ErrClosed
	}
	p.ring.CopyOut(scratch[:n], 0)
	for i := n; i < len(scratch); i++ {
		scratch[i] = 0
	}
	p.ring.Clear()

	return p.dispatchBlock(scratch)
}

// maybeTick feeds the capacity controller; the controller itself gates
// on the configured interval.
func (p *Processor) maybeTick() {
	if p.ctrl == nil {
		return
	}

	now := p.now()
	p.ctrl.Tick(now, p.ring.Utilization(), p.throughput(now.Sub(p.started)))
}

func (p *Processor) throughput(elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(p.samplesIn) / elapsed.Seconds()
}

// fail records the terminal cause, notifies a failable sink and moves
// the processor to the failed state. The stream does not recover; every
// later mutating call returns the same cause.
func (p *Processor) fail(err error) error {
	p.failErr = err
	p.state.Store(stateFailed)
	if fs, ok := p.sink.(FailableSink); ok {
		fs.Fail(err)
	}
	return err
}
