// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ik5/dmaudio/internal/config"
	"github.com/ik5/dmaudio/internal/observe"
	"github.com/ik5/dmaudio/sample"
)

// Channel is the transfer channel a pipeline exchanges blocks with.
type Channel interface {
	// AcquireInput decodes the completed input half into dst and reports
	// whether fresh data was available. On false dst is left untouched.
	AcquireInput(dst []sample.Frame) bool
	// SubmitOutput queues one processed frame for playback.
	SubmitOutput(f sample.Frame) error
}

// EventSource delivers transfer-complete events to one bound handler.
type EventSource interface {
	Bind(handler func()) error
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithProcessor replaces the Identity processor.
func WithProcessor(p Processor) Option {
	return func(pl *Pipeline) {
		if p != nil {
			pl.proc = p
		}
	}
}

// WithLogger sets the diagnostic logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(pl *Pipeline) {
		if l != nil {
			pl.log = l
		}
	}
}

// WithMetrics records cycle counters and handler latency to m.
func WithMetrics(m *observe.Metrics) Option {
	return func(pl *Pipeline) { pl.metrics = m }
}

// Pipeline is the per-event acquire, process and submit cycle.
type Pipeline struct {
	ch      Channel
	block   []sample.Frame
	proc    Processor
	log     *slog.Logger
	metrics *observe.Metrics
	armed   bool

	blocks uint64
	misses uint64
}

// New allocates a block of blockSize frames and takes ownership of ch.
func New(ch Channel, blockSize int, opts ...Option) (*Pipeline, error) {
	if ch == nil {
		return nil, ErrNilChannel
	}
	if blockSize < 1 || blockSize > config.BlockSizeMax {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBlockSize, blockSize)
	}

	p := &Pipeline{
		ch:    ch,
		block: make([]sample.Frame, blockSize),
		proc:  Identity,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// BlockSize returns the number of frames handled per event.
func (p *Pipeline) BlockSize() int { return len(p.block) }

// Blocks returns the number of blocks passed through. Like Misses it must be
// read from the context that runs the handler, or after it has stopped.
func (p *Pipeline) Blocks() uint64 { return p.blocks }

// Misses returns the number of events that found no input.
func (p *Pipeline) Misses() uint64 { return p.misses }

// Arm binds the pipeline to src. A pipeline can be armed once.
func (p *Pipeline) Arm(src EventSource) error {
	if p.armed {
		return ErrAlreadyArmed
	}
	if err := src.Bind(p.HandleTransferComplete); err != nil {
		return fmt.Errorf("pipeline: arm: %w", err)
	}

	p.armed = true
	p.log.Debug("pipeline armed", "block_size", len(p.block))
	return nil
}

// HandleTransferComplete runs one acquire, process and submit cycle.
// It panics if the channel rejects a frame.
func (p *Pipeline) HandleTransferComplete() {
	var start time.Time
	if p.metrics != nil {
		start = time.Now()
	}

	if !p.ch.AcquireInput(p.block) {
		p.misses++
		p.log.Error("Error reading data!")
		if p.metrics != nil {
			p.metrics.AcquireMisses.Add(context.Background(), 1)
		}
		return
	}

	p.proc.Process(p.block)

	for i := range p.block {
		if err := p.ch.SubmitOutput(p.block[i]); err != nil {
			panic(fmt.Errorf("%w %d of %d: %w", ErrSubmitFailed, i, len(p.block), err))
		}
	}

	p.blocks++
	if p.metrics != nil {
		p.metrics.BlocksProcessed.Add(context.Background(), 1)
		p.metrics.FramesSubmitted.Add(context.Background(), int64(len(p.block)))
		p.metrics.HandlerDuration.Record(context.Background(), time.Since(start).Seconds())
	}
}
