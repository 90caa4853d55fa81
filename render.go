// SPDX-License-Identifier: EPL-2.0

package dmaudio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/ik5/dmaudio/audio"
	"github.com/ik5/dmaudio/dma"
	"github.com/ik5/dmaudio/formats/wav"
	"github.com/ik5/dmaudio/internal/config"
	"github.com/ik5/dmaudio/internal/observe"
	"github.com/ik5/dmaudio/pipeline"
)

// RenderOptions controls an offline render. Zero values select the defaults
// of the device: 48 frame blocks at 48 kHz through the identity processor.
type RenderOptions struct {
	BlockSize  int
	SampleRate int

	// Processor is run on every block. Nil means pass-through.
	Processor pipeline.Processor

	// Logger receives pipeline diagnostics. Nil means slog.Default().
	Logger *slog.Logger

	// MeterProvider, when set, receives the pipeline and transfer metrics.
	MeterProvider metric.MeterProvider

	// Period paces the engine at one half per tick. Zero runs free.
	Period time.Duration

	// Taps receive every transmitted half after the WAV recorder, e.g. a
	// live monitor.
	Taps []dma.DAC
}

func (o RenderOptions) withDefaults() RenderOptions {
	if o.BlockSize == 0 {
		o.BlockSize = config.DefaultBlockSize
	}
	if o.SampleRate == 0 {
		o.SampleRate = config.DefaultSampleRate
	}
	if o.Processor == nil {
		o.Processor = pipeline.Identity
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Stats summarises a finished render.
type Stats struct {
	// Blocks is the number of transfer-complete events.
	Blocks uint64
	// Processed is the number of blocks that went through the processor.
	Processed uint64
	// Misses is the number of events that found no input.
	Misses uint64
	// Overruns counts halves completed before the previous one was read.
	Overruns uint64
	// Saturations counts output frames clamped by the S24 converter.
	Saturations uint64
	// Frames is the number of stereo frames written to the WAV file.
	Frames int
}

// Render runs src through the simulated converter and block pipeline and
// records the output to w as 24-bit stereo WAV.
//
// The source is resampled to opts.SampleRate and folded to stereo first.
// The final partial block is padded with silence, so Frames is always a
// multiple of the block size.
func Render(src audio.Source, w io.WriteSeeker, opts RenderOptions) (Stats, error) {
	return RenderContext(context.Background(), src, w, opts)
}

// RenderContext is Render with cancellation. On cancellation the WAV file is
// still finalised with whatever was recorded.
func RenderContext(ctx context.Context, src audio.Source, w io.WriteSeeker, opts RenderOptions) (Stats, error) {
	opts = opts.withDefaults()

	in := src
	if src.SampleRate() != opts.SampleRate {
		in = audio.NewResampler(in, opts.SampleRate)
	}

	adc, err := dma.NewSourceADC(audio.NewStereoMixer(in))
	if err != nil {
		return Stats{}, fmt.Errorf("render: %w", err)
	}

	rec := wav.NewRecorder(w, opts.SampleRate)
	tr, eng, err := dma.Init(opts.BlockSize, adc, dma.Tee(append([]dma.DAC{rec}, opts.Taps...)...))
	if err != nil {
		return Stats{}, fmt.Errorf("render: %w", err)
	}

	pipeOpts := []pipeline.Option{
		pipeline.WithProcessor(opts.Processor),
		pipeline.WithLogger(opts.Logger),
	}
	if opts.MeterProvider != nil {
		m, err := observe.NewMetrics(opts.MeterProvider)
		if err != nil {
			return Stats{}, fmt.Errorf("render: %w", err)
		}
		reg, err := m.ObserveTransfer(tr)
		if err != nil {
			return Stats{}, fmt.Errorf("render: %w", err)
		}
		defer reg.Unregister() //nolint:errcheck

		pipeOpts = append(pipeOpts, pipeline.WithMetrics(m))
	}

	p, err := pipeline.New(tr, opts.BlockSize, pipeOpts...)
	if err != nil {
		return Stats{}, fmt.Errorf("render: %w", err)
	}
	if err := p.Arm(eng); err != nil {
		return Stats{}, fmt.Errorf("render: %w", err)
	}

	runErr := eng.Run(ctx, opts.Period)
	closeErr := rec.Close()

	stats := Stats{
		Blocks:      eng.Steps(),
		Processed:   p.Blocks(),
		Misses:      p.Misses(),
		Overruns:    tr.Overruns(),
		Saturations: tr.Saturations(),
		Frames:      rec.Frames(),
	}

	if runErr != nil {
		return stats, fmt.Errorf("render: %w", runErr)
	}
	if closeErr != nil {
		return stats, fmt.Errorf("render: %w", closeErr)
	}

	opts.Logger.Debug("render finished",
		"blocks", stats.Blocks,
		"frames", stats.Frames,
		"overruns", stats.Overruns,
		"saturations", stats.Saturations)

	return stats, nil
}
