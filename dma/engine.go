// SPDX-License-Identifier: EPL-2.0

package dma

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ADC produces one receive half of interleaved S24 words per call.
type ADC interface {
	Fill(words []uint32) error
}

// DAC consumes one transmitted half of interleaved S24 words per call.
type DAC interface {
	Drain(words []uint32) error
}

// DACFunc adapts a function to DAC.
type DACFunc func(words []uint32) error

// Drain calls f(words).
func (f DACFunc) Drain(words []uint32) error { return f(words) }

// Engine is the simulated DMA controller driving a Transfer.
type Engine struct {
	t       *Transfer
	adc     ADC
	dac     DAC
	handler func()

	half   int
	primed [2]bool
	steps  uint64
}

// NewEngine returns an Engine moving data between adc, t and dac. A nil dac
// discards output.
func NewEngine(t *Transfer, adc ADC, dac DAC) *Engine {
	if dac == nil {
		dac = DACFunc(func([]uint32) error { return nil })
	}

	return &Engine{t: t, adc: adc, dac: dac}
}

// Init brings up a Transfer and its Engine for blockSize frames per half.
// It is the one-time hardware initialisation of the simulator.
func Init(blockSize int, adc ADC, dac DAC) (*Transfer, *Engine, error) {
	t, err := NewTransfer(blockSize)
	if err != nil {
		return nil, nil, err
	}

	return t, NewEngine(t, adc, dac), nil
}

// Bind registers the transfer-complete handler. It may be called once.
func (e *Engine) Bind(handler func()) error {
	if handler == nil {
		return fmt.Errorf("dma: bind: %w", ErrNotBound)
	}
	if e.handler != nil {
		return ErrAlreadyBound
	}

	e.handler = handler
	return nil
}

// Steps returns the number of half transfers performed.
func (e *Engine) Steps() uint64 { return e.steps }

// Step performs one half transfer and runs the handler. It returns io.EOF,
// after flushing pending output, once the ADC is exhausted.
func (e *Engine) Step() error {
	if e.handler == nil {
		return ErrNotBound
	}

	h := e.half
	fresh := true

	err := e.adc.Fill(e.t.halfOf(e.t.rx, h))
	switch {
	case err == nil:
	case errors.Is(err, ErrUnderrun):
		fresh = false
	case errors.Is(err, io.EOF):
		if ferr := e.Flush(); ferr != nil {
			return ferr
		}
		return io.EOF
	default:
		return fmt.Errorf("dma: adc: %w", err)
	}

	if err := e.drain(h); err != nil {
		return err
	}

	e.t.complete(h, fresh)
	e.handler()

	e.primed[h] = true
	e.half ^= 1
	e.steps++

	return nil
}

// Flush hands every transmit half written since its last drain to the DAC,
// oldest first.
func (e *Engine) Flush() error {
	for _, h := range [2]int{e.half, e.half ^ 1} {
		if err := e.drain(h); err != nil {
			return err
		}
	}

	e.t.release()
	return nil
}

func (e *Engine) drain(h int) error {
	if !e.primed[h] {
		return nil
	}

	words := e.t.halfOf(e.t.tx, h)
	if err := e.dac.Drain(words); err != nil {
		return fmt.Errorf("dma: dac: %w", err)
	}
	clear(words)
	e.primed[h] = false

	return nil
}

// Run steps the engine until the ADC is exhausted or ctx is done. With
// period > 0 one step happens per tick, pacing the stream like the real
// sample clock; otherwise it runs as fast as possible.
func (e *Engine) Run(ctx context.Context, period time.Duration) error {
	var tick <-chan time.Time
	if period > 0 {
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		if err := e.Step(); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}
