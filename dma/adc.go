// SPDX-License-Identifier: EPL-2.0

package dma

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/dmaudio/audio"
	"github.com/ik5/dmaudio/internal/config"
	"github.com/ik5/dmaudio/sample"
)

// SourceADC feeds the receive buffer from an interleaved stereo float
// source, converting every sample to S24.
type SourceADC struct {
	src audio.Source
	buf []float32
	// filled counts the samples in buf not yet handed out. It may exceed
	// one half by a trailing sample of an unfinished frame.
	filled int
	eof    bool
}

// NewSourceADC wraps src, which must have two channels.
func NewSourceADC(src audio.Source) (*SourceADC, error) {
	if src.Channels() != 2 {
		return nil, fmt.Errorf("%w: got %d channels", ErrNotStereo, src.Channels())
	}

	return &SourceADC{src: src}, nil
}

// Fill reads len(words) samples from the source. Samples from a read that
// stalls before the half is complete are kept for the next call, which
// reports ErrUnderrun meanwhile. Only the final half after the source ends
// is padded with silence; the call after it returns io.EOF.
func (a *SourceADC) Fill(words []uint32) error {
	need := len(words)
	if need == 0 {
		return nil
	}
	a.grow(need + config.Channels - 1)

	for !a.eof && a.filled < need {
		// Reads stay frame aligned, so the source may hand over one sample
		// past the half.
		want := need - a.filled
		if rem := want % config.Channels; rem != 0 {
			want += config.Channels - rem
		}

		n, err := a.src.ReadSamples(a.buf[a.filled : a.filled+want])
		a.filled += n

		if errors.Is(err, io.EOF) {
			a.eof = true
			break
		}
		if err != nil {
			return fmt.Errorf("%w", err)
		}
		if n == 0 {
			return ErrUnderrun
		}
	}

	if a.filled == 0 {
		return io.EOF
	}

	if a.filled < need {
		clear(a.buf[a.filled:need])
	}
	for i, x := range a.buf[:need] {
		words[i] = sample.FromFloat32(x).Uint32()
	}

	carry := 0
	if a.filled > need {
		carry = copy(a.buf, a.buf[need:a.filled])
	}
	a.filled = carry

	return nil
}

func (a *SourceADC) grow(size int) {
	if len(a.buf) >= size {
		return
	}
	buf := make([]float32, size)
	copy(buf, a.buf[:a.filled])
	a.buf = buf
}
