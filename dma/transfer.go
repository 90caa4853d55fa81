// SPDX-License-Identifier: EPL-2.0

package dma

import (
	"sync/atomic"

	"github.com/ik5/dmaudio/internal/config"
	"github.com/ik5/dmaudio/sample"
)

// The pipeline consumes a Transfer through this method set.
var _ interface {
	AcquireInput(dst []sample.Frame) bool
	SubmitOutput(f sample.Frame) error
	Overruns() uint64
	Saturations() uint64
} = (*Transfer)(nil)

const noHalf = -1

// Transfer is a double-buffered stereo S24 transfer channel.
//
// Only the Engine and the single handler it runs touch a Transfer, so
// nothing but the fault counters is synchronised.
type Transfer struct {
	blockSize int

	rx []uint32
	tx []uint32

	// pending is the half signalled complete and not yet acquired.
	pending int
	// outHalf is the transmit half claimed by the last AcquireInput.
	outHalf int
	outPos  int

	overruns    atomic.Uint64
	saturations atomic.Uint64
}

// NewTransfer allocates both buffers for blockSize frames per half.
func NewTransfer(blockSize int) (*Transfer, error) {
	half := blockSize * config.Channels
	if blockSize < 1 || half > config.MaxTransferSize {
		return nil, ErrInvalidBlockSize
	}

	words := 2 * half
	return &Transfer{
		blockSize: blockSize,
		rx:        make([]uint32, words),
		tx:        make([]uint32, words),
		pending:   noHalf,
		outHalf:   noHalf,
	}, nil
}

// BlockSize returns the number of frames per half.
func (t *Transfer) BlockSize() int { return t.blockSize }

func (t *Transfer) halfOf(buf []uint32, h int) []uint32 {
	n := t.blockSize * config.Channels
	return buf[h*n : (h+1)*n]
}

// AcquireInput decodes the completed receive half into dst, left then
// right, and claims the matching transmit half. It returns false, leaving
// dst untouched, when no half is pending or dst is shorter than a block.
func (t *Transfer) AcquireInput(dst []sample.Frame) bool {
	if t.pending == noHalf || len(dst) < t.blockSize {
		return false
	}

	h := t.pending
	t.pending = noHalf
	sample.DecodeFrames(dst[:t.blockSize], t.halfOf(t.rx, h))

	t.outHalf = h
	t.outPos = 0

	return true
}

// SubmitOutput encodes f into the next slot of the claimed transmit half.
func (t *Transfer) SubmitOutput(f sample.Frame) error {
	if t.outHalf == noHalf {
		return ErrNoOutputHalf
	}
	if t.outPos >= t.blockSize {
		return ErrOutputFull
	}

	if sample.Saturates(f.Left) || sample.Saturates(f.Right) {
		t.saturations.Add(1)
	}

	sample.EncodeFrame(t.halfOf(t.tx, t.outHalf)[t.outPos*config.Channels:], f)
	t.outPos++

	return nil
}

// complete marks half h as finished by the peripheral. With fresh false the
// interrupt fired but the receive half holds nothing new. Either way any
// transmit half still claimed by software now belongs to the peripheral.
func (t *Transfer) complete(h int, fresh bool) {
	if t.pending != noHalf {
		t.overruns.Add(1)
		t.pending = noHalf
	}
	if fresh {
		t.pending = h
	}

	t.outHalf = noHalf
	t.outPos = 0
}

// release revokes the software claim on the transmit buffer.
func (t *Transfer) release() {
	t.outHalf = noHalf
	t.outPos = 0
}

// Overruns returns how many halves completed while the previous one was
// still unclaimed.
func (t *Transfer) Overruns() uint64 { return t.overruns.Load() }

// Saturations returns how many submitted frames had a channel clamped.
func (t *Transfer) Saturations() uint64 { return t.saturations.Load() }
