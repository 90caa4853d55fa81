// SPDX-License-Identifier: EPL-2.0

// Package dma simulates the double-buffered serial audio transfer used by
// the audio core.
//
// # Transfer
//
// A Transfer owns a receive buffer and a transmit buffer of interleaved S24
// words. Each buffer is split in two halves of one block. When the
// peripheral finishes a half it signals transfer-complete; from then until
// the next signal software may read that receive half and fill the matching
// transmit half:
//
//	var block [48]sample.Frame
//	if t.AcquireInput(block[:]) {
//	    for _, f := range block {
//	        _ = t.SubmitOutput(f)
//	    }
//	}
//
// # Engine
//
// Engine plays the part of the DMA controller and the codec. Each Step moves
// one half: it asks the ADC for fresh receive words, hands the transmit half
// written two steps earlier to the DAC, signals completion, and runs the
// bound handler synchronously, the way an interrupt preempts the idle loop.
// The handler therefore always runs on the Engine's goroutine and needs no
// locking.
//
// # Errors
//
// An ADC returning ErrUnderrun makes the Engine fire the interrupt without
// marking fresh data, which surfaces as a failed AcquireInput. io.EOF from
// the ADC ends the stream: the two pending transmit halves are flushed to
// the DAC in order and Run returns nil.
package dma
