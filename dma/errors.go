// SPDX-License-Identifier: EPL-2.0

package dma

import "errors"

var (
	// ErrInvalidBlockSize indicates a block size outside [1, config.BlockSizeMax]
	ErrInvalidBlockSize = errors.New("dma: invalid block size")

	// ErrOutputFull indicates the claimed transmit half already holds a block
	ErrOutputFull = errors.New("dma: output half full")

	// ErrNoOutputHalf indicates SubmitOutput without a successful AcquireInput
	ErrNoOutputHalf = errors.New("dma: no output half claimed")

	// ErrUnderrun is returned by an ADC that has no fresh data for this half
	ErrUnderrun = errors.New("dma: adc underrun")

	// ErrNotBound indicates the Engine has no handler
	ErrNotBound = errors.New("dma: no handler bound")

	// ErrAlreadyBound indicates a second Bind on the same Engine
	ErrAlreadyBound = errors.New("dma: handler already bound")

	// ErrNotStereo indicates an ADC source that is not two-channel
	ErrNotStereo = errors.New("dma: source must be stereo")
)
