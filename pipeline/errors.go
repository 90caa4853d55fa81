// SPDX-License-Identifier: EPL-2.0

package pipeline

import "errors"

var (
	// ErrInvalidBlockSize indicates a block size outside [1, config.BlockSizeMax]
	ErrInvalidBlockSize = errors.New("pipeline: invalid block size")

	// ErrAlreadyArmed indicates a second Arm on the same pipeline
	ErrAlreadyArmed = errors.New("pipeline: already armed")

	// ErrNilChannel indicates New was given no channel
	ErrNilChannel = errors.New("pipeline: nil channel")

	// ErrSubmitFailed wraps the channel error in the handler's panic value
	ErrSubmitFailed = errors.New("pipeline: submit output frame")
)
