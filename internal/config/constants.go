// SPDX-License-Identifier: EPL-2.0

package config

// Block and buffer sizing. A DMA buffer holds two halves of up to
// MaxTransferSize words each.
const (
	BlockSizeMax     = 1024
	DefaultBlockSize = 48
	Channels         = 2
	MaxTransferSize  = BlockSizeMax * Channels
	DMABufferSize    = MaxTransferSize * 2
)

const DefaultSampleRate = 48_000
