// SPDX-License-Identifier: EPL-2.0

package pipeline

import "github.com/ik5/dmaudio/sample"

// Processor transforms a block in place. It runs inside the transfer-complete
// handler, so it must not block or allocate.
type Processor interface {
	Process(block []sample.Frame)
}

// ProcessorFunc adapts a function to Processor.
type ProcessorFunc func(block []sample.Frame)

// Process calls f(block).
func (f ProcessorFunc) Process(block []sample.Frame) { f(block) }

// Identity passes every frame through unchanged.
var Identity Processor = identity{}

type identity struct{}

func (identity) Process([]sample.Frame) {}
