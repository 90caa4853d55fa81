// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"

	"github.com/ik5/dmaudio/sample"
)

// ErrChannelFull is returned by Channel.SubmitOutput past its capacity.
var ErrChannelFull = errors.New("audiotest: channel full")

// Channel is a scripted transfer channel. Each AcquireInput pops the next
// entry of Blocks; a nil entry means "no fresh data". Every call is recorded
// in Calls so tests can check ordering.
type Channel struct {
	Blocks [][]sample.Frame

	// Capacity limits SubmitOutput; zero means unlimited.
	Capacity int

	Submitted []sample.Frame
	Calls     []string
}

// AcquireInput copies the next scripted block into dst.
func (c *Channel) AcquireInput(dst []sample.Frame) bool {
	c.Calls = append(c.Calls, "acquire")
	if len(c.Blocks) == 0 {
		return false
	}

	next := c.Blocks[0]
	c.Blocks = c.Blocks[1:]
	if next == nil {
		return false
	}

	copy(dst, next)
	return true
}

// SubmitOutput records f.
func (c *Channel) SubmitOutput(f sample.Frame) error {
	c.Calls = append(c.Calls, "submit")
	if c.Capacity > 0 && len(c.Submitted) >= c.Capacity {
		return ErrChannelFull
	}

	c.Submitted = append(c.Submitted, f)
	return nil
}

// RampBlock returns n frames tagged with distinct values: frame i is
// (2i+1, 2i+2) / scale.
func RampBlock(n int, scale float32) []sample.Frame {
	block := make([]sample.Frame, n)
	for i := range block {
		block[i] = sample.Frame{
			Left:  float32(2*i+1) / scale,
			Right: float32(2*i+2) / scale,
		}
	}
	return block
}

// EventSource is a manually fired transfer-complete source.
type EventSource struct {
	handler func()
	Binds   int
}

// Bind stores handler.
func (e *EventSource) Bind(handler func()) error {
	e.Binds++
	e.handler = handler
	return nil
}

// Fire invokes the bound handler n times.
func (e *EventSource) Fire(n int) {
	for range n {
		e.handler()
	}
}
