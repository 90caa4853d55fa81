// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"io"
)

// Source is the subset of audio.Source that ChunkedSource wraps.
type Source interface {
	SampleRate() int
	Channels() int
	ReadSamples(dst []float32) (int, error)
	Close() error
}

// ChunkedSource hands out at most Max samples per read, regardless of
// frame boundaries. With Stall set, every second read returns (0, nil).
type ChunkedSource struct {
	Source
	Max   int
	Stall bool

	calls   int
	pending []float32
	done    bool
}

// NewChunkedSource wraps src.
func NewChunkedSource(src Source, maxSamples int, stall bool) *ChunkedSource {
	return &ChunkedSource{Source: src, Max: maxSamples, Stall: stall}
}

func (c *ChunkedSource) ReadSamples(dst []float32) (int, error) {
	c.calls++
	if c.Stall && c.calls%2 == 0 {
		return 0, nil
	}

	if len(c.pending) == 0 && !c.done {
		buf := make([]float32, 64*c.Source.Channels())
		n, err := c.Source.ReadSamples(buf)
		c.pending = buf[:n]
		switch {
		case errors.Is(err, io.EOF):
			c.done = true
		case err != nil:
			return 0, err
		}
	}

	n := copy(dst[:min(len(dst), c.Max)], c.pending)
	c.pending = c.pending[n:]

	if c.done && len(c.pending) == 0 {
		return n, io.EOF
	}
	return n, nil
}
