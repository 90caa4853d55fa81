// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"

	"github.com/ik5/dmaudio/sample"
)

// FrameSink is a DAC that decodes every drained half back to frames.
type FrameSink struct {
	Frames []sample.Frame
	Drains int
}

// Drain decodes words, left then right, and appends them to Frames.
func (s *FrameSink) Drain(words []uint32) error {
	s.Drains++
	for i := 0; i+1 < len(words); i += 2 {
		s.Frames = append(s.Frames, sample.DecodeFrame(words[i:]))
	}
	return nil
}

// WordADC feeds scripted receive halves. Each entry of Halves fills one call;
// a nil entry reports underrun via Underrun. After the script it returns
// io.EOF.
type WordADC struct {
	Halves   [][]uint32
	Underrun error
}

// Fill copies the next scripted half into words.
func (a *WordADC) Fill(words []uint32) error {
	if len(a.Halves) == 0 {
		return io.EOF
	}

	next := a.Halves[0]
	a.Halves = a.Halves[1:]
	if next == nil {
		return a.Underrun
	}

	copy(words, next)
	return nil
}
