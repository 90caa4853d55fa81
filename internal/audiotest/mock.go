// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides deterministic sources, sinks and channels for
// tests across the module.
package audiotest

import (
	"io"
	"math"
)

// Waveform returns the value of channel ch at frame i.
type Waveform func(i, ch int) float32

// MockSource is an audio.Source of frames generated on demand. It does not
// import the audio package so that audio's own tests can use it.
type MockSource struct {
	rate     int
	channels int
	frames   int // length of the stream
	next     int // next frame to generate
	wave     Waveform
}

// NewMockSource returns a source of frames frames computed by wave.
func NewMockSource(sampleRate, channels, frames int, wave Waveform) *MockSource {
	return &MockSource{rate: sampleRate, channels: channels, frames: frames, wave: wave}
}

// NewSilentSource yields zeros.
func NewSilentSource(sampleRate, channels, frames int) *MockSource {
	return NewConstantSource(sampleRate, channels, frames, 0)
}

// NewSineSource yields the same sine of freq Hz on every channel.
func NewSineSource(sampleRate, channels, frames int, freq float64) *MockSource {
	step := 2 * math.Pi * freq / float64(sampleRate)
	return NewMockSource(sampleRate, channels, frames, func(i, _ int) float32 {
		return float32(math.Sin(step * float64(i)))
	})
}

// NewRampSource yields a value that is unique per sample: channel c of
// frame i is (i*channels+c+1)/scale.
func NewRampSource(sampleRate, channels, frames int, scale float32) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(i, c int) float32 {
		return float32(i*channels+c+1) / scale
	})
}

// NewConstantSource yields v on every channel.
func NewConstantSource(sampleRate, channels, frames int, v float32) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) float32 { return v })
}

func (m *MockSource) SampleRate() int { return m.rate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) Close() error    { return nil }

// Rewind starts the stream over.
func (m *MockSource) Rewind() { m.next = 0 }

// ReadSamples writes whole frames only. The read that reaches the end of
// the stream returns io.EOF along with its data.
func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.next >= m.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/m.channels, m.frames-m.next)
	for f := range n {
		for c := range m.channels {
			dst[f*m.channels+c] = m.wave(m.next+f, c)
		}
	}
	m.next += n

	if m.next >= m.frames {
		return n * m.channels, io.EOF
	}
	return n * m.channels, nil
}
