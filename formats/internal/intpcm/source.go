// SPDX-License-Identifier: EPL-2.0

// Package intpcm adapts the integer PCM readers of go-audio to
// audio.Source.
package intpcm

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/dmaudio/sample"
)

// ErrUnsupportedBitDepth indicates a PCM width other than 16, 24 or 32.
var ErrUnsupportedBitDepth = errors.New("unsupported PCM bit depth")

// Reader is the part of the go-audio wav and aiff decoders used here.
type Reader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source converts integer PCM to float32 samples in [-1, 1).
type Source struct {
	dec        Reader
	sampleRate int
	channels   int
	bitDepth   int
	intBuf     *goaudio.IntBuffer
}

// ValidBitDepth reports whether bits is supported.
func ValidBitDepth(bits int) bool {
	switch bits {
	case 16, 24, 32:
		return true
	}
	return false
}

// NewSource wraps dec. bitDepth must satisfy ValidBitDepth.
func NewSource(dec Reader, sampleRate, channels, bitDepth int) (*Source, error) {
	if !ValidBitDepth(bitDepth) {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	return &Source{
		dec:        dec,
		sampleRate: sampleRate,
		channels:   channels,
		bitDepth:   bitDepth,
	}, nil
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BitDepth() int   { return s.bitDepth }
func (s *Source) Close() error    { return nil }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, len(dst)),
			Format: s.dec.Format(),
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil {
			return 0, err
		}
		return 0, io.EOF
	}

	data := s.intBuf.Data[:n]
	switch s.bitDepth {
	case 24:
		for i, v := range data {
			dst[i] = sample.FromInt32(int32(v)).Float32()
		}
	default:
		scale := 1.0 / float32(int64(1)<<(s.bitDepth-1))
		for i, v := range data {
			dst[i] = float32(v) * scale
		}
	}

	// A short read without an error is the end of the data chunk.
	if n < len(dst) && err == nil {
		return n, io.EOF
	}

	return n, err
}

// Seekable returns r itself when it can seek, otherwise an in-memory copy.
func Seekable(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffering input: %w", err)
	}
	return bytes.NewReader(data), nil
}
