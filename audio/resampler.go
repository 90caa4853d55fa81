// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/dmaudio/utils"
)

// Resampler streams src at a new sample rate using Catmull-Rom
// interpolation over a four-frame window. Channel count is preserved.
// When downsampling, input frames go through a one-pole low-pass first.
type Resampler struct {
	src      Source
	dstRate  int
	ratio    float64 // source frames per output frame
	channels int

	// window[0..3] hold frames t-1, t0, t+1, t+2; real marks which of them
	// came from the source rather than edge padding.
	window [4][]float32
	real   [4]bool
	pos    float64
	primed bool

	in    []float32
	inPos int
	inLen int
	eof   bool

	useFilter   bool
	filterAlpha float32
	filterState []float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	ratio := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:         src,
		dstRate:     dstRate,
		ratio:       ratio,
		channels:    channels,
		in:          make([]float32, 1024*max(channels, 1)),
		useFilter:   ratio > 1.0,
		filterAlpha: 0.5,
		filterState: make([]float32, channels),
	}

	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// readFrame copies the next source frame into dst. It reports false once
// the source is exhausted.
func (r *Resampler) readFrame(dst []float32) (bool, error) {
	for r.inLen-r.inPos < r.channels {
		if r.eof {
			return false, nil
		}

		// keep a partial frame, if any, at the front
		rest := copy(r.in, r.in[r.inPos:r.inLen])
		r.inPos, r.inLen = 0, rest

		n, err := r.src.ReadSamples(r.in[rest:])
		r.inLen += n
		if errors.Is(err, io.EOF) {
			r.eof = true
		} else if err != nil {
			return false, fmt.Errorf("%w", err)
		} else if n == 0 {
			return false, nil
		}
	}

	copy(dst, r.in[r.inPos:r.inPos+r.channels])
	r.inPos += r.channels

	if r.useFilter {
		for c := range dst {
			dst[c] = r.filterAlpha*dst[c] + (1-r.filterAlpha)*r.filterState[c]
			r.filterState[c] = dst[c]
		}
	}

	return true, nil
}

// shift advances the window by one frame, padding with the last real frame
// once the source runs dry.
func (r *Resampler) shift() error {
	first := r.window[0]
	copy(r.window[:], r.window[1:])
	copy(r.real[:], r.real[1:])
	r.window[3] = first

	ok, err := r.readFrame(r.window[3])
	if err != nil {
		return err
	}
	if !ok {
		copy(r.window[3], r.window[2])
	}
	r.real[3] = ok

	return nil
}

func (r *Resampler) prime() (bool, error) {
	ok, err := r.readFrame(r.window[1])
	if err != nil || !ok {
		return false, err
	}
	if r.useFilter {
		copy(r.filterState, r.window[1])
	}
	copy(r.window[0], r.window[1])
	r.real[1] = true

	for i := 2; i < 4; i++ {
		ok, err := r.readFrame(r.window[i])
		if err != nil {
			return false, err
		}
		if !ok {
			copy(r.window[i], r.window[i-1])
		}
		r.real[i] = ok
	}

	r.primed = true
	return true, nil
}

// ReadSamples produces dst samples at the target rate.
// dst length should be a multiple of r.channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if r.channels < 1 {
		return 0, ErrNoChannels
	}
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.ratio == 1 {
		return r.src.ReadSamples(dst)
	}

	if !r.primed {
		ok, err := r.prime()
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, io.EOF
		}
	}

	written := 0
	framesNeeded := len(dst) / r.channels

	for written < framesNeeded {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.shift(); err != nil {
				return written * r.channels, err
			}
		}

		if !r.real[1] {
			return written * r.channels, io.EOF
		}

		alpha := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = utils.CubicInterpolate(
				r.window[0][c], r.window[1][c], r.window[2][c], r.window[3][c], alpha,
			)
		}

		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}
