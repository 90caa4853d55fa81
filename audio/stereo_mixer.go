// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// StereoMixer presents any source as interleaved stereo. Mono is copied to
// both sides; with more than two channels even-numbered channels are
// averaged into left and odd-numbered ones into right.
type StereoMixer struct {
	src Source
	tmp []float32
}

func NewStereoMixer(src Source) *StereoMixer {
	return &StereoMixer{
		src: src,
		tmp: make([]float32, 4096),
	}
}

func (m *StereoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *StereoMixer) Channels() int   { return 2 }
func (m *StereoMixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// ReadSamples fills dst with interleaved stereo. A stereo source is read
// directly and may return any count; otherwise len(dst) must be even.
func (m *StereoMixer) ReadSamples(dst []float32) (int, error) {
	channels := m.src.Channels()
	switch {
	case channels == 2:
		return m.src.ReadSamples(dst)
	case channels < 1:
		return 0, ErrNoChannels
	}

	if len(dst)%2 != 0 {
		return 0, ErrInvalidDstSize
	}
	if len(dst) == 0 {
		return 0, nil
	}

	frames := len(dst) / 2
	samplesNeeded := frames * channels
	if cap(m.tmp) < samplesNeeded {
		m.tmp = make([]float32, samplesNeeded)
	}
	m.tmp = m.tmp[:samplesNeeded]

	n, err := m.src.ReadSamples(m.tmp)
	got := n / channels

	if channels == 1 {
		for f := range got {
			dst[f<<1] = m.tmp[f]
			dst[f<<1+1] = m.tmp[f]
		}
		return got * 2, err
	}

	leftN := float32((channels + 1) / 2)
	rightN := float32(channels / 2)
	for f := range got {
		frame := m.tmp[f*channels : (f+1)*channels]
		var l, r float32
		for c, v := range frame {
			if c&1 == 0 {
				l += v
			} else {
				r += v
			}
		}
		dst[f<<1] = l / leftN
		dst[f<<1+1] = r / rightN
	}

	return got * 2, err
}
