// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"

	"github.com/ik5/dmaudio/audio"
	"github.com/ik5/dmaudio/formats/internal/intpcm"
)

// wavFormatPCM is the WAVE_FORMAT_PCM tag.
const wavFormatPCM = 1

type Decoder struct{}

// Decode reads the WAV header from r and returns a Source over its PCM data.
// 16, 24 and 32-bit integer PCM are supported.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := intpcm.Seekable(r)
	if err != nil {
		return nil, fmt.Errorf("reading wav data: %w", err)
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}
	if dec.WavAudioFormat != wavFormatPCM {
		return nil, ErrOnlyPCMSupported
	}
	if dec.NumChans == 0 {
		return nil, ErrUnsupportedChannels
	}

	src, err := intpcm.NewSource(dec, int(dec.SampleRate), int(dec.NumChans), int(dec.BitDepth))
	if err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}
	return src, nil
}
