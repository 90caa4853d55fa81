// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/dmaudio/sample"
)

// RecordBitDepth is the sample width written by Recorder.
const RecordBitDepth = 24

// Recorder writes drained transmit halves to a 24-bit stereo PCM WAV file.
// It implements dma.DAC. Close must be called to finalise the header.
type Recorder struct {
	enc    *wav.Encoder
	buf    *goaudio.IntBuffer
	frames int
}

// NewRecorder starts a WAV stream on w at sampleRate.
func NewRecorder(w io.WriteSeeker, sampleRate int) *Recorder {
	return &Recorder{
		enc: wav.NewEncoder(w, sampleRate, RecordBitDepth, 2, wavFormatPCM),
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: 2, SampleRate: sampleRate},
			SourceBitDepth: RecordBitDepth,
		},
	}
}

// Drain writes interleaved S24 words. Upper bytes of each word are ignored.
func (r *Recorder) Drain(words []uint32) error {
	if cap(r.buf.Data) < len(words) {
		r.buf.Data = make([]int, len(words))
	}
	r.buf.Data = r.buf.Data[:len(words)]

	for i, w := range words {
		r.buf.Data[i] = int(sample.FromUint32(w).Value())
	}

	if err := r.enc.Write(r.buf); err != nil {
		return fmt.Errorf("writing wav: %w", err)
	}
	r.frames += len(words) / 2

	return nil
}

// Frames returns the number of stereo frames written so far.
func (r *Recorder) Frames() int { return r.frames }

// Close writes the final chunk sizes.
func (r *Recorder) Close() error {
	if err := r.enc.Close(); err != nil {
		return fmt.Errorf("writing wav: %w", err)
	}
	return nil
}
