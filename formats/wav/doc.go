// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes WAV files through github.com/go-audio/wav.
//
// Decoder accepts integer PCM at 16, 24 or 32 bits with any channel count
// and sample rate, and yields float32 samples in [-1.0, 1.0):
//
//	src, err := wav.Decoder{}.Decode(file)
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    // not RIFF/WAVE
//	}
//
// Recorder is the capture side of the simulated converter. It takes the
// interleaved S24 words drained from a transmit half and appends them to a
// 24-bit stereo file:
//
//	rec := wav.NewRecorder(out, 48000)
//	defer rec.Close()
//	eng, _ := dma.NewEngine(tr, adc, rec)
//
// Close rewrites the RIFF and data chunk sizes, so the writer must support
// seeking.
package wav
