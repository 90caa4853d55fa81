// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3, which always produces
// 16-bit little-endian stereo PCM. The Source returned by Decoder converts
// it to interleaved float32 samples in [-1.0, 1.0) at the file's sample rate:
//
//	source, err := mp3.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//	// Bring it to the device rate before it reaches the converter.
//	in := audio.NewStereoMixer(audio.NewResampler(source, 48000))
//
// MP3 writing is not supported.
package mp3
