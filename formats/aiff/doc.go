// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff to parse the container and
// converts its integer PCM to float32 samples in [-1.0, 1.0).
//
// # Supported Formats
//
//   - PCM 16, 24 and 32-bit, big-endian as stored by AIFF
//   - Any channel count and sample rate
//
// AIFF-C (compressed) files are rejected. Files of another bit depth yield
// an error wrapping intpcm.ErrUnsupportedBitDepth.
//
// # Decoding AIFF Files
//
//	file, _ := os.Open("audio.aif")
//	source, err := aiff.Decoder{}.Decode(file)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    fmt.Println("Not an AIFF file")
//	}
//
// go-audio needs an io.ReadSeeker. Other readers are buffered in memory
// before decoding.
package aiff
