// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio file decoding.
//
// This package uses github.com/jfreymuth/oggvorbis. Samples come out
// interleaved, [L0, R0, L1, R1, ...] for stereo, as float32 at the file's
// channel count and sample rate:
//
//	source, err := vorbis.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//	stereo := audio.NewStereoMixer(source)
//
// Reads are always a whole number of frames; a destination shorter than one
// frame reads nothing.
package vorbis
