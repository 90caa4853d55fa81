// SPDX-License-Identifier: EPL-2.0

// Package audio provides the host-side streams that feed the simulated
// converter.
//
// Everything here implements or consumes Source, a pull stream of
// interleaved float32 samples in [-1.0, 1.0]:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    Close() error
//	}
//
// ReadSamples returns the number of float32 values written, not frames,
// and io.EOF once the stream is finished.
//
// # Resampling
//
// Resampler converts to the device rate with Catmull-Rom interpolation.
// When downsampling a one-pole low-pass runs ahead of the interpolator.
// Equal rates pass through untouched:
//
//	at48k := audio.NewResampler(source, 48000)
//
// # Stereo Folding
//
// The converter only accepts stereo. StereoMixer copies mono to both sides,
// passes stereo through and averages wider layouts into left (even
// channels) and right (odd channels):
//
//	stereo := audio.NewStereoMixer(at48k)
//
// # Format Registry
//
// Registry maps file extensions to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, err := registry.ForPath("take1.WAV")
//	if errors.Is(err, audio.ErrUnsupportedFormat) {
//	    // no decoder for this extension
//	}
package audio
