// SPDX-License-Identifier: EPL-2.0

// Package dmaudio is the real-time stereo block I/O core of a digital audio
// device, together with a host-side simulator of its DMA-fed converter.
//
// On the device a serial audio peripheral fills one half of a receive
// buffer while software works on the other. Each time a half completes an
// interrupt fires and a block handler acquires the fresh frames, processes
// them and submits them for transmission before the next half completes.
// The packages split that flow as follows:
//
//   - sample: the S24 hardware sample format and stereo frames
//   - pipeline: the block handler (acquire, process, submit)
//   - dma: the double-buffered transfer channel and simulated peripheral
//   - audio: host-side sources, resampling and stereo folding
//   - formats/...: WAV, AIFF, MP3 and Ogg Vorbis decoders, and a 24-bit
//     WAV recorder used as the simulated DAC
//
// # Quick Start
//
// Render pushes a decoded file through the whole chain offline and records
// what the device would have played:
//
//	src, _ := mp3.Decoder{}.Decode(in)
//	out, _ := os.Create("out.wav")
//	stats, err := dmaudio.Render(src, out, dmaudio.RenderOptions{})
//
// The zero RenderOptions resample to 48 kHz and move 48 frame blocks, one
// millisecond per block, through the pass-through processor.
//
// # Building the Chain by Hand
//
//	adc, _ := dma.NewSourceADC(audio.NewStereoMixer(audio.NewResampler(src, 48000)))
//	tr, eng, _ := dma.Init(48, adc, rec)
//	p, _ := pipeline.New(tr, 48)
//	_ = p.Arm(eng)
//	err := eng.Run(ctx, time.Millisecond)
//
// Output submitted by the handler for one half reaches the DAC two halves
// later; when the input ends the engine flushes both pending halves in order.
//
// The cmd/dmaudio program wraps the same chain with YAML configuration,
// real-time pacing, live monitoring and Prometheus metrics.
package dmaudio
