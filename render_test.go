// SPDX-License-Identifier: EPL-2.0

package dmaudio

import (
	"context"
	"errors"
	"io"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/ik5/dmaudio/dma"
	"github.com/ik5/dmaudio/formats/wav"
	"github.com/ik5/dmaudio/internal/audiotest"
	"github.com/ik5/dmaudio/internal/observe"
	"github.com/ik5/dmaudio/pipeline"
	"github.com/ik5/dmaudio/sample"
)

func quietOptions(blockSize, rate int) RenderOptions {
	return RenderOptions{BlockSize: blockSize, SampleRate: rate, Logger: observe.Discard()}
}

// readWAV decodes a rendered file back into stereo frames.
func readWAV(t *testing.T, out *audiotest.SeekBuffer) (int, []sample.Frame) {
	t.Helper()

	src, err := wav.Decoder{}.Decode(out.Reader())
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if src.Channels() != 2 {
		t.Fatalf("rendered %d channels, want 2", src.Channels())
	}

	var samples []float32
	buf := make([]float32, 1024)
	for {
		n, err := src.ReadSamples(buf)
		samples = append(samples, buf[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	frames := make([]sample.Frame, len(samples)/2)
	for i := range frames {
		frames[i] = sample.Frame{Left: samples[2*i], Right: samples[2*i+1]}
	}
	return src.SampleRate(), frames
}

func TestRender_PassThrough(t *testing.T) {
	t.Parallel()

	const frames, block = 10, 4
	src := audiotest.NewRampSource(48000, 2, frames, 64)
	out := &audiotest.SeekBuffer{}

	stats, err := Render(src, out, quietOptions(block, 48000))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	want := Stats{Blocks: 3, Processed: 3, Frames: 12}
	if stats != want {
		t.Errorf("Render() stats = %+v, want %+v", stats, want)
	}

	rate, got := readWAV(t, out)
	if rate != 48000 {
		t.Errorf("rendered rate = %d, want 48000", rate)
	}
	if len(got) != 12 {
		t.Fatalf("rendered %d frames, want 12", len(got))
	}

	ramp := audiotest.RampBlock(frames, 64)
	for i := range ramp {
		if got[i] != ramp[i] {
			t.Errorf("frame %d = %v, want %v", i, got[i], ramp[i])
		}
	}
	for i := frames; i < len(got); i++ {
		if got[i] != (sample.Frame{}) {
			t.Errorf("padding frame %d = %v, want silence", i, got[i])
		}
	}
}

func TestRender_MonoResampled(t *testing.T) {
	t.Parallel()

	// Half a second of mono at 44.1 kHz.
	src := audiotest.NewSineSource(44100, 1, 22050, 440)
	out := &audiotest.SeekBuffer{}

	stats, err := Render(src, out, quietOptions(48, 48000))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if stats.Frames%48 != 0 {
		t.Errorf("Frames = %d, want a multiple of the block size", stats.Frames)
	}
	if stats.Frames < 23900 || stats.Frames > 24100 {
		t.Errorf("Frames = %d, want about 24000", stats.Frames)
	}

	_, got := readWAV(t, out)
	for i, f := range got {
		if f.Left != f.Right {
			t.Fatalf("frame %d = %v, want mono duplicated to both sides", i, f)
		}
	}
}

func TestRender_Saturation(t *testing.T) {
	t.Parallel()

	gain := pipeline.ProcessorFunc(func(block []sample.Frame) {
		for i := range block {
			block[i].Left *= 4
			block[i].Right *= 4
		}
	})

	src := audiotest.NewConstantSource(48000, 2, 8, 0.5)
	out := &audiotest.SeekBuffer{}
	opts := quietOptions(8, 48000)
	opts.Processor = gain

	stats, err := Render(src, out, opts)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if stats.Saturations != 8 {
		t.Errorf("Saturations = %d, want 8", stats.Saturations)
	}

	rail := sample.FromFloat32(sample.FBipMax).Float32()
	_, got := readWAV(t, out)
	for i, f := range got {
		if f.Left != rail || f.Right != rail {
			t.Errorf("frame %d = %v, want both channels at %v", i, f, rail)
		}
	}
}

func TestRender_InvalidBlockSize(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(48000, 2, 100)

	_, err := Render(src, &audiotest.SeekBuffer{}, quietOptions(-1, 48000))
	if !errors.Is(err, dma.ErrInvalidBlockSize) {
		t.Errorf("Render() error = %v, want %v", err, dma.ErrInvalidBlockSize)
	}
}

func TestRenderContext_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := audiotest.NewSilentSource(48000, 2, 48000)
	out := &audiotest.SeekBuffer{}

	stats, err := RenderContext(ctx, src, out, quietOptions(48, 48000))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("RenderContext() error = %v, want %v", err, context.Canceled)
	}
	if stats.Blocks != 0 {
		t.Errorf("Blocks = %d, want 0", stats.Blocks)
	}
	if len(out.Bytes()) == 0 {
		t.Error("nothing written, want a finalised WAV header")
	}
}

func TestRender_Metrics(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	opts := quietOptions(16, 48000)
	opts.MeterProvider = mp

	src := audiotest.NewSilentSource(48000, 2, 64)
	if _, err := Render(src, &audiotest.SeekBuffer{}, opts); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	want := map[string]int64{
		"dmaudio.blocks.processed": 4,
		"dmaudio.frames.submitted": 64,
	}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			w, ok := want[m.Name]
			if !ok {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok || len(sum.DataPoints) != 1 {
				t.Errorf("%s: unexpected data %T", m.Name, m.Data)
				continue
			}
			if got := sum.DataPoints[0].Value; got != w {
				t.Errorf("%s = %d, want %d", m.Name, got, w)
			}
			delete(want, m.Name)
		}
	}
	for name := range want {
		t.Errorf("metric %s not reported", name)
	}
}

func TestRender_Taps(t *testing.T) {
	t.Parallel()

	tap := &audiotest.FrameSink{}
	opts := quietOptions(4, 48000)
	opts.Taps = []dma.DAC{tap}

	src := audiotest.NewRampSource(48000, 2, 8, 32)
	if _, err := Render(src, &audiotest.SeekBuffer{}, opts); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if tap.Drains != 2 {
		t.Errorf("tap drained %d halves, want 2", tap.Drains)
	}
	want := audiotest.RampBlock(8, 32)
	if len(tap.Frames) != len(want) {
		t.Fatalf("tap saw %d frames, want %d", len(tap.Frames), len(want))
	}
	for i := range want {
		if tap.Frames[i] != want[i] {
			t.Errorf("tap frame %d = %v, want %v", i, tap.Frames[i], want[i])
		}
	}
}

func TestRender_StallingSourceStaysContiguous(t *testing.T) {
	t.Parallel()

	const frames = 240
	src := audiotest.NewChunkedSource(audiotest.NewRampSource(48000, 2, frames, 1024), 10, true)
	out := &audiotest.SeekBuffer{}

	stats, err := Render(src, out, quietOptions(48, 48000))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if stats.Misses == 0 {
		t.Error("Misses = 0, want the stalls counted")
	}

	// Blocks that found no input are silent; the rest must be the input
	// in order with nothing spliced in.
	_, got := readWAV(t, out)
	var audible []sample.Frame
	for _, f := range got {
		if f != (sample.Frame{}) {
			audible = append(audible, f)
		}
	}

	want := audiotest.RampBlock(frames, 1024)
	if len(audible) != len(want) {
		t.Fatalf("rendered %d audible frames, want %d", len(audible), len(want))
	}
	for i := range want {
		if audible[i] != want[i] {
			t.Fatalf("audible frame %d = %v, want %v", i, audible[i], want[i])
		}
	}
}

func TestRender_OddSizedReads(t *testing.T) {
	t.Parallel()

	const frames = 10
	src := audiotest.NewChunkedSource(audiotest.NewRampSource(48000, 2, frames, 64), 3, false)
	out := &audiotest.SeekBuffer{}

	stats, err := Render(src, out, quietOptions(4, 48000))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if want := (Stats{Blocks: 3, Processed: 3, Frames: 12}); stats != want {
		t.Errorf("Render() stats = %+v, want %+v", stats, want)
	}

	_, got := readWAV(t, out)
	for i, want := range audiotest.RampBlock(frames, 64) {
		if got[i] != want {
			t.Errorf("frame %d = %v, want %v", i, got[i], want)
		}
	}
}
