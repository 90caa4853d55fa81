// SPDX-License-Identifier: EPL-2.0

// Package observe provides the observability primitives of the audio core:
// OpenTelemetry metric instruments for the block pipeline, the SDK provider
// bridged to Prometheus, and the structured logger.
//
// Tests should build Metrics with NewMetrics and an SDK meter provider backed
// by a manual reader, so nothing leaks between tests.
package observe

import (
	"context"

	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope for every dmaudio instrument.
const meterName = "github.com/ik5/dmaudio"

// TransferStats is implemented by transfer channels that count faults
// outside the handler's control.
type TransferStats interface {
	Overruns() uint64
	Saturations() uint64
}

// Metrics holds the instruments recorded by the block pipeline. The
// instruments do their own synchronisation.
type Metrics struct {
	// BlocksProcessed counts completed acquire/process/submit cycles.
	BlocksProcessed metric.Int64Counter

	// AcquireMisses counts transfer-complete events with no fresh input.
	AcquireMisses metric.Int64Counter

	// FramesSubmitted counts stereo frames handed back to the channel.
	FramesSubmitted metric.Int64Counter

	// HandlerDuration tracks time spent inside one handler invocation.
	HandlerDuration metric.Float64Histogram

	meter metric.Meter
}

// handlerBuckets are in seconds and centred on the 1 ms reference block.
var handlerBuckets = []float64{
	0.000005, 0.00001, 0.000025, 0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.01,
}

// NewMetrics creates every instrument on mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{meter: m}

	if met.BlocksProcessed, err = m.Int64Counter("dmaudio.blocks.processed",
		metric.WithDescription("Audio blocks run through acquire, process and submit."),
		metric.WithUnit("{block}"),
	); err != nil {
		return nil, err
	}
	if met.AcquireMisses, err = m.Int64Counter("dmaudio.acquire.misses",
		metric.WithDescription("Transfer-complete events without fresh input data."),
		metric.WithUnit("{event}"),
	); err != nil {
		return nil, err
	}
	if met.FramesSubmitted, err = m.Int64Counter("dmaudio.frames.submitted",
		metric.WithDescription("Stereo frames submitted for playback."),
		metric.WithUnit("{frame}"),
	); err != nil {
		return nil, err
	}
	if met.HandlerDuration, err = m.Float64Histogram("dmaudio.handler.duration",
		metric.WithDescription("Time spent in one block handler invocation."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(handlerBuckets...),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// ObserveTransfer exports the overrun and saturation counters of ts as
// observable counters. Unregister the returned registration when ts goes
// away.
func (m *Metrics) ObserveTransfer(ts TransferStats) (metric.Registration, error) {
	overruns, err := m.meter.Int64ObservableCounter("dmaudio.transfer.overruns",
		metric.WithDescription("Halves completed by the peripheral before software claimed the previous one."),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, err
	}
	saturations, err := m.meter.Int64ObservableCounter("dmaudio.transfer.saturations",
		metric.WithDescription("Output frames with at least one channel clamped by the S24 encoder."),
		metric.WithUnit("{sample}"),
	)
	if err != nil {
		return nil, err
	}

	return m.meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		o.ObserveInt64(overruns, int64(ts.Overruns()))
		o.ObserveInt64(saturations, int64(ts.Saturations()))
		return nil
	}, overruns, saturations)
}
