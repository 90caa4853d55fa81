// SPDX-License-Identifier: EPL-2.0

// Package monitor plays the transmitted halves through the host's sound
// device so the simulated output can be heard while it is recorded.
package monitor

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ebitengine/oto/v3"

	"github.com/ik5/dmaudio/dma"
	"github.com/ik5/dmaudio/internal/config"
)

// DefaultDepth is the number of halves buffered ahead of the device.
const DefaultDepth = 32

var errClosed = errors.New("monitor: closed")

var _ dma.DAC = (*Monitor)(nil)

// Monitor is a dma.DAC feeding an oto player. Drain never blocks; halves the
// device cannot keep up with are dropped and counted.
type Monitor struct {
	otoCtx *oto.Context
	player *oto.Player
	q      *queue
	log    *slog.Logger
	closed bool
}

// Open starts the device at sampleRate, 16-bit stereo. oto allows one
// context per process, so Open may only succeed once.
func Open(sampleRate, blockSize, depth int, log *slog.Logger) (*Monitor, error) {
	if depth <= 0 {
		depth = DefaultDepth
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: config.Channels,
		Format:       oto.FormatSignedInt16LE,
	}

	otoCtx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to create oto context: %w", err)
	}
	<-ready

	q := newQueue(depth, blockSize*config.Channels)
	player := otoCtx.NewPlayer(q)
	player.Play()

	log.Info("monitor started", "sample_rate", sampleRate, "depth", depth)

	return &Monitor{otoCtx: otoCtx, player: player, q: q, log: log}, nil
}

// Drain queues one half for playback.
func (m *Monitor) Drain(words []uint32) error {
	if m.closed {
		return errClosed
	}

	m.q.push(words)
	return nil
}

// Dropped returns the number of halves discarded because the device fell
// behind.
func (m *Monitor) Dropped() uint64 { return m.q.dropped.Load() }

// Close stops playback and releases the device.
func (m *Monitor) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true

	m.q.close()
	err := m.player.Close()
	if serr := m.otoCtx.Suspend(); serr != nil && err == nil {
		err = serr
	}

	m.log.Info("monitor stopped", "dropped_halves", m.Dropped())
	if err != nil {
		return fmt.Errorf("monitor: %w", err)
	}
	return nil
}
