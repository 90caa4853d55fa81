// SPDX-License-Identifier: EPL-2.0

// Command dmaudio runs an audio file through the simulated converter and
// block pipeline in real time, recording what the device would play.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ik5/dmaudio"
	"github.com/ik5/dmaudio/audio"
	"github.com/ik5/dmaudio/formats/aiff"
	"github.com/ik5/dmaudio/formats/mp3"
	"github.com/ik5/dmaudio/formats/vorbis"
	"github.com/ik5/dmaudio/formats/wav"
	"github.com/ik5/dmaudio/internal/config"
	"github.com/ik5/dmaudio/internal/monitor"
	"github.com/ik5/dmaudio/internal/observe"
)

var version = "dev"

type flags struct {
	configPath string
	input      string
	output     string
	fast       bool
	monitor    bool
	listen     string
}

func parseFlags(fs *flag.FlagSet, args []string) (flags, error) {
	var f flags
	fs.StringVar(&f.configPath, "config", "", "path to the YAML configuration file")
	fs.StringVar(&f.input, "in", "", "input audio file (wav, aif, aiff, mp3, ogg)")
	fs.StringVar(&f.output, "out", "", "output 24-bit WAV file")
	fs.BoolVar(&f.fast, "fast", false, "run as fast as possible instead of at the block rate")
	fs.BoolVar(&f.monitor, "monitor", false, "play the output through the sound device")
	fs.StringVar(&f.listen, "metrics", "", "address for the Prometheus /metrics endpoint")
	err := fs.Parse(args)
	return f, err
}

// loadConfig reads the optional config file and lays the flags over it.
func loadConfig(f flags) (*config.Config, error) {
	return config.Load(f.configPath, f.overlay)
}

// overlay copies every flag that was set onto cfg.
func (f flags) overlay(cfg *config.Config) {
	if f.input != "" {
		cfg.Input = f.input
	}
	if f.output != "" {
		cfg.Output = f.output
	}
	if f.fast {
		cfg.Realtime = false
	}
	if f.monitor {
		cfg.Monitor = true
	}
	if f.listen != "" {
		cfg.Metrics.Listen = f.listen
	}
}

func newRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	return reg
}

func main() {
	os.Exit(run())
}

func run() int {
	f, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		return 2
	}

	cfg, err := loadConfig(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dmaudio: %v\n", err)
		return 1
	}

	logger := observe.NewLogger(os.Stderr, cfg.LogLevel.Level())
	slog.SetDefault(logger)

	slog.Info("Program Started",
		"version", version,
		"input", cfg.Input,
		"output", cfg.Output,
		"block_size", cfg.Audio.BlockSize,
		"sample_rate", cfg.Audio.SampleRate,
		"realtime", cfg.Realtime,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mp, err := observe.InitProvider(ctx, observe.ProviderConfig{ServiceVersion: version})
	if err != nil {
		slog.Error("failed to init metrics", "err", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mp.Shutdown(shutdownCtx); err != nil {
			slog.Warn("metrics shutdown error", "err", err)
		}
	}()

	dec, err := newRegistry().ForPath(cfg.Input)
	if err != nil {
		slog.Error("cannot pick a decoder", "input", cfg.Input, "err", err)
		return 1
	}

	in, err := os.Open(cfg.Input)
	if err != nil {
		slog.Error("cannot open input", "err", err)
		return 1
	}
	defer in.Close()

	src, err := dec.Decode(in)
	if err != nil {
		slog.Error("cannot decode input", "input", cfg.Input, "err", err)
		return 1
	}
	defer src.Close()

	out, err := os.Create(cfg.Output)
	if err != nil {
		slog.Error("cannot create output", "err", err)
		return 1
	}
	defer out.Close()

	opts := dmaudio.RenderOptions{
		BlockSize:     cfg.Audio.BlockSize,
		SampleRate:    cfg.Audio.SampleRate,
		Logger:        logger,
		MeterProvider: mp,
	}
	if cfg.Realtime {
		opts.Period = cfg.Audio.BlockPeriod()
	}

	if cfg.Monitor {
		mon, err := monitor.Open(cfg.Audio.SampleRate, cfg.Audio.BlockSize, monitor.DefaultDepth, logger)
		if err != nil {
			slog.Error("cannot open sound device", "err", err)
			return 1
		}
		defer mon.Close()
		opts.Taps = append(opts.Taps, mon)
	}

	if err := serve(ctx, cfg, src, out, opts); err != nil {
		slog.Error("run error", "err", err)
		return 1
	}

	slog.Info("goodbye")
	return 0
}

// serve renders and, when configured, exposes /metrics until the render
// ends or ctx is cancelled.
func serve(ctx context.Context, cfg *config.Config, src audio.Source, out io.WriteSeeker, opts dmaudio.RenderOptions) error {
	var srv *http.Server
	var ln net.Listener
	if cfg.Metrics.Listen != "" {
		var err error
		if ln, err = net.Listen("tcp", cfg.Metrics.Listen); err != nil {
			return fmt.Errorf("metrics listen: %w", err)
		}
		srv = &http.Server{
			Handler:           observe.MetricsHandler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		slog.Info("metrics endpoint listening", "addr", ln.Addr().String())
	}

	g, gctx := errgroup.WithContext(ctx)
	renderDone := make(chan struct{})

	g.Go(func() error {
		defer close(renderDone)

		stats, err := dmaudio.RenderContext(gctx, src, out, opts)
		slog.Info("render summary",
			"blocks", stats.Blocks,
			"processed", stats.Processed,
			"misses", stats.Misses,
			"overruns", stats.Overruns,
			"saturations", stats.Saturations,
			"frames", stats.Frames,
		)
		if errors.Is(err, context.Canceled) {
			slog.Info("interrupted, output finalised")
			return nil
		}
		return err
	})

	if srv != nil {
		g.Go(func() error {
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			select {
			case <-renderDone:
			case <-gctx.Done():
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	return g.Wait()
}
