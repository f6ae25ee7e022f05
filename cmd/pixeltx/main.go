// go-pixelbus
// Copyright (c) 2025 The Pixelbus Project Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-pixelbus.
//
// go-pixelbus is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-pixelbus is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-pixelbus; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

// pixeltx runs a visual transport producer: it serializes state snapshots
// into frames, packs them into a block grid and renders the grid to the
// configured sink at a bounded frame rate.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	pixelbus "github.com/PixelbusProject/go-pixelbus"
	"github.com/PixelbusProject/go-pixelbus/render/imagefile"
	"github.com/PixelbusProject/go-pixelbus/render/serial"
	"github.com/PixelbusProject/go-pixelbus/render/spi"
	"github.com/PixelbusProject/go-pixelbus/statewire"
	"github.com/PixelbusProject/go-pixelbus/transmit"
	"github.com/rs/zerolog"
)

type flags struct {
	configPath *string
	sink       *string
	target     *string
	text       *string
	duration   *time.Duration
	debug      *bool
}

func parseFlags() *flags {
	f := &flags{
		configPath: flag.String("config", "",
			"Path to a TOML config file. Flags override file values."),
		sink: flag.String("sink", "",
			"Output sink: image, serial or spi (default: image)"),
		target: flag.String("target", "",
			"Sink target: PNG path, serial device or SPI port name"),
		text: flag.String("text", "",
			"Transmit this fixed text instead of demo state snapshots"),
		duration: flag.Duration("duration", 0,
			"Stop after this long (default: run until interrupted)"),
		debug: flag.Bool("debug", false, "Enable debug output"),
	}
	flag.Parse()
	return f
}

func buildConfig(f *flags) (appConfig, error) {
	cfg := defaultAppConfig()
	if *f.configPath != "" {
		loaded, err := loadAppConfig(*f.configPath)
		if err != nil {
			return appConfig{}, err
		}
		cfg = loaded
	}
	if *f.sink != "" {
		cfg.Sink = *f.sink
	}
	if *f.target != "" {
		cfg.Target = *f.target
	}
	return cfg, nil
}

func newSink(cfg appConfig) (pixelbus.Sink, error) {
	switch cfg.Sink {
	case "image":
		sink, err := imagefile.New(cfg.Target)
		if err != nil {
			return nil, fmt.Errorf("failed to create image sink: %w", err)
		}
		return sink, nil
	case "serial":
		sink, err := serial.New(cfg.Target, cfg.BaudRate)
		if err != nil {
			return nil, fmt.Errorf("failed to create serial sink: %w", err)
		}
		return sink, nil
	case "spi":
		sink, err := spi.New(cfg.Target, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to create SPI sink: %w", err)
		}
		return sink, nil
	default:
		return nil, fmt.Errorf("unsupported sink type: %s", cfg.Sink)
	}
}

// newSource picks the byte source: a fixed text payload when -text is set,
// otherwise a demo snapshot provider that animates resource values so the
// output visibly changes frame to frame.
func newSource(text string, budget int) pixelbus.ByteSource {
	if text != "" {
		payload := []byte(text)
		return pixelbus.ByteSourceFunc(func() ([]byte, error) {
			return payload, nil
		})
	}

	start := time.Now()
	return statewire.NewSource(func() statewire.Snapshot {
		t := time.Since(start)
		health := uint32(15000 + t.Milliseconds()%6000)
		return statewire.Snapshot{
			Health:         health,
			MaxHealth:      21000,
			Power:          uint16(t.Milliseconds() / 100 % 100),
			MaxPower:       100,
			GCDRemainingMS: uint16(1500 - t.Milliseconds()%1500),
		}
	}, budget)
}

func run() error {
	f := parseFlags()

	level := zerolog.InfoLevel
	if *f.debug {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	cfg, err := buildConfig(f)
	if err != nil {
		return err
	}

	framing, err := cfg.framing()
	if err != nil {
		return err
	}

	codec, err := pixelbus.NewCodec(cfg.Rows, cfg.Cols,
		pixelbus.WithFraming(framing),
		pixelbus.WithChecksum(cfg.Checksum),
	)
	if err != nil {
		return fmt.Errorf("failed to create codec: %w", err)
	}

	sink, err := newSink(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = sink.Close() }()

	tx := transmit.New(codec, newSource(*f.text, codec.MaxPayload()), sink, &transmit.Config{
		FrameRate:    cfg.FrameRate,
		PollInterval: cfg.PollInterval,
		OriginX:      cfg.OriginX,
		OriginY:      cfg.OriginY,
		CellSize:     cfg.CellSize,
		Logger:       log,
	})

	log.Info().
		Int("rows", cfg.Rows).
		Int("cols", cfg.Cols).
		Int("max_payload", codec.MaxPayload()).
		Str("sink", cfg.Sink).
		Str("target", cfg.Target).
		Msg("starting producer")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if *f.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *f.duration)
		defer cancel()
	}

	if err := tx.Run(ctx); err != nil &&
		!errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "pixeltx: %v\n", err)
		os.Exit(1)
	}
}
