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

// pixelrx decodes captured frames back out of PNG files: it samples the
// block grid at the configured placement, validates the frame and prints
// the recovered sequence number and payload. It is the consumer half used
// to verify a pixeltx image sink end to end.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"

	pixelbus "github.com/PixelbusProject/go-pixelbus"
	"github.com/PixelbusProject/go-pixelbus/statewire"
	"github.com/rs/zerolog"
)

type config struct {
	rows     *int
	cols     *int
	originX  *int
	originY  *int
	cellSize *int
	marker   *bool
	width    *int
	corners  *bool
	checksum *string
	snapshot *bool
	debug    *bool
}

func parseFlags() *config {
	cfg := &config{
		rows:     flag.Int("rows", 8, "Grid rows"),
		cols:     flag.Int("cols", 8, "Grid columns"),
		originX:  flag.Int("origin-x", 10, "X of the grid's top-left corner"),
		originY:  flag.Int("origin-y", 10, "Y of the grid's top-left corner"),
		cellSize: flag.Int("cell-size", 4, "Painted size of one block in pixels"),
		marker:   flag.Bool("marker", true, "Expect the frame start marker"),
		width:    flag.Int("field-width", 8, "Sequence and length field width (8 or 16)"),
		corners:  flag.Bool("corner-markers", false, "Expect calibration corner cells"),
		checksum: flag.String("checksum", "crc8", "Checksum mode: none, xor or crc8"),
		snapshot: flag.Bool("snapshot", false,
			"Interpret the payload as a state snapshot instead of raw bytes"),
		debug: flag.Bool("debug", false, "Enable debug output"),
	}
	flag.Parse()
	return cfg
}

func (c *config) framing() (pixelbus.Framing, error) {
	var width pixelbus.FieldWidth
	switch *c.width {
	case 8:
		width = pixelbus.Width8
	case 16:
		width = pixelbus.Width16
	default:
		return pixelbus.Framing{}, fmt.Errorf("field width must be 8 or 16, got %d", *c.width)
	}
	return pixelbus.Framing{
		Marker:        *c.marker,
		FieldWidth:    width,
		CornerMarkers: *c.corners,
	}, nil
}

func (c *config) checksumMode() (pixelbus.ChecksumMode, error) {
	switch *c.checksum {
	case "none":
		return pixelbus.ChecksumNone, nil
	case "xor":
		return pixelbus.ChecksumXOR, nil
	case "crc8":
		return pixelbus.ChecksumCRC8, nil
	default:
		return "", fmt.Errorf("unknown checksum mode: %q", *c.checksum)
	}
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func printPayload(res *pixelbus.DecodeResult, asSnapshot bool) {
	if !asSnapshot {
		_, _ = fmt.Printf("seq=%d len=%d payload=%q\n",
			res.Sequence, len(res.Payload), res.Payload)
		return
	}

	snap, err := statewire.Unmarshal(res.Payload)
	if err != nil {
		_, _ = fmt.Printf("seq=%d len=%d (snapshot parse failed: %v)\n",
			res.Sequence, len(res.Payload), err)
		return
	}
	_, _ = fmt.Printf("seq=%d health=%d/%d power=%d/%d gcd=%dms auras=%d cooldowns=%d\n",
		res.Sequence, snap.Health, snap.MaxHealth, snap.Power, snap.MaxPower,
		snap.GCDRemainingMS, len(snap.Auras), len(snap.Cooldowns))
}

func run() error {
	cfg := parseFlags()
	if flag.NArg() == 0 {
		return errors.New("usage: pixelrx [flags] capture.png [capture2.png ...]")
	}

	level := zerolog.InfoLevel
	if *cfg.debug {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	framing, err := cfg.framing()
	if err != nil {
		return err
	}
	mode, err := cfg.checksumMode()
	if err != nil {
		return err
	}

	failures := 0
	for _, path := range flag.Args() {
		img, err := loadImage(path)
		if err != nil {
			return err
		}

		res, err := pixelbus.DecodeImage(img,
			*cfg.originX, *cfg.originY, *cfg.rows, *cfg.cols, *cfg.cellSize,
			framing, mode)
		if err != nil {
			failures++
			var chkErr *pixelbus.ChecksumError
			if errors.As(err, &chkErr) {
				log.Warn().
					Str("file", path).
					Uint32("seq", chkErr.Sequence).
					Uint8("computed", chkErr.Computed).
					Uint8("received", chkErr.Received).
					Msg("discarding corrupt frame")
				continue
			}
			log.Warn().Str("file", path).Err(err).Msg("frame rejected")
			continue
		}

		log.Debug().Str("file", path).Uint32("seq", res.Sequence).Msg("frame decoded")
		printPayload(res, *cfg.snapshot)
	}

	if failures == flag.NArg() {
		return errors.New("no frame decoded")
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "pixelrx: %v\n", err)
		os.Exit(1)
	}
}
