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

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	pixelbus "github.com/PixelbusProject/go-pixelbus"
)

// appConfig is the fully resolved producer configuration: codec geometry
// and framing, transmit timing, and the chosen output sink.
type appConfig struct {
	Rows          int
	Cols          int
	Marker        bool
	FieldWidth    int
	CornerMarkers bool
	Checksum      pixelbus.ChecksumMode

	FrameRate    int
	PollInterval time.Duration
	OriginX      int
	OriginY      int
	CellSize     int

	// Sink is one of "image", "serial" or "spi". Target is the PNG path,
	// serial device or SPI port name respectively.
	Sink     string
	Target   string
	BaudRate int
}

func defaultAppConfig() appConfig {
	return appConfig{
		Rows:       8,
		Cols:       8,
		Marker:     true,
		FieldWidth: 8,
		Checksum:   pixelbus.ChecksumCRC8,

		FrameRate:    30,
		PollInterval: 10 * time.Millisecond,
		OriginX:      10,
		OriginY:      10,
		CellSize:     4,

		Sink:   "image",
		Target: "pixelbus.png",
	}
}

type fileConfig struct {
	Rows          int    `toml:"rows"`
	Cols          int    `toml:"cols"`
	Marker        bool   `toml:"marker"`
	FieldWidth    int    `toml:"field_width"`
	CornerMarkers bool   `toml:"corner_markers"`
	Checksum      string `toml:"checksum"`
	FrameRate     int    `toml:"frame_rate"`
	PollInterval  string `toml:"poll_interval"`
	OriginX       int    `toml:"origin_x"`
	OriginY       int    `toml:"origin_y"`
	CellSize      int    `toml:"cell_size"`
	Sink          string `toml:"sink"`
	Target        string `toml:"target"`
	BaudRate      int    `toml:"baud_rate"`
}

// loadAppConfig layers a TOML file over the defaults. Only keys actually
// present in the file override; absent keys keep their defaults.
func loadAppConfig(path string) (appConfig, error) {
	cfg := defaultAppConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return appConfig{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("rows") {
		cfg.Rows = raw.Rows
	}
	if meta.IsDefined("cols") {
		cfg.Cols = raw.Cols
	}
	if meta.IsDefined("marker") {
		cfg.Marker = raw.Marker
	}
	if meta.IsDefined("field_width") {
		cfg.FieldWidth = raw.FieldWidth
	}
	if meta.IsDefined("corner_markers") {
		cfg.CornerMarkers = raw.CornerMarkers
	}
	if meta.IsDefined("checksum") {
		mode, err := parseChecksumMode(raw.Checksum)
		if err != nil {
			return appConfig{}, err
		}
		cfg.Checksum = mode
	}
	if meta.IsDefined("frame_rate") {
		cfg.FrameRate = raw.FrameRate
	}
	if meta.IsDefined("poll_interval") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.PollInterval))
		if err != nil {
			return appConfig{}, fmt.Errorf("parse poll_interval: %w", err)
		}
		cfg.PollInterval = d
	}
	if meta.IsDefined("origin_x") {
		cfg.OriginX = raw.OriginX
	}
	if meta.IsDefined("origin_y") {
		cfg.OriginY = raw.OriginY
	}
	if meta.IsDefined("cell_size") {
		cfg.CellSize = raw.CellSize
	}
	if meta.IsDefined("sink") {
		cfg.Sink = strings.ToLower(strings.TrimSpace(raw.Sink))
	}
	if meta.IsDefined("target") {
		cfg.Target = strings.TrimSpace(raw.Target)
	}
	if meta.IsDefined("baud_rate") {
		cfg.BaudRate = raw.BaudRate
	}

	return cfg, nil
}

func parseChecksumMode(s string) (pixelbus.ChecksumMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return pixelbus.ChecksumNone, nil
	case "xor":
		return pixelbus.ChecksumXOR, nil
	case "crc8":
		return pixelbus.ChecksumCRC8, nil
	default:
		return "", fmt.Errorf("unknown checksum mode: %q", s)
	}
}

// framing builds the framing policy the config describes.
func (c appConfig) framing() (pixelbus.Framing, error) {
	var width pixelbus.FieldWidth
	switch c.FieldWidth {
	case 0, 8:
		width = pixelbus.Width8
	case 16:
		width = pixelbus.Width16
	default:
		return pixelbus.Framing{}, fmt.Errorf("field width must be 8 or 16, got %d", c.FieldWidth)
	}
	return pixelbus.Framing{
		Marker:        c.Marker,
		FieldWidth:    width,
		CornerMarkers: c.CornerMarkers,
	}, nil
}
