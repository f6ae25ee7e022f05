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

// Package transmit provides the producer-side timing discipline: it pulls a
// byte source, builds and packs frames, and hands grids to a rendering sink
// at a rate bounded by the configured frame rate
package transmit

import (
	"time"

	"github.com/rs/zerolog"
)

// Frame rate bounds. Values outside the range are clamped at configuration
// time, never rejected.
const (
	MinFrameRate     = 10
	MaxFrameRate     = 120
	DefaultFrameRate = 30
)

// DefaultPollInterval is how much driven time accumulates before the
// transmitter evaluates whether a send is due.
const DefaultPollInterval = 10 * time.Millisecond

// Config holds transmitter settings
type Config struct {
	// FrameRate is the maximum emitted frames per second, clamped to
	// [MinFrameRate, MaxFrameRate].
	FrameRate int
	// PollInterval is the tick accumulation threshold; ticks arriving
	// faster than this are coalesced before the rate gate is evaluated.
	PollInterval time.Duration
	// OriginX, OriginY place the grid's top-left corner on the render
	// surface.
	OriginX int
	OriginY int
	// CellSize is the painted size of one block in pixels.
	CellSize int
	// Logger receives transmit diagnostics. Defaults to a no-op logger.
	Logger zerolog.Logger
}

// DefaultConfig returns the default transmitter configuration
func DefaultConfig() *Config {
	return &Config{
		FrameRate:    DefaultFrameRate,
		PollInterval: DefaultPollInterval,
		OriginX:      10,
		OriginY:      10,
		CellSize:     4,
		Logger:       zerolog.Nop(),
	}
}

// normalize clamps the frame rate into its bounds and fills zero values
// with defaults. Out-of-range rates are a configuration quirk, not an
// error: the producer keeps running.
func (c *Config) normalize() {
	if c.FrameRate == 0 {
		c.FrameRate = DefaultFrameRate
	}
	if c.FrameRate < MinFrameRate {
		c.FrameRate = MinFrameRate
	}
	if c.FrameRate > MaxFrameRate {
		c.FrameRate = MaxFrameRate
	}
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.CellSize <= 0 {
		c.CellSize = 4
	}
}

// minInterval returns the minimum spacing between emitted frames.
func (c *Config) minInterval() time.Duration {
	return time.Second / time.Duration(c.FrameRate)
}
