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

package transmit

import (
	"fmt"
	"time"

	pixelbus "github.com/PixelbusProject/go-pixelbus"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Transmitter gates how often a new frame is built and rendered. It is
// tick-driven and never blocks or spawns goroutines of its own; all state
// (tick accumulator, last-send timestamp, the codec's sequence counter)
// mutates synchronously inside Tick. There is no queue: a tick that
// arrives before the minimum interval has elapsed simply discards the
// opportunity, so the newest available state always wins over staleness.
//
// Transmitter is not safe for concurrent use; drive Tick (or Run) from a
// single goroutine.
type Transmitter struct {
	codec  *pixelbus.Codec
	source pixelbus.ByteSource
	sink   pixelbus.Sink
	config *Config
	log    zerolog.Logger

	// OnFrameSent is called after a grid has been handed to the sink.
	OnFrameSent func(seq uint32, grid *pixelbus.Grid)
	// OnHeartbeat fires at exactly the frame-rate interval from Run,
	// independent of whether state changed. It exists so a future producer
	// can retransmit the last grid for readers sampling faster than state
	// refreshes; the default is a no-op.
	OnHeartbeat func()

	accum    time.Duration
	lastSend time.Time
	session  uuid.UUID
}

// New creates a transmitter. A nil config uses DefaultConfig; the frame
// rate is clamped into [MinFrameRate, MaxFrameRate] here, not at send time.
func New(codec *pixelbus.Codec, source pixelbus.ByteSource, sink pixelbus.Sink, config *Config) *Transmitter {
	if config == nil {
		config = DefaultConfig()
	}
	config.normalize()

	session := uuid.New()
	return &Transmitter{
		codec:   codec,
		source:  source,
		sink:    sink,
		config:  config,
		session: session,
		log: config.Logger.With().
			Str("session", session.String()).
			Int("fps", config.FrameRate).
			Logger(),
	}
}

// Session returns the transmitter's session identifier.
func (t *Transmitter) Session() uuid.UUID {
	return t.session
}

// Config returns the normalized configuration.
func (t *Transmitter) Config() *Config {
	return t.config
}

// LastSend returns when the most recent frame was emitted. Zero before the
// first send.
func (t *Transmitter) LastSend() time.Time {
	return t.lastSend
}

// Tick drives the transmitter. elapsed is the time since the previous tick;
// it accumulates against the poll interval, and only once the interval is
// reached does the transmitter evaluate the rate gate: a frame is emitted
// when now is at least 1/fps after the previous send. Returns true when a
// frame was built and rendered.
//
// A failed build or render leaves the last-send time and the codec's
// sequence counter unchanged, so the next eligible tick retries the same
// logical frame with fresh payload bytes.
func (t *Transmitter) Tick(now time.Time, elapsed time.Duration) (bool, error) {
	t.accum += elapsed
	if t.accum < t.config.PollInterval {
		return false, nil
	}
	t.accum = 0

	if !t.lastSend.IsZero() && now.Sub(t.lastSend) < t.config.minInterval() {
		return false, nil
	}

	payload, err := t.source.ProduceBytes()
	if err != nil {
		return false, fmt.Errorf("produce bytes: %w", err)
	}

	prev := t.codec.Sequence()
	grid, err := t.codec.Encode(payload)
	if err != nil {
		t.log.Warn().Err(err).Int("payload_len", len(payload)).Msg("frame build failed")
		return false, fmt.Errorf("encode frame: %w", err)
	}

	if err := t.sink.Render(grid, t.config.OriginX, t.config.OriginY, t.config.CellSize); err != nil {
		// The frame never reached the surface; rewind so the next attempt
		// reuses its sequence number and readers see no gap.
		t.codec.SetSequence(prev)
		return false, fmt.Errorf("render grid: %w", err)
	}

	t.lastSend = now
	t.log.Debug().
		Uint32("seq", t.codec.Sequence()).
		Int("payload_len", len(payload)).
		Msg("frame sent")

	if t.OnFrameSent != nil {
		t.OnFrameSent(t.codec.Sequence(), grid)
	}
	return true, nil
}
