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
	"context"
	"errors"
	"testing"
	"time"

	pixelbus "github.com/PixelbusProject/go-pixelbus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransmitter(t *testing.T, config *Config) (*Transmitter, *pixelbus.CaptureSink, *pixelbus.StaticSource) {
	t.Helper()
	codec, err := pixelbus.NewCodec(4, 4)
	require.NoError(t, err)

	sink := pixelbus.NewCaptureSink()
	source := &pixelbus.StaticSource{Payload: []byte{1, 2, 3}}
	return New(codec, source, sink, config), sink, source
}

func TestConfig_FrameRateClamping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   int
		want int
	}{
		{name: "Below_Minimum", in: 1, want: MinFrameRate},
		{name: "Negative", in: -5, want: MinFrameRate},
		{name: "Zero_Uses_Default", in: 0, want: DefaultFrameRate},
		{name: "Within_Range", in: 60, want: 60},
		{name: "At_Minimum", in: 10, want: 10},
		{name: "At_Maximum", in: 120, want: 120},
		{name: "Above_Maximum", in: 500, want: MaxFrameRate},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			cfg.FrameRate = tt.in
			tx, _, _ := newTestTransmitter(t, cfg)
			assert.Equal(t, tt.want, tx.Config().FrameRate)
		})
	}
}

func TestTransmitter_RateGating(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.FrameRate = 30
	cfg.PollInterval = time.Millisecond
	tx, sink, _ := newTestTransmitter(t, cfg)

	base := time.Unix(1000, 0)

	sent, err := tx.Tick(base, time.Millisecond)
	require.NoError(t, err)
	assert.True(t, sent, "first eligible tick sends")

	// A second request less than 1/30s later is a no-op.
	sent, err = tx.Tick(base.Add(10*time.Millisecond), time.Millisecond)
	require.NoError(t, err)
	assert.False(t, sent, "tick inside the minimum interval must not send")
	assert.Len(t, sink.Frames, 1)

	// After at least 1/30s the next request succeeds.
	sent, err = tx.Tick(base.Add(34*time.Millisecond), time.Millisecond)
	require.NoError(t, err)
	assert.True(t, sent)
	assert.Len(t, sink.Frames, 2)
}

func TestTransmitter_PollIntervalAccumulation(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.PollInterval = 10 * time.Millisecond
	tx, sink, source := newTestTransmitter(t, cfg)

	now := time.Unix(2000, 0)
	for i := 0; i < 3; i++ {
		now = now.Add(3 * time.Millisecond)
		sent, err := tx.Tick(now, 3*time.Millisecond)
		require.NoError(t, err)
		assert.False(t, sent, "tick %d below the poll interval", i)
	}
	assert.Zero(t, source.Pulls, "source is not consulted before the poll interval elapses")

	now = now.Add(3 * time.Millisecond)
	sent, err := tx.Tick(now, 3*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, sent, "accumulated elapsed time reaches the poll interval")
	assert.Equal(t, 1, source.Pulls)
	assert.Len(t, sink.Frames, 1)
}

func TestTransmitter_GatedTickDiscardsPayload(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.PollInterval = time.Millisecond
	tx, _, source := newTestTransmitter(t, cfg)

	base := time.Unix(3000, 0)
	_, err := tx.Tick(base, time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, 1, source.Pulls)

	// Gated ticks never pull the source: there is no backlog, the newest
	// state at the next eligible tick wins.
	for i := 1; i <= 5; i++ {
		sent, err := tx.Tick(base.Add(time.Duration(i)*2*time.Millisecond), time.Millisecond)
		require.NoError(t, err)
		assert.False(t, sent)
	}
	assert.Equal(t, 1, source.Pulls)
}

func TestTransmitter_FailedBuildLeavesStateUnchanged(t *testing.T) {
	t.Parallel()

	codec, err := pixelbus.NewCodec(4, 4)
	require.NoError(t, err)

	sink := pixelbus.NewCaptureSink()
	source := &pixelbus.StaticSource{Payload: make([]byte, 50)} // over 4x4 capacity
	cfg := DefaultConfig()
	cfg.PollInterval = time.Millisecond
	tx := New(codec, source, sink, cfg)

	base := time.Unix(4000, 0)
	sent, err := tx.Tick(base, time.Millisecond)
	require.ErrorIs(t, err, pixelbus.ErrCapacityExceeded)
	assert.False(t, sent)
	assert.Zero(t, codec.Sequence(), "sequence must not advance on a failed build")
	assert.True(t, tx.LastSend().IsZero(), "last-send time must not advance on a failed build")

	// The upstream source corrects its payload; the retry succeeds with the
	// same logical state.
	source.Payload = []byte{9}
	sent, err = tx.Tick(base.Add(2*time.Millisecond), time.Millisecond)
	require.NoError(t, err)
	assert.True(t, sent)
	assert.Equal(t, uint32(1), codec.Sequence())
	assert.Len(t, sink.Frames, 1)
}

func TestTransmitter_FailedRenderLeavesStateUnchanged(t *testing.T) {
	t.Parallel()

	codec, err := pixelbus.NewCodec(4, 4)
	require.NoError(t, err)

	sink := pixelbus.NewCaptureSink()
	source := &pixelbus.StaticSource{Payload: []byte{1, 2, 3}}
	cfg := DefaultConfig()
	cfg.PollInterval = time.Millisecond
	tx := New(codec, source, sink, cfg)

	renderErr := errors.New("surface gone")
	sink.SetRenderError(renderErr)

	base := time.Unix(5000, 0)
	sent, err := tx.Tick(base, time.Millisecond)
	require.ErrorIs(t, err, renderErr)
	assert.False(t, sent)
	assert.Zero(t, codec.Sequence(), "sequence must not advance on a failed render")
	assert.True(t, tx.LastSend().IsZero(), "last-send time must not advance on a failed render")

	// Once the surface is back, the retried frame carries the sequence
	// number the failed attempt never delivered.
	sink.SetRenderError(nil)
	sent, err = tx.Tick(base.Add(2*time.Millisecond), time.Millisecond)
	require.NoError(t, err)
	assert.True(t, sent)
	assert.Equal(t, uint32(1), codec.Sequence())
	assert.Len(t, sink.Frames, 1)
}

func TestTransmitter_SinkReceivesPlacement(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.PollInterval = time.Millisecond
	cfg.OriginX = 32
	cfg.OriginY = 64
	cfg.CellSize = 6
	tx, sink, _ := newTestTransmitter(t, cfg)

	_, err := tx.Tick(time.Unix(6000, 0), time.Millisecond)
	require.NoError(t, err)

	require.Len(t, sink.Frames, 1)
	assert.Equal(t, 32, sink.Frames[0].OriginX)
	assert.Equal(t, 64, sink.Frames[0].OriginY)
	assert.Equal(t, 6, sink.Frames[0].CellSize)
}

func TestTransmitter_OnFrameSent(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.PollInterval = time.Millisecond
	tx, _, _ := newTestTransmitter(t, cfg)

	var gotSeq uint32
	tx.OnFrameSent = func(seq uint32, grid *pixelbus.Grid) {
		gotSeq = seq
		assert.NotNil(t, grid)
	}

	_, err := tx.Tick(time.Unix(7000, 0), time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), gotSeq)
}

func TestTransmitter_Run(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.FrameRate = 30
	cfg.PollInterval = 5 * time.Millisecond
	tx, sink, _ := newTestTransmitter(t, cfg)

	heartbeats := 0
	tx.OnHeartbeat = func() { heartbeats++ }

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	err := tx.Run(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	assert.NotEmpty(t, sink.Frames, "run loop must emit frames")
	assert.Positive(t, heartbeats, "heartbeat timer must fire")

	// At most one frame per minimum interval: 150ms at 30fps allows 5 sends
	// plus the immediate first one.
	assert.LessOrEqual(t, len(sink.Frames), 6)
}
