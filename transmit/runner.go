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
	"time"

	pixelbus "github.com/PixelbusProject/go-pixelbus"
)

// Run drives Tick from a wall-clock ticker until ctx is cancelled. Frame
// build failures are logged and polling continues, since the upstream
// source may shrink its payload by the next tick. Source and sink failures
// stop the loop. A separate heartbeat timer fires OnHeartbeat at exactly
// the frame-rate interval; by default it does nothing.
//
// Cancelling ctx stops all activity. There is no in-flight work to wait
// for: every tick is a complete synchronous transform.
func (t *Transmitter) Run(ctx context.Context) error {
	ticker := time.NewTicker(t.config.PollInterval)
	defer ticker.Stop()
	heartbeat := time.NewTicker(t.config.minInterval())
	defer heartbeat.Stop()

	t.log.Info().
		Int("rows", t.codec.Rows()).
		Int("cols", t.codec.Cols()).
		Str("sink", string(t.sink.Type())).
		Msg("transmitter started")

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			t.log.Info().Msg("transmitter stopped")
			return ctx.Err()
		case now := <-ticker.C:
			elapsed := now.Sub(last)
			last = now
			if _, err := t.Tick(now, elapsed); err != nil {
				if errors.Is(err, pixelbus.ErrCapacityExceeded) {
					// Fatal to this send attempt only; the source is
					// expected to produce a smaller payload next time.
					continue
				}
				return err
			}
		case <-heartbeat.C:
			if t.OnHeartbeat != nil {
				t.OnHeartbeat()
			}
		}
	}
}
