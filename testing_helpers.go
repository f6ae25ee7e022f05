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

package pixelbus

// Rendered records one Render call observed by a CaptureSink.
type Rendered struct {
	Grid     *Grid
	OriginX  int
	OriginY  int
	CellSize int
}

// CaptureSink is a Sink that records every rendered grid in memory. It is
// used by the transmit package tests and is exported so downstream users
// can unit-test their own wiring without a real rendering backend.
type CaptureSink struct {
	renderErr error
	Frames    []Rendered
	closed    bool
}

// NewCaptureSink creates a new capture sink
func NewCaptureSink() *CaptureSink {
	return &CaptureSink{}
}

// SetRenderError makes subsequent Render calls fail with err.
func (s *CaptureSink) SetRenderError(err error) {
	s.renderErr = err
}

// Render records the grid and placement.
func (s *CaptureSink) Render(grid *Grid, originX, originY, cellSize int) error {
	if s.closed {
		return ErrSinkClosed
	}
	if s.renderErr != nil {
		return s.renderErr
	}
	s.Frames = append(s.Frames, Rendered{
		Grid:     grid,
		OriginX:  originX,
		OriginY:  originY,
		CellSize: cellSize,
	})
	return nil
}

// Last returns the most recently rendered grid, or nil if none.
func (s *CaptureSink) Last() *Grid {
	if len(s.Frames) == 0 {
		return nil
	}
	return s.Frames[len(s.Frames)-1].Grid
}

// Close marks the sink closed; further renders fail with ErrSinkClosed.
func (s *CaptureSink) Close() error {
	s.closed = true
	return nil
}

// Type returns the sink type
func (s *CaptureSink) Type() SinkType {
	return SinkCapture
}

// StaticSource is a ByteSource returning a fixed payload on every pull.
type StaticSource struct {
	Payload []byte
	Err     error
	Pulls   int
}

// ProduceBytes returns the configured payload or error.
func (s *StaticSource) ProduceBytes() ([]byte, error) {
	s.Pulls++
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Payload, nil
}
