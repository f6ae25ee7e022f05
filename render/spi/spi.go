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

// Package spi provides an SPI rendering sink for hardware RGB matrix
// panels. The grid's cell triples are shifted out raw in row-major order,
// which matches daisy-chained pixel drivers that latch a full refresh per
// transfer.
package spi

import (
	"fmt"

	pixelbus "github.com/PixelbusProject/go-pixelbus"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// DefaultClockFreq is a conservative shift clock most pixel drivers accept.
const DefaultClockFreq = 2 * physic.MegaHertz

// Sink pushes grids to an SPI-attached RGB matrix panel
type Sink struct {
	port   spi.PortCloser
	conn   spi.Conn
	name   string
	clock  physic.Frequency
	closed bool
}

// New opens the SPI port registered under portName (e.g. "SPI0.0") and
// creates a panel sink.
func New(portName string, clock physic.Frequency) (*Sink, error) {
	// Initialize host
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph host: %w", err)
	}

	if clock <= 0 {
		clock = DefaultClockFreq
	}

	port, err := spireg.Open(portName)
	if err != nil {
		return nil, fmt.Errorf("failed to open SPI port %s: %w", portName, err)
	}

	conn, err := port.Connect(clock, spi.Mode0, 8)
	if err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("failed to connect on %s: %w", portName, err)
	}

	return &Sink{
		port:  port,
		conn:  conn,
		name:  portName,
		clock: clock,
	}, nil
}

// Render shifts the grid out to the panel. A hardware panel has fixed
// geometry, so the origin and cell size hints are ignored.
func (s *Sink) Render(grid *pixelbus.Grid, _, _, _ int) error {
	if s.closed {
		return pixelbus.ErrSinkClosed
	}

	buf := make([]byte, 0, grid.Rows()*grid.Cols()*3)
	for _, c := range grid.Cells() {
		buf = append(buf, c.R, c.G, c.B)
	}

	if err := s.conn.Tx(buf, nil); err != nil {
		return fmt.Errorf("spi transfer on %s: %w", s.name, err)
	}
	return nil
}

// Close closes the SPI port
func (s *Sink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.port.Close(); err != nil {
		return fmt.Errorf("close SPI port %s: %w", s.name, err)
	}
	return nil
}

// Type returns the sink type
func (s *Sink) Type() pixelbus.SinkType {
	return pixelbus.SinkSPI
}
