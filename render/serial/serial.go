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

// Package serial provides a serial-port rendering sink for external
// display controllers (LED matrices, auxiliary screens) that paint the
// grid themselves. Each rendered frame is streamed as one length-implied
// blob: a magic tag, the producer's session ID, the grid geometry, and the
// raw cell triples in row-major order.
package serial

import (
	"fmt"

	pixelbus "github.com/PixelbusProject/go-pixelbus"
	"github.com/google/uuid"
	goserial "go.bug.st/serial"
)

// Magic identifies a grid blob on the wire.
var Magic = []byte("PXB1")

// DefaultBaudRate is used when the caller passes a non-positive rate.
const DefaultBaudRate = 115200

// Sink streams packed grids over a serial port
type Sink struct {
	port    goserial.Port
	name    string
	session uuid.UUID
	closed  bool
}

// New opens portName and creates a serial sink.
func New(portName string, baudRate int) (*Sink, error) {
	if baudRate <= 0 {
		baudRate = DefaultBaudRate
	}

	port, err := goserial.Open(portName, &goserial.Mode{BaudRate: baudRate})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", portName, err)
	}

	return &Sink{
		port:    port,
		name:    portName,
		session: uuid.New(),
	}, nil
}

// Session returns the sink's session identifier, embedded in every blob so
// a controller can detect producer restarts.
func (s *Sink) Session() uuid.UUID {
	return s.session
}

// EncodeBlob serializes one frame for the wire. Layout:
//
//	offset 0-3:  magic "PXB1"
//	offset 4-19: session UUID
//	offset 20:   rows
//	offset 21:   cols
//	offset 22:   cell size hint
//	offset 23..: rows*cols RGB triples, row-major
//
// Calibration corners are carried as painted, so the controller needs no
// knowledge of the framing policy.
func EncodeBlob(grid *pixelbus.Grid, session uuid.UUID, cellSize int) []byte {
	blob := make([]byte, 0, len(Magic)+16+3+grid.Rows()*grid.Cols()*3)
	blob = append(blob, Magic...)
	blob = append(blob, session[:]...)
	blob = append(blob, byte(grid.Rows()), byte(grid.Cols()), byte(cellSize))
	for _, c := range grid.Cells() {
		blob = append(blob, c.R, c.G, c.B)
	}
	return blob
}

// Render streams the grid blob. The origin hints are meaningless for an
// external controller and are ignored.
func (s *Sink) Render(grid *pixelbus.Grid, _, _, cellSize int) error {
	if s.closed {
		return pixelbus.ErrSinkClosed
	}
	if grid.Rows() > 255 || grid.Cols() > 255 {
		return fmt.Errorf("grid %dx%d too large for blob geometry fields",
			grid.Rows(), grid.Cols())
	}

	blob := EncodeBlob(grid, s.session, cellSize)
	n, err := s.port.Write(blob)
	if err != nil {
		return fmt.Errorf("write to %s: %w", s.name, err)
	}
	if n != len(blob) {
		return fmt.Errorf("short write to %s: %d of %d bytes", s.name, n, len(blob))
	}
	return nil
}

// Close closes the serial port
func (s *Sink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.port.Close(); err != nil {
		return fmt.Errorf("close serial port %s: %w", s.name, err)
	}
	return nil
}

// Type returns the sink type
func (s *Sink) Type() pixelbus.SinkType {
	return pixelbus.SinkSerial
}
