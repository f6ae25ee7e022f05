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

// Sink is the rendering collaborator that paints a packed grid somewhere a
// reader can capture it. Render is synchronous and side-effect-only: the
// codec never consults the painted result. Backends live under render/.
type Sink interface {
	// Render paints the grid with its top-left corner at (originX, originY)
	// and each cell drawn cellSize pixels square. Backends with fixed
	// geometry (hardware panels) may ignore the placement hints.
	Render(grid *Grid, originX, originY, cellSize int) error

	// Close releases the sink's resources
	Close() error

	// Type returns the sink type
	Type() SinkType
}

// SinkType represents the type of rendering backend
type SinkType string

const (
	// SinkImage paints grids into image files.
	SinkImage SinkType = "image"
	// SinkSPI pushes grids to an SPI-attached RGB matrix panel.
	SinkSPI SinkType = "spi"
	// SinkSerial streams packed grids over a serial port.
	SinkSerial SinkType = "serial"
	// SinkCapture records grids in memory for testing
	SinkCapture SinkType = "capture"
)

// ByteSource supplies the payload for each transmission. It is the upstream
// state-serialization collaborator: the transmitter pulls it once per
// eligible tick and transmits whatever it returns. A nil payload transmits
// an empty frame, which still advances the sequence number.
type ByteSource interface {
	ProduceBytes() ([]byte, error)
}

// ByteSourceFunc adapts a plain function to the ByteSource interface.
type ByteSourceFunc func() ([]byte, error)

// ProduceBytes calls f.
func (f ByteSourceFunc) ProduceBytes() ([]byte, error) {
	return f()
}
