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

import (
	"fmt"
	"image"

	"github.com/PixelbusProject/go-pixelbus/internal/frame"
)

// DecodeResult is one successfully recovered frame.
type DecodeResult struct {
	Payload  []byte
	Sequence uint32
}

// DecodeBytes recovers a frame from a linear byte sequence, typically the
// output of Grid.Bytes on a captured grid. The framing and checksum mode
// must match the producer's; there is no in-band negotiation. A frame that
// fails verification is discarded; the screen is a one-way broadcast, so
// there is no channel to request a repeat.
func DecodeBytes(data []byte, framing Framing, mode ChecksumMode) (*DecodeResult, error) {
	if err := framing.validate(); err != nil {
		return nil, err
	}
	if len(data) < framing.Overhead() {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrShortFrame, len(data), framing.Overhead())
	}

	off := 0
	if framing.Marker {
		if data[0] != frame.Marker {
			return nil, fmt.Errorf("%w: 0x%02X", ErrBadMarker, data[0])
		}
		off = 1
	}

	seq := framing.readField(data, off)
	off += int(framing.FieldWidth)
	length := int(framing.readField(data, off))
	off += int(framing.FieldWidth)

	if len(data) < off+length+frame.ChecksumLen {
		return nil, fmt.Errorf("%w: declared payload length %d overruns %d bytes",
			ErrShortFrame, length, len(data))
	}

	body := data[:off+length]
	received := data[off+length]
	if computed := Checksum(mode, body); computed != received {
		return nil, &ChecksumError{Sequence: seq, Computed: computed, Received: received}
	}

	payload := make([]byte, length)
	copy(payload, data[off:off+length])
	return &DecodeResult{Sequence: seq, Payload: payload}, nil
}

// Decode recovers a frame from a grid, skipping calibration corners the
// same way Pack laid the bytes out.
func Decode(g *Grid, framing Framing, mode ChecksumMode) (*DecodeResult, error) {
	return DecodeBytes(g.Bytes(), framing, mode)
}

// DecodeImage recovers a frame from a captured screen image. Each cell is
// sampled at its center pixel, offset by the grid's on-screen origin, so
// mild blur or scaling artifacts at cell edges do not corrupt the read.
func DecodeImage(img image.Image, originX, originY, rows, cols, cellSize int,
	framing Framing, mode ChecksumMode,
) (*DecodeResult, error) {
	if cellSize <= 0 {
		return nil, fmt.Errorf("cell size must be positive: %d", cellSize)
	}
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("grid dimensions must be positive: %dx%d", rows, cols)
	}

	bounds := img.Bounds()
	data := make([]byte, 0, rows*cols*3)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if framing.CornerMarkers &&
				(row == 0 || row == rows-1) && (col == 0 || col == cols-1) {
				continue
			}
			x := bounds.Min.X + originX + col*cellSize + cellSize/2
			y := bounds.Min.Y + originY + row*cellSize + cellSize/2
			if x >= bounds.Max.X || y >= bounds.Max.Y {
				return nil, fmt.Errorf("%w: cell (%d,%d) outside image bounds", ErrShortFrame, row, col)
			}
			r, g, b, _ := img.At(x, y).RGBA()
			data = append(data, byte(r>>8), byte(g>>8), byte(b>>8))
		}
	}

	return DecodeBytes(data, framing, mode)
}
