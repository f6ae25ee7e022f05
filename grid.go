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

	"github.com/PixelbusProject/go-pixelbus/internal/frame"
)

// RGB is the color of one grid cell. Each cell carries exactly three bytes
// of frame data via its channels.
type RGB struct {
	R, G, B uint8
}

var calibrationCell = RGB{
	R: frame.CalibrationChannel,
	G: frame.CalibrationChannel,
	B: frame.CalibrationChannel,
}

// Grid is a rows x cols matrix of RGB cells holding one packed frame. It is
// rebuilt whole on every transmission; there is no incremental update. Once
// handed to a Sink the grid is owned by the rendering side.
type Grid struct {
	cells   []RGB // row-major
	rows    int
	cols    int
	corners bool
}

// Capacity returns the raw byte capacity of a rows x cols grid.
func Capacity(rows, cols int) int {
	return rows * cols * 3
}

// DataCapacity returns the byte capacity available to frame data under this
// framing. Corner calibration removes four cells from the raw capacity.
func (f Framing) DataCapacity(rows, cols int) int {
	if f.CornerMarkers {
		return (rows*cols - 4) * 3
	}
	return Capacity(rows, cols)
}

// Pack lays frameBytes out into a rows x cols grid in row-major order:
// triple i maps to cell (i/cols, i%cols). Unused capacity is zero-filled.
// With corner calibration active, the four corner cells are forced to pure
// white and data fills the remaining cells in raster order, skipping the
// corners. Packing is a pure transform: identical inputs always produce the
// identical grid.
//
// Pack re-checks the capacity bound even when the frame builder already
// has; this is the authoritative boundary. Inputs are bytes, so every
// channel value is already within [0,255].
func Pack(frameBytes []byte, rows, cols int, framing Framing) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("grid dimensions must be positive: %dx%d", rows, cols)
	}
	if framing.CornerMarkers && rows*cols < 4 {
		return nil, fmt.Errorf("%w: grid too small for corner markers", ErrInvalidFraming)
	}

	capacity := framing.DataCapacity(rows, cols)
	if len(frameBytes) > capacity {
		return nil, &CapacityError{FrameLen: len(frameBytes), Capacity: capacity}
	}

	buf := make([]byte, capacity)
	copy(buf, frameBytes)

	g := &Grid{
		cells:   make([]RGB, rows*cols),
		rows:    rows,
		cols:    cols,
		corners: framing.CornerMarkers,
	}

	off := 0
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if g.IsCorner(row, col) {
				g.cells[row*cols+col] = calibrationCell
				continue
			}
			g.cells[row*cols+col] = RGB{R: buf[off], G: buf[off+1], B: buf[off+2]}
			off += 3
		}
	}

	return g, nil
}

// Rows returns the number of grid rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of grid columns.
func (g *Grid) Cols() int { return g.cols }

// CornerMarkers reports whether the four corner cells are calibration
// markers rather than data.
func (g *Grid) CornerMarkers() bool { return g.corners }

// At returns the cell at (row, col).
func (g *Grid) At(row, col int) RGB {
	return g.cells[row*g.cols+col]
}

// Cells returns a copy of the cells in row-major order.
func (g *Grid) Cells() []RGB {
	out := make([]RGB, len(g.cells))
	copy(out, g.cells)
	return out
}

// IsCorner reports whether (row, col) is a reserved calibration cell.
// Always false when corner markers are inactive.
func (g *Grid) IsCorner(row, col int) bool {
	if !g.corners {
		return false
	}
	return (row == 0 || row == g.rows-1) && (col == 0 || col == g.cols-1)
}

// Bytes reassembles the grid's data bytes in raster order, skipping
// calibration corners. The result has exactly the grid's data capacity,
// padding included; it is the inverse of Pack's layout step.
func (g *Grid) Bytes() []byte {
	out := make([]byte, 0, len(g.cells)*3)
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			if g.IsCorner(row, col) {
				continue
			}
			c := g.cells[row*g.cols+col]
			out = append(out, c.R, c.G, c.B)
		}
	}
	return out
}
