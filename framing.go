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

// FieldWidth is the width in bytes of the sequence and length header fields.
type FieldWidth int

// Supported header field widths
const (
	// Width8 encodes sequence and length as single bytes (mod 256).
	Width8 FieldWidth = 1
	// Width16 encodes sequence and length as big-endian uint16 (mod 65536).
	Width16 FieldWidth = 2
)

// Framing selects one of the supported wire layouts. All variants share the
// same checksum and capacity invariants; they differ only in header shape
// and in whether the grid reserves calibration corners. A reader must know
// the active framing out of band.
type Framing struct {
	// Marker prepends the fixed sentinel byte 0xAA so a reader can
	// recognize the start of a frame. Only valid with Width8 fields.
	Marker bool
	// FieldWidth is the encoded width of the sequence and length fields.
	FieldWidth FieldWidth
	// CornerMarkers reserves the four corner cells of the grid as fixed
	// pure-white calibration cells. Data fills the remaining cells in
	// raster order, skipping the corners, and the grid's data capacity
	// shrinks by four cells.
	CornerMarkers bool
}

// DefaultFraming returns the simplest supported layout: marker byte,
// single-byte sequence and length.
func DefaultFraming() Framing {
	return Framing{Marker: true, FieldWidth: Width8}
}

// ExtendedFraming returns the markerless layout with 16-bit big-endian
// sequence and length fields.
func ExtendedFraming() Framing {
	return Framing{FieldWidth: Width16}
}

// HeaderLen returns the encoded header length in bytes.
func (f Framing) HeaderLen() int {
	n := 2 * int(f.FieldWidth)
	if f.Marker {
		n++
	}
	return n
}

// Overhead returns the number of non-payload bytes in a frame.
func (f Framing) Overhead() int {
	return f.HeaderLen() + frame.ChecksumLen
}

// SequenceModulus returns the wraparound modulus of the sequence counter.
func (f Framing) SequenceModulus() uint32 {
	if f.FieldWidth == Width16 {
		return 1 << 16
	}
	return 1 << 8
}

// MaxPayloadLen returns the largest payload length representable in the
// length field, independent of any grid capacity.
func (f Framing) MaxPayloadLen() int {
	return int(f.SequenceModulus()) - 1
}

func (f Framing) validate() error {
	switch f.FieldWidth {
	case Width8:
	case Width16:
		if f.Marker {
			return fmt.Errorf("%w: 16-bit fields are markerless", ErrInvalidFraming)
		}
	default:
		return fmt.Errorf("%w: unsupported field width %d", ErrInvalidFraming, f.FieldWidth)
	}
	return nil
}

// appendField appends v in the framing's field width, big-endian.
func (f Framing) appendField(buf []byte, v uint32) []byte {
	if f.FieldWidth == Width16 {
		return append(buf, byte(v>>8), byte(v))
	}
	return append(buf, byte(v))
}

// readField reads one header field from data at off. The caller guarantees
// the slice is long enough.
func (f Framing) readField(data []byte, off int) uint32 {
	if f.FieldWidth == Width16 {
		return uint32(data[off])<<8 | uint32(data[off+1])
	}
	return uint32(data[off])
}
