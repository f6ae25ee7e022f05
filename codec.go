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

// Codec frames payloads and packs them into RGB grids for one transmission
// channel. It owns the channel's sequence counter and nothing else; timing
// belongs to the transmit package. Codec methods are not safe for
// concurrent use; the tick path is expected to be single-threaded.
type Codec struct {
	rows     int
	cols     int
	framing  Framing
	checksum ChecksumMode
	seq      uint32 // last emitted sequence number
}

// NewCodec creates a codec for a rows x cols destination grid. Defaults:
// marker framing with single-byte fields, CRC-8 checksum.
func NewCodec(rows, cols int, opts ...Option) (*Codec, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("grid dimensions must be positive: %dx%d", rows, cols)
	}

	c := &Codec{
		rows:     rows,
		cols:     cols,
		framing:  DefaultFraming(),
		checksum: ChecksumCRC8,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if err := c.framing.validate(); err != nil {
		return nil, err
	}
	if c.framing.CornerMarkers && rows*cols < 4 {
		return nil, fmt.Errorf("%w: grid too small for corner markers", ErrInvalidFraming)
	}
	if c.framing.Overhead() > c.Capacity() {
		return nil, &CapacityError{FrameLen: c.framing.Overhead(), Capacity: c.Capacity()}
	}

	return c, nil
}

// Rows returns the destination grid's row count.
func (c *Codec) Rows() int { return c.rows }

// Cols returns the destination grid's column count.
func (c *Codec) Cols() int { return c.cols }

// Framing returns the active framing policy.
func (c *Codec) Framing() Framing { return c.framing }

// ChecksumMode returns the active checksum algorithm.
func (c *Codec) ChecksumMode() ChecksumMode { return c.checksum }

// Capacity returns the destination grid's data capacity in bytes.
func (c *Codec) Capacity() int {
	return c.framing.DataCapacity(c.rows, c.cols)
}

// MaxPayload returns the largest payload BuildFrame will accept.
func (c *Codec) MaxPayload() int {
	maxLen := c.Capacity() - c.framing.Overhead()
	if fieldMax := c.framing.MaxPayloadLen(); maxLen > fieldMax {
		maxLen = fieldMax
	}
	return maxLen
}

// Sequence returns the last emitted sequence number. It is 0 before the
// first successful build.
func (c *Codec) Sequence() uint32 { return c.seq }

// SetSequence overwrites the sequence counter; the next successful build
// emits seq+1 modulo the framing's field width. A caller that builds a
// frame but fails to deliver it rewinds with this so the retried frame
// reuses the undelivered number instead of leaving a gap on the wire.
func (c *Codec) SetSequence(seq uint32) { c.seq = seq }

// BuildFrame wraps payload into one complete frame: optional marker byte,
// sequence and length fields (big-endian in the configured width), the raw
// payload, and the checksum computed over everything preceding it. The
// sequence counter advances by one, wrapping at the field modulus, and is
// committed only on success: a failed build leaves the codec's state
// untouched so the same sequence number is reused on the next attempt.
func (c *Codec) BuildFrame(payload []byte) ([]byte, error) {
	if len(payload) > c.MaxPayload() {
		return nil, &CapacityError{
			FrameLen: c.framing.Overhead() + len(payload),
			Capacity: c.Capacity(),
		}
	}

	next := (c.seq + 1) % c.framing.SequenceModulus()

	buf := make([]byte, 0, c.framing.Overhead()+len(payload))
	if c.framing.Marker {
		buf = append(buf, frame.Marker)
	}
	buf = c.framing.appendField(buf, next)
	buf = c.framing.appendField(buf, uint32(len(payload)))
	buf = append(buf, payload...)
	buf = append(buf, Checksum(c.checksum, buf))

	c.seq = next
	return buf, nil
}

// Pack lays a built frame out into the codec's grid geometry.
func (c *Codec) Pack(frameBytes []byte) (*Grid, error) {
	return Pack(frameBytes, c.rows, c.cols, c.framing)
}

// Encode is BuildFrame followed by Pack. On any error the sequence counter
// is left unchanged and no grid is produced.
func (c *Codec) Encode(payload []byte) (*Grid, error) {
	prev := c.seq
	frameBytes, err := c.BuildFrame(payload)
	if err != nil {
		return nil, err
	}
	grid, err := c.Pack(frameBytes)
	if err != nil {
		// Unreachable as long as MaxPayload mirrors DataCapacity, but the
		// packer owns the authoritative bound, so honor its verdict.
		c.seq = prev
		return nil, err
	}
	return grid, nil
}
