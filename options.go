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

// Option is a functional option for configuring a Codec
type Option func(*Codec) error

// WithFraming sets the framing policy. The combination is validated when
// the codec is constructed.
func WithFraming(f Framing) Option {
	return func(c *Codec) error {
		c.framing = f
		return nil
	}
}

// WithChecksum sets the checksum algorithm. An unrecognized mode is kept
// and behaves as ChecksumNone at compute time; it is not an error.
func WithChecksum(mode ChecksumMode) Option {
	return func(c *Codec) error {
		c.checksum = mode
		return nil
	}
}

// WithCornerMarkers reserves the four corner cells as white calibration
// markers, shrinking the grid's data capacity by four cells.
func WithCornerMarkers() Option {
	return func(c *Codec) error {
		c.framing.CornerMarkers = true
		return nil
	}
}

// WithSequence seeds the sequence counter, for producers resuming an
// interrupted session. The next emitted frame carries seq+1 modulo the
// framing's field modulus.
func WithSequence(seq uint32) Option {
	return func(c *Codec) error {
		c.seq = seq
		return nil
	}
}
