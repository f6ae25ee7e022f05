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
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrCapacityExceeded indicates a frame larger than the grid can carry.
	// The codec never truncates: a build that would overflow fails whole and
	// leaves the sequence counter unchanged.
	ErrCapacityExceeded = errors.New("frame exceeds grid capacity")
	// ErrChecksumMismatch indicates a decoded frame whose stored checksum
	// does not match the one computed over its header and payload.
	ErrChecksumMismatch = errors.New("checksum mismatch")
	// ErrBadMarker indicates a decoded frame that does not start with the
	// expected marker byte.
	ErrBadMarker = errors.New("bad frame marker")
	// ErrShortFrame indicates a byte sequence too short to hold the header,
	// the declared payload and the checksum.
	ErrShortFrame = errors.New("short frame")
	// ErrInvalidFraming indicates a framing policy combination that has no
	// defined wire layout.
	ErrInvalidFraming = errors.New("invalid framing configuration")
	// ErrSinkClosed indicates a render call on a closed sink.
	ErrSinkClosed = errors.New("sink closed")
)

// CapacityError reports a frame that does not fit its destination grid.
// It wraps ErrCapacityExceeded so callers can match with errors.Is.
type CapacityError struct {
	FrameLen int // length the frame would have had
	Capacity int // data capacity of the destination grid in bytes
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("frame length %d exceeds grid capacity %d", e.FrameLen, e.Capacity)
}

func (e *CapacityError) Unwrap() error {
	return ErrCapacityExceeded
}

// ChecksumError reports a decoded frame that failed integrity verification.
// The parsed sequence number is retained so a reader can log which frame
// was discarded. It wraps ErrChecksumMismatch.
type ChecksumError struct {
	Sequence uint32
	Computed byte
	Received byte
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("checksum mismatch on frame %d: computed 0x%02X, received 0x%02X",
		e.Sequence, e.Computed, e.Received)
}

func (e *ChecksumError) Unwrap() error {
	return ErrChecksumMismatch
}
