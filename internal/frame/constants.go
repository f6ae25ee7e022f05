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

// Package frame provides wire-level constants and checksum primitives for
// the visual transport frame format
package frame

// Frame markers and control bytes
const (
	Marker = 0xAA // Start-of-frame sentinel (marker framing only)
)

// Checksum parameters
const (
	CRCPoly     = 0x07 // CRC-8 generator polynomial x^8 + x^2 + x + 1
	ChecksumLen = 1    // Trailing checksum is always a single byte
)

// CalibrationChannel is the channel value of a corner calibration cell.
// Corners are forced to pure white so a reader can locate the grid extent
// regardless of payload content.
const CalibrationChannel = 0xFF
