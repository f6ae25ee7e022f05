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

import "github.com/PixelbusProject/go-pixelbus/internal/frame"

// ChecksumMode selects the integrity algorithm appended to each frame.
type ChecksumMode string

// Supported checksum modes
const (
	// ChecksumNone appends a constant zero byte.
	ChecksumNone ChecksumMode = "none"
	// ChecksumXOR appends the running exclusive-or of the frame bytes.
	ChecksumXOR ChecksumMode = "xor"
	// ChecksumCRC8 appends a CRC-8 (polynomial 0x07, initial value 0,
	// MSB-first, no final XOR) of the frame bytes.
	ChecksumCRC8 ChecksumMode = "crc8"
)

// Checksum computes the integrity byte for data under the given mode. An
// unrecognized mode behaves as ChecksumNone so a misconfigured producer
// keeps transmitting rather than failing. Empty input yields 0 under every
// mode.
func Checksum(mode ChecksumMode, data []byte) byte {
	switch mode {
	case ChecksumCRC8:
		return frame.CRC8(data)
	case ChecksumXOR:
		return frame.XOR(data)
	default:
		return 0
	}
}
