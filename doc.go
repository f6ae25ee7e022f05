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

/*
Package pixelbus implements a visual out-of-band transport codec: it frames
arbitrary bytes and packs them into a grid of solid-color RGB blocks that a
rendering collaborator paints on screen, so an external screen-capture
process with no access to the producer can read the data back optically.

The wire unit is the frame: an optional marker byte, a wrapping sequence
number, the payload length, the raw payload, and a one-byte checksum over
everything preceding it. Frames are laid into the grid three bytes per cell
(one per color channel) in row-major order, with unused capacity
zero-filled. The screen is a one-way broadcast with no ACK channel, so the
codec guarantees only that a reader sampling an uncorrupted grid can
detect corruption and recover the payload boundaries.

Basic Usage:

	import (
	    pixelbus "github.com/PixelbusProject/go-pixelbus"
	    "github.com/PixelbusProject/go-pixelbus/render/imagefile"
	)

	// Create a codec for an 8x8 block grid
	codec, err := pixelbus.NewCodec(8, 8,
	    pixelbus.WithChecksum(pixelbus.ChecksumCRC8),
	    pixelbus.WithFraming(pixelbus.DefaultFraming()),
	)
	if err != nil {
	    log.Fatal(err)
	}

	// Encode a payload into a grid
	grid, err := codec.Encode([]byte{1, 2, 3, 4, 5})
	if err != nil {
	    log.Fatal(err)
	}

	// Paint it
	sink, err := imagefile.New("frames/frame-%06d.png")
	if err != nil {
	    log.Fatal(err)
	}
	defer sink.Close()

	if err := sink.Render(grid, 10, 10, 4); err != nil {
	    log.Fatal(err)
	}

Rate-gated transmission with an upstream byte source is handled by the
transmit package, which pulls a ByteSource on each eligible tick and hands
the packed grid to a Sink, emitting at most one frame per minimum interval.

Framing Variants:

Two wire layouts are supported, selected by a single Framing policy rather
than separate code paths:

  - DefaultFraming: marker byte 0xAA, 1-byte sequence and length (mod 256)
  - ExtendedFraming: no marker, 2-byte big-endian sequence and length

Either variant can additionally reserve the four grid corners as pure-white
calibration cells so a reader can locate the grid's extent. The reader must
know the active variant out of band; nothing in the frame negotiates it.

Checksums:

Three interchangeable integrity modes: none (constant zero), xor (running
exclusive-or), and crc8 (polynomial 0x07, initial value 0, MSB-first). An
unrecognized mode falls back to none so a misconfigured producer keeps
transmitting.

Decoding:

The decode direction recovers frames from captured grids or images:

	res, err := pixelbus.DecodeImage(img, 10, 10, 8, 8, 4,
	    pixelbus.DefaultFraming(), pixelbus.ChecksumCRC8)
	if errors.Is(err, pixelbus.ErrChecksumMismatch) {
	    // corrupted capture; discard and wait for the next frame
	}

Error Handling:

All operations return meaningful errors that can be inspected:

	if errors.Is(err, pixelbus.ErrCapacityExceeded) {
	    // shrink the payload or grow the grid
	}

A failed build never advances the sequence counter, so the producer retries
the same logical frame on its next eligible tick.

Thread Safety:

Codec and Transmitter operations are not thread-safe. The tick path is
designed to be driven from a single goroutine; if you need concurrent
access, implement appropriate synchronization in your application.
*/
package pixelbus
