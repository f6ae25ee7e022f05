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
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		framing Framing
		mode    ChecksumMode
		payload []byte
	}{
		{
			name:    "Marker_CRC8",
			framing: DefaultFraming(),
			mode:    ChecksumCRC8,
			payload: []byte{0x01, 0x04, 0xFF, 0x00, 0x80, 0x7F},
		},
		{
			name:    "Marker_XOR",
			framing: DefaultFraming(),
			mode:    ChecksumXOR,
			payload: []byte("status"),
		},
		{
			name:    "Marker_None",
			framing: DefaultFraming(),
			mode:    ChecksumNone,
			payload: []byte{0xDE, 0xAD},
		},
		{
			name:    "Markerless_CRC8",
			framing: Framing{FieldWidth: Width8},
			mode:    ChecksumCRC8,
			payload: []byte{1, 2, 3, 4, 5},
		},
		{
			name:    "Extended_CRC8",
			framing: ExtendedFraming(),
			mode:    ChecksumCRC8,
			payload: []byte("a longer payload for the sixteen bit variant"),
		},
		{
			name:    "Corners_CRC8",
			framing: Framing{Marker: true, FieldWidth: Width8, CornerMarkers: true},
			mode:    ChecksumCRC8,
			payload: []byte{7, 7, 7},
		},
		{
			name:    "Empty_Payload",
			framing: DefaultFraming(),
			mode:    ChecksumCRC8,
			payload: nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			codec, err := NewCodec(8, 8, WithFraming(tt.framing), WithChecksum(tt.mode))
			require.NoError(t, err)

			grid, err := codec.Encode(tt.payload)
			require.NoError(t, err)

			res, err := Decode(grid, tt.framing, tt.mode)
			require.NoError(t, err)
			assert.Equal(t, codec.Sequence(), res.Sequence)
			if len(tt.payload) == 0 {
				assert.Empty(t, res.Payload)
			} else {
				assert.Equal(t, tt.payload, res.Payload)
			}
		})
	}
}

func TestDecodeBytes_BadMarker(t *testing.T) {
	t.Parallel()

	// Frame with a wrong sentinel in front.
	data := []byte{0xBB, 1, 2, 0x01, 0x02, 0x00}
	_, err := DecodeBytes(data, DefaultFraming(), ChecksumCRC8)
	require.ErrorIs(t, err, ErrBadMarker)
}

func TestDecodeBytes_ShortFrame(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{name: "Empty", data: nil},
		{name: "Header_Only_Truncated", data: []byte{0xAA, 1}},
		{name: "Length_Overruns_Data", data: []byte{0xAA, 1, 200, 0x01, 0x02, 0x00}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := DecodeBytes(tt.data, DefaultFraming(), ChecksumCRC8)
			require.ErrorIs(t, err, ErrShortFrame)
		})
	}
}

func TestDecode_CorruptionDetected(t *testing.T) {
	t.Parallel()

	codec, err := NewCodec(4, 4, WithChecksum(ChecksumCRC8))
	require.NoError(t, err)

	frameBytes, err := codec.BuildFrame([]byte{1, 2, 3, 4, 5})
	require.NoError(t, err)

	// Corrupt one payload byte after the checksum was computed.
	frameBytes[4] ^= 0x10

	grid, err := Pack(frameBytes, 4, 4, codec.Framing())
	require.NoError(t, err)

	_, err = Decode(grid, codec.Framing(), ChecksumCRC8)
	require.ErrorIs(t, err, ErrChecksumMismatch)

	var csErr *ChecksumError
	require.ErrorAs(t, err, &csErr)
	assert.Equal(t, codec.Sequence(), csErr.Sequence,
		"discarded frame keeps its parsed sequence for logging")
	assert.NotEqual(t, csErr.Computed, csErr.Received)
}

func TestDecodeImage_CenterSampling(t *testing.T) {
	t.Parallel()

	const (
		rows, cols = 4, 4
		cellSize   = 4
		originX    = 10
		originY    = 10
	)

	codec, err := NewCodec(rows, cols, WithChecksum(ChecksumCRC8))
	require.NoError(t, err)

	grid, err := codec.Encode([]byte{1, 2, 3, 4, 5})
	require.NoError(t, err)

	// Paint the grid the way a renderer would: solid cellSize blocks at an
	// origin offset, surrounding pixels left at an arbitrary background.
	img := image.NewRGBA(image.Rect(0, 0, originX+cols*cellSize+8, originY+rows*cellSize+8))
	for y := 0; y < img.Bounds().Dy(); y++ {
		for x := 0; x < img.Bounds().Dx(); x++ {
			img.Set(x, y, color.RGBA{R: 30, G: 30, B: 30, A: 255})
		}
	}
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			c := grid.At(row, col)
			for dy := 0; dy < cellSize; dy++ {
				for dx := 0; dx < cellSize; dx++ {
					img.Set(originX+col*cellSize+dx, originY+row*cellSize+dy,
						color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
				}
			}
		}
	}

	res, err := DecodeImage(img, originX, originY, rows, cols, cellSize,
		codec.Framing(), ChecksumCRC8)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4, 5}, res.Payload)
	assert.Equal(t, codec.Sequence(), res.Sequence)
}

func TestDecodeImage_OutOfBounds(t *testing.T) {
	t.Parallel()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	_, err := DecodeImage(img, 0, 0, 8, 8, 4, DefaultFraming(), ChecksumCRC8)
	require.Error(t, err)
}
