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

package serial

import (
	"testing"

	pixelbus "github.com/PixelbusProject/go-pixelbus"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeBlob(t *testing.T) {
	t.Parallel()

	codec, err := pixelbus.NewCodec(4, 4)
	require.NoError(t, err)
	grid, err := codec.Encode([]byte{1, 2, 3})
	require.NoError(t, err)

	session := uuid.MustParse("c6a7b810-9dad-11d1-80b4-00c04fd430c8")
	blob := EncodeBlob(grid, session, 4)

	require.Len(t, blob, 4+16+3+4*4*3)
	assert.Equal(t, Magic, blob[0:4])
	assert.Equal(t, session[:], blob[4:20])
	assert.Equal(t, byte(4), blob[20], "rows")
	assert.Equal(t, byte(4), blob[21], "cols")
	assert.Equal(t, byte(4), blob[22], "cell size hint")

	// First cell triple follows the header: marker framing puts 0xAA first.
	assert.Equal(t, byte(0xAA), blob[23])

	// The triples are the grid's raw cells, so a controller-side reader can
	// feed them straight back into the byte-level decoder.
	cells := grid.Cells()
	for i, c := range cells {
		assert.Equal(t, c.R, blob[23+i*3])
		assert.Equal(t, c.G, blob[23+i*3+1])
		assert.Equal(t, c.B, blob[23+i*3+2])
	}
}

func TestEncodeBlob_Deterministic(t *testing.T) {
	t.Parallel()

	grid, err := pixelbus.Pack([]byte{9, 9, 9}, 2, 2, pixelbus.DefaultFraming())
	require.NoError(t, err)

	session := uuid.New()
	assert.Equal(t, EncodeBlob(grid, session, 2), EncodeBlob(grid, session, 2))
}
