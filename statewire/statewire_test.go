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

package statewire

import (
	"testing"

	pixelbus "github.com/PixelbusProject/go-pixelbus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() Snapshot {
	return Snapshot{
		Health:          18250,
		MaxHealth:       21000,
		Power:           73,
		MaxPower:        100,
		CastSpellID:     116,
		CastRemainingMS: 1400,
		GCDRemainingMS:  600,
		Auras: []Aura{
			{ID: 774, RemainingMS: 9800},
			{ID: 8936, RemainingMS: 4200},
		},
		Cooldowns: []Cooldown{
			{SpellID: 18562, RemainingMS: 11000},
		},
	}
}

func TestSnapshot_RoundTrip(t *testing.T) {
	t.Parallel()

	snap := sampleSnapshot()
	payload, err := snap.Marshal()
	require.NoError(t, err)

	got, err := Unmarshal(payload)
	require.NoError(t, err)
	assert.Equal(t, &snap, got)
}

func TestSnapshot_ZeroCastOmitted(t *testing.T) {
	t.Parallel()

	snap := Snapshot{Health: 100, MaxHealth: 100, Power: 5, MaxPower: 10}
	payload, err := snap.Marshal()
	require.NoError(t, err)

	fields, err := DecodeFields(payload)
	require.NoError(t, err)

	_, ok := GetField(fields, FieldCastSpell)
	assert.False(t, ok, "idle producers do not waste bytes on cast state")
	_, ok = GetField(fields, FieldGCDRemain)
	assert.False(t, ok)
}

func TestSnapshot_MarshalBudget(t *testing.T) {
	t.Parallel()

	snap := sampleSnapshot()
	full, err := snap.Marshal()
	require.NoError(t, err)

	// A generous budget is equivalent to Marshal.
	budgeted, err := snap.MarshalBudget(len(full))
	require.NoError(t, err)
	assert.Equal(t, full, budgeted)

	// A tight budget drops whole trailing fields, never splits one.
	tight, err := snap.MarshalBudget(len(full) - 1)
	require.NoError(t, err)
	assert.Less(t, len(tight), len(full))

	fields, err := DecodeFields(tight)
	require.NoError(t, err)
	assert.NotEmpty(t, fields, "resources survive a tight budget")

	// Every prefix the budget produces must still parse cleanly.
	for budget := 0; budget <= len(full); budget++ {
		payload, err := snap.MarshalBudget(budget)
		require.NoError(t, err)
		require.LessOrEqual(t, len(payload), budget)
		_, err = DecodeFields(payload)
		require.NoError(t, err, "budget %d produced an unparseable payload", budget)
	}
}

func TestDecodeFields_Truncated(t *testing.T) {
	t.Parallel()

	payload, err := EncodeFields([]Field{U32Field(FieldHealth, 42)})
	require.NoError(t, err)

	_, err = DecodeFields(payload[:2])
	require.ErrorIs(t, err, ErrShortFieldHeader)

	_, err = DecodeFields(payload[:HeaderLen+2])
	require.ErrorIs(t, err, ErrShortFieldValue)
}

func TestUnmarshal_SkipsUnknownFields(t *testing.T) {
	t.Parallel()

	payload, err := EncodeFields([]Field{
		U32Field(FieldHealth, 500),
		U8Field(0x7F, 9), // unknown to this reader
		U16Field(FieldPower, 12),
	})
	require.NoError(t, err)

	snap, err := Unmarshal(payload)
	require.NoError(t, err)
	assert.Equal(t, uint32(500), snap.Health)
	assert.Equal(t, uint16(12), snap.Power)
}

// TestSource_FitsCodec wires the source against a real codec: the budgeted
// payload must always pass the capacity check, whatever the grid size.
func TestSource_FitsCodec(t *testing.T) {
	t.Parallel()

	codec, err := pixelbus.NewCodec(4, 4)
	require.NoError(t, err)

	source := NewSource(sampleSnapshot, codec.MaxPayload())
	payload, err := source.ProduceBytes()
	require.NoError(t, err)
	require.LessOrEqual(t, len(payload), codec.MaxPayload())

	grid, err := codec.Encode(payload)
	require.NoError(t, err)
	assert.NotNil(t, grid)

	// What survives the budget still decodes to a coherent snapshot.
	res, err := pixelbus.Decode(grid, codec.Framing(), codec.ChecksumMode())
	require.NoError(t, err)
	snap, err := Unmarshal(res.Payload)
	require.NoError(t, err)
	assert.Equal(t, uint32(18250), snap.Health)
}

func TestSource_NilProvider(t *testing.T) {
	t.Parallel()

	source := NewSource(nil, 0)
	_, err := source.ProduceBytes()
	require.Error(t, err)
}
