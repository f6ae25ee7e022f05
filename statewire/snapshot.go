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
	"encoding/binary"
	"fmt"
)

// Field IDs carried in a snapshot payload
const (
	FieldHealth     uint8 = 0x01
	FieldMaxHealth  uint8 = 0x02
	FieldPower      uint8 = 0x03
	FieldMaxPower   uint8 = 0x04
	FieldCastSpell  uint8 = 0x05
	FieldCastRemain uint8 = 0x06
	FieldGCDRemain  uint8 = 0x07
	FieldAura       uint8 = 0x10
	FieldCooldown   uint8 = 0x11
)

// Aura is one active aura and its remaining duration.
type Aura struct {
	ID          uint16
	RemainingMS uint16
}

// Cooldown is one spell cooldown and its remaining duration.
type Cooldown struct {
	SpellID     uint16
	RemainingMS uint16
}

// Snapshot is one observation of the producer's state. Fields are ordered
// by transmission priority: resources first, cast state next, then auras
// and cooldowns, so budget-constrained marshalling drops the least
// important data first.
type Snapshot struct {
	Auras           []Aura
	Cooldowns       []Cooldown
	Health          uint32
	MaxHealth       uint32
	CastSpellID     uint32
	Power           uint16
	MaxPower        uint16
	CastRemainingMS uint16
	GCDRemainingMS  uint16
}

// Fields expands the snapshot into TLV fields in priority order. Zero-value
// cast state is omitted; auras and cooldowns use one repeated field each.
func (s *Snapshot) Fields() []Field {
	fields := []Field{
		U32Field(FieldHealth, s.Health),
		U32Field(FieldMaxHealth, s.MaxHealth),
		U16Field(FieldPower, s.Power),
		U16Field(FieldMaxPower, s.MaxPower),
	}
	if s.CastSpellID != 0 {
		fields = append(fields,
			U32Field(FieldCastSpell, s.CastSpellID),
			U16Field(FieldCastRemain, s.CastRemainingMS),
		)
	}
	if s.GCDRemainingMS != 0 {
		fields = append(fields, U16Field(FieldGCDRemain, s.GCDRemainingMS))
	}
	for _, a := range s.Auras {
		v := make([]byte, 4)
		binary.BigEndian.PutUint16(v[0:2], a.ID)
		binary.BigEndian.PutUint16(v[2:4], a.RemainingMS)
		fields = append(fields, Field{ID: FieldAura, Type: TypeBytes, Value: v})
	}
	for _, c := range s.Cooldowns {
		v := make([]byte, 4)
		binary.BigEndian.PutUint16(v[0:2], c.SpellID)
		binary.BigEndian.PutUint16(v[2:4], c.RemainingMS)
		fields = append(fields, Field{ID: FieldCooldown, Type: TypeBytes, Value: v})
	}
	return fields
}

// Marshal serializes the full snapshot.
func (s *Snapshot) Marshal() ([]byte, error) {
	return EncodeFields(s.Fields())
}

// MarshalBudget serializes as many whole fields as fit in max bytes,
// dropping trailing (lowest-priority) fields. A field is never split: a
// reader must always see complete TLV records.
func (s *Snapshot) MarshalBudget(max int) ([]byte, error) {
	var buf []byte
	for _, f := range s.Fields() {
		if len(buf)+f.EncodedLen() > max {
			break
		}
		var err error
		if buf, err = AppendField(buf, f); err != nil {
			return nil, err
		}
	}
	return buf, nil
}

// Unmarshal reconstructs a snapshot from a TLV payload. Unknown field IDs
// are skipped so newer producers stay readable.
func Unmarshal(payload []byte) (*Snapshot, error) {
	fields, err := DecodeFields(payload)
	if err != nil {
		return nil, err
	}

	var s Snapshot
	for _, f := range fields {
		switch f.ID {
		case FieldHealth:
			if s.Health, err = f.U32(); err != nil {
				return nil, err
			}
		case FieldMaxHealth:
			if s.MaxHealth, err = f.U32(); err != nil {
				return nil, err
			}
		case FieldPower:
			if s.Power, err = f.U16(); err != nil {
				return nil, err
			}
		case FieldMaxPower:
			if s.MaxPower, err = f.U16(); err != nil {
				return nil, err
			}
		case FieldCastSpell:
			if s.CastSpellID, err = f.U32(); err != nil {
				return nil, err
			}
		case FieldCastRemain:
			if s.CastRemainingMS, err = f.U16(); err != nil {
				return nil, err
			}
		case FieldGCDRemain:
			if s.GCDRemainingMS, err = f.U16(); err != nil {
				return nil, err
			}
		case FieldAura:
			if len(f.Value) != 4 {
				return nil, fmt.Errorf("statewire: aura field has %d bytes, want 4", len(f.Value))
			}
			s.Auras = append(s.Auras, Aura{
				ID:          binary.BigEndian.Uint16(f.Value[0:2]),
				RemainingMS: binary.BigEndian.Uint16(f.Value[2:4]),
			})
		case FieldCooldown:
			if len(f.Value) != 4 {
				return nil, fmt.Errorf("statewire: cooldown field has %d bytes, want 4", len(f.Value))
			}
			s.Cooldowns = append(s.Cooldowns, Cooldown{
				SpellID:     binary.BigEndian.Uint16(f.Value[0:2]),
				RemainingMS: binary.BigEndian.Uint16(f.Value[2:4]),
			})
		}
	}
	return &s, nil
}
