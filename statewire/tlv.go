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

// Package statewire serializes producer state snapshots into the compact
// TLV payloads carried by the visual transport. Header fields are single
// bytes, since the frame budget is a few dozen bytes, and multi-byte
// values are big-endian.
package statewire

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// HeaderLen is the fixed per-field overhead: ID, type and value length.
const HeaderLen = 3

// Common errors
var (
	ErrShortFieldHeader = errors.New("statewire: short field header")
	ErrShortFieldValue  = errors.New("statewire: short field value")
	ErrValueTooLarge    = errors.New("statewire: field value exceeds 255 bytes")
)

// Field type IDs
const (
	TypeU8 uint8 = iota + 1
	TypeU16
	TypeU32
	TypeBool
	TypeBytes
)

// Field is one TLV field.
type Field struct {
	Value []byte
	ID    uint8
	Type  uint8
}

// U8Field builds a one-byte field.
func U8Field(id uint8, v uint8) Field {
	return Field{ID: id, Type: TypeU8, Value: []byte{v}}
}

// U16Field builds a big-endian two-byte field.
func U16Field(id uint8, v uint16) Field {
	return Field{ID: id, Type: TypeU16, Value: binary.BigEndian.AppendUint16(nil, v)}
}

// U32Field builds a big-endian four-byte field.
func U32Field(id uint8, v uint32) Field {
	return Field{ID: id, Type: TypeU32, Value: binary.BigEndian.AppendUint32(nil, v)}
}

// BoolField builds a one-byte boolean field.
func BoolField(id uint8, v bool) Field {
	b := byte(0)
	if v {
		b = 1
	}
	return Field{ID: id, Type: TypeBool, Value: []byte{b}}
}

// EncodedLen returns the field's full wire length.
func (f Field) EncodedLen() int {
	return HeaderLen + len(f.Value)
}

// U16 reads the field value as big-endian uint16.
func (f Field) U16() (uint16, error) {
	if f.Type != TypeU16 || len(f.Value) != 2 {
		return 0, fmt.Errorf("statewire: field %d is not a u16", f.ID)
	}
	return binary.BigEndian.Uint16(f.Value), nil
}

// U32 reads the field value as big-endian uint32.
func (f Field) U32() (uint32, error) {
	if f.Type != TypeU32 || len(f.Value) != 4 {
		return 0, fmt.Errorf("statewire: field %d is not a u32", f.ID)
	}
	return binary.BigEndian.Uint32(f.Value), nil
}

// AppendField appends the field's wire form to buf.
func AppendField(buf []byte, f Field) ([]byte, error) {
	if len(f.Value) > 255 {
		return nil, fmt.Errorf("%w: field %d has %d bytes", ErrValueTooLarge, f.ID, len(f.Value))
	}
	buf = append(buf, f.ID, f.Type, byte(len(f.Value)))
	return append(buf, f.Value...), nil
}

// EncodeFields serializes fields back to back.
func EncodeFields(fields []Field) ([]byte, error) {
	var buf []byte
	for _, f := range fields {
		var err error
		if buf, err = AppendField(buf, f); err != nil {
			return nil, err
		}
	}
	return buf, nil
}

// DecodeFields parses a payload into its fields.
func DecodeFields(payload []byte) ([]Field, error) {
	fields := make([]Field, 0)
	i := 0
	for i < len(payload) {
		if len(payload)-i < HeaderLen {
			return nil, ErrShortFieldHeader
		}
		id := payload[i]
		typeID := payload[i+1]
		l := int(payload[i+2])
		i += HeaderLen
		if len(payload)-i < l {
			return nil, ErrShortFieldValue
		}
		val := make([]byte, l)
		copy(val, payload[i:i+l])
		i += l
		fields = append(fields, Field{ID: id, Type: typeID, Value: val})
	}
	return fields, nil
}

// GetField returns the first field with the given ID.
func GetField(fields []Field, id uint8) (Field, bool) {
	for _, f := range fields {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}
