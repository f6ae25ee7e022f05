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

import "fmt"

// Source adapts a snapshot provider to the transport's ByteSource
// interface. On every eligible tick it pulls a fresh snapshot and
// serializes it within the configured byte budget, so the payload always
// fits the destination grid.
type Source struct {
	provider func() Snapshot
	budget   int
}

// NewSource creates a byte source. budget should be the codec's
// MaxPayload; a non-positive budget serializes snapshots whole.
func NewSource(provider func() Snapshot, budget int) *Source {
	return &Source{provider: provider, budget: budget}
}

// ProduceBytes serializes the current snapshot.
func (s *Source) ProduceBytes() ([]byte, error) {
	if s.provider == nil {
		return nil, fmt.Errorf("statewire: no snapshot provider")
	}
	snap := s.provider()
	if s.budget > 0 {
		return snap.MarshalBudget(s.budget)
	}
	return snap.Marshal()
}
