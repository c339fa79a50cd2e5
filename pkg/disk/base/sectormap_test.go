/*
   FluxDisk - floppy track codec
   Copyright (c) 2021, Alexander Vollschwitz

   This file is part of FluxDisk.

   FluxDisk is free software: you can redistribute it and/or modify
   it under the terms of the GNU General Public License as published by
   the Free Software Foundation, either version 3 of the License, or
   (at your option) any later version.

   FluxDisk is distributed in the hope that it will be useful,
   but WITHOUT ANY WARRANTY; without even the implied warranty of
   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
   GNU General Public License for more details.

   You should have received a copy of the GNU General Public License
   along with FluxDisk. If not, see <http://www.gnu.org/licenses/>.
*/

package base

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSectorMap(t *testing.T) {

	var m SectorMap

	assert.Zero(t, m.Count())
	assert.False(t, m.IsComplete(6))
	assert.True(t, m.IsComplete(0))
	assert.Equal(t, "------", m.Format(6))

	m.Set(0)
	m.Set(2)
	m.Set(2)
	m.Set(-1)
	m.Set(32)

	assert.True(t, m.IsSet(0))
	assert.False(t, m.IsSet(1))
	assert.True(t, m.IsSet(2))
	assert.False(t, m.IsSet(40))
	assert.Equal(t, 2, m.Count())
	assert.Equal(t, "+-+---", m.Format(6))

	for ix := 0; ix < 6; ix++ {
		m.Set(ix)
	}
	assert.True(t, m.IsComplete(6))
	assert.False(t, m.IsComplete(7))
	assert.Equal(t, "++++++", m.Format(6))

	assert.True(t, SectorMap(0xffffffff).IsComplete(32))
	assert.False(t, SectorMap(0x7fffffff).IsComplete(32))
}

func TestTrackType(t *testing.T) {
	assert.Equal(t, LEMMINGS, GetTrackType("lemmings"))
	assert.Equal(t, LEMMINGS, GetTrackType(" Lemmings "))
	assert.Equal(t, UNKNOWN, GetTrackType("amigados"))
	assert.Equal(t, "lemmings", LEMMINGS.String())
	assert.Equal(t, "<unknown>", UNKNOWN.String())
	assert.Equal(t, "trk", LEMMINGS.DefaultFormat())
	assert.Empty(t, UNKNOWN.DefaultFormat())
	assert.Contains(t, TrackTypes(), LEMMINGS)
}
