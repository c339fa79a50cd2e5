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
	"math/bits"
	"strings"
)

// SectorMap records which sectors of a track passed validation. Bit n stands
// for the sector at position n.
type SectorMap uint32

//
func (m *SectorMap) Set(ix int) {
	if 0 <= ix && ix < 32 {
		*m |= 1 << uint(ix)
	}
}

//
func (m SectorMap) IsSet(ix int) bool {
	return 0 <= ix && ix < 32 && m&(1<<uint(ix)) != 0
}

//
func (m SectorMap) Count() int {
	return bits.OnesCount32(uint32(m))
}

// IsComplete returns true if all of the first count sectors are set.
func (m SectorMap) IsComplete(count int) bool {
	if count <= 0 {
		return true
	}
	if count >= 32 {
		return uint32(m) == ^uint32(0)
	}
	all := SectorMap(1<<uint(count)) - 1
	return m&all == all
}

// Format renders the first count sectors, with sector 0 first; '+' for valid,
// '-' for invalid sectors.
func (m SectorMap) Format(count int) string {
	var b strings.Builder
	for ix := 0; ix < count; ix++ {
		if m.IsSet(ix) {
			b.WriteByte('+')
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}
