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

package raw

// SyncWord is the standard MFM sync mark. It contains a clock violation and
// therefore cannot occur in regularly encoded data.
const SyncWord uint16 = 0x4489

// SyncLength is the length of the sync mark in bits
const SyncLength = 16

// FindSync looks for the sync mark in the first bits bits of packed data,
// starting at bit offset from. It returns the bit offset of the first bit of
// the mark, or -1 if there is none.
func FindSync(data []byte, bits, from uint32) int64 {

	if max := uint32(len(data)) * 8; bits > max {
		bits = max
	}

	var word uint16
	var read uint32

	for pos := from; pos < bits; pos++ {
		word = word<<1 | uint16(bitAt(data, pos))
		read++
		if read >= SyncLength && word == SyncWord {
			return int64(pos) - SyncLength + 1
		}
	}

	return -1
}

// SyncOffsets returns the bit offsets of all sync marks within the first bits
// bits of data.
func SyncOffsets(data []byte, bits uint32) []uint32 {
	var ret []uint32
	for from := uint32(0); ; {
		off := FindSync(data, bits, from)
		if off < 0 {
			return ret
		}
		ret = append(ret, uint32(off))
		from = uint32(off) + 1
	}
}

//
func bitAt(data []byte, pos uint32) uint32 {
	return uint32(data[pos>>3]>>(7-pos&7)) & 0x01
}
