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

package lemmings

import (
	"encoding/binary"
	"fmt"
)

/*
	Track layout:

		u16 0x4489, 0x552a, 0xaaaa	track header
		6 back-to-back sectors, no gaps

	Decoded sector:

		u16 checksum	sum of all 16-bit data words
		u16 data[512]

	Every u16 of a sector is recorded as two MFM words, first the odd data bits,
	then the even ones. Only 6kB are stored, so this is not a long track. Bit
	cells are the usual 2us.
*/

const SectorCount = 6
const SectorWords = 512
const SectorLength = SectorWords * 2
const TrackLength = SectorCount * SectorLength

// checksum word plus data words
const rawSectorWords = SectorWords + 1
const rawTrackWords = SectorCount * rawSectorWords

// second part of the track header, following the sync word
const HeaderMark uint32 = 0x552aaaaa

// MFM encoding this after the sync word yields HeaderMark
const headerFill uint32 = 0xf000

// DefaultTrackBits is used for encoding tracks that don't specify a length
const DefaultTrackBits = 100150

// DefaultDataBitOffset is used for tracks read from plain sector images
const DefaultDataBitOffset = 1024

// DefaultFill marks sectors that could not be decoded
var DefaultFill = []byte("NLEM")

// Checksum returns the 16-bit wrapping sum of the big-endian words in sector.
// Only complete words count.
func Checksum(sector []byte) uint16 {
	var sum uint16
	for ix := 0; ix+1 < len(sector); ix += 2 {
		sum += binary.BigEndian.Uint16(sector[ix:])
	}
	return sum
}

//
func verifyChecksum(sum, check uint16) error {
	if sum != check {
		return fmt.Errorf("want %04x, got %04x", check, sum)
	}
	return nil
}

// fill covers buf with repetitions of pattern
func fill(buf, pattern []byte) {
	if len(pattern) == 0 {
		for ix := range buf {
			buf[ix] = 0
		}
		return
	}
	for ix := 0; ix < len(buf); ix += len(pattern) {
		copy(buf[ix:], pattern)
	}
}
