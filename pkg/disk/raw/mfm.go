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

/*
	MFM helpers

	On these tracks, a 16-bit data word is recorded as two 16-bit MFM words.
	The first carries the odd numbered data bits (15, 13, ..., 1), the second
	the even numbered ones (14, 12, ..., 0). Within an MFM word, data bits sit
	at the positions of mask 0x5555, clock bits at 0xaaaa. A clock bit is set
	only if the data bits on both sides of it are 0.
*/

const dataMask = 0x5555
const clockMask = 0xaaaa

// SplitEvenOdd splits word w into its two data bit planes, each aligned to the
// data positions of an MFM word and without clock bits.
func SplitEvenOdd(w uint16) (even, odd uint16) {
	return (w >> 1) & dataMask, w & dataMask
}

// JoinEvenOdd is the inverse of SplitEvenOdd. Clock bits present in even or odd
// are ignored.
func JoinEvenOdd(even, odd uint16) uint16 {
	return ((even & dataMask) << 1) | (odd & dataMask)
}

// DecodeLong recovers a data word from the 32 raw bits it was recorded as.
func DecodeLong(g uint32) uint16 {
	return JoinEvenOdd(uint16(g>>16), uint16(g))
}

// AddClock inserts clock bits into the data bits of plane. prev is the last
// data bit recorded before this word.
func AddClock(plane uint16, prev uint32) uint16 {
	d := plane & dataMask
	c := ^((d << 1) | (d >> 1) | uint16(prev&1)<<15) & clockMask
	return d | c
}

// EncodeLong MFM encodes data word w into 32 raw bits, as first the even and
// then the odd plane. prev is the last data bit recorded before w.
func EncodeLong(w uint16, prev uint32) uint32 {
	even, odd := SplitEvenOdd(w)
	hi := AddClock(even, prev)
	lo := AddClock(odd, uint32(even&1))
	return uint32(hi)<<16 | uint32(lo)
}
