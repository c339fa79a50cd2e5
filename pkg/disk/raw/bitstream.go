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

// BitStream reads MSB-first bits from captured track data. The data holds one
// or more revolutions of trackBits bits each. Reading continues across
// revolutions, replaying the captured ones if necessary, until the requested
// number of revolutions has been read.
type BitStream struct {
	data        []byte
	trackBits   uint32
	stored      uint64
	total       uint64
	pos         uint64
	word        uint32
	indexOffset uint32
}

// NewBitStream creates a stream over data. When trackBits is 0, data is taken
// to be exactly one revolution. revolutions is the number of revolutions to
// read before the stream is exhausted, at least 1.
func NewBitStream(data []byte, trackBits uint32, revolutions int) *BitStream {

	avail := uint64(len(data)) * 8
	if trackBits == 0 || uint64(trackBits) > avail {
		trackBits = uint32(avail)
	}

	if revolutions < 1 {
		revolutions = 1
	}

	s := &BitStream{
		data:      data,
		trackBits: trackBits,
		total:     uint64(trackBits) * uint64(revolutions),
	}

	if trackBits > 0 {
		s.stored = avail / uint64(trackBits)
	}

	return s
}

//
func (s *BitStream) NextBit() (uint32, bool) {

	if s.pos >= s.total {
		return 0, false
	}

	rev := (s.pos / uint64(s.trackBits)) % s.stored
	off := s.pos % uint64(s.trackBits)
	bit := bitAt(s.data, uint32(rev*uint64(s.trackBits)+off))

	s.word = s.word<<1 | bit
	s.pos++

	s.indexOffset = uint32(off) + 1
	if s.indexOffset == s.trackBits {
		s.indexOffset = 0
	}

	return bit, true
}

//
func (s *BitStream) NextBits(n int) (uint32, bool) {
	if n <= 0 {
		return 0, true
	}
	for ix := 0; ix < n; ix++ {
		if _, ok := s.NextBit(); !ok {
			return 0, false
		}
	}
	if n >= 32 {
		return s.word, true
	}
	return s.word & (1<<uint(n) - 1), true
}

//
func (s *BitStream) Word() uint32 {
	return s.word
}

//
func (s *BitStream) IndexOffset() uint32 {
	return s.indexOffset
}

//
func (s *BitStream) TrackLength() uint32 {
	return s.trackBits
}

// Revolution returns the number of complete revolutions read so far
func (s *BitStream) Revolution() int {
	if s.trackBits == 0 {
		return 0
	}
	return int(s.pos / uint64(s.trackBits))
}
