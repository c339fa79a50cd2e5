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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//
func readAll(s *BitStream) []uint32 {
	var ret []uint32
	for {
		b, ok := s.NextBit()
		if !ok {
			return ret
		}
		ret = append(ret, b)
	}
}

func TestBitStreamSingleRevolution(t *testing.T) {
	s := NewBitStream([]byte{0xa5}, 0, 1)
	assert.Equal(t, uint32(8), s.TrackLength())
	assert.Equal(t, []uint32{1, 0, 1, 0, 0, 1, 0, 1}, readAll(s))
	assert.Equal(t, uint32(0xa5), s.Word())
	assert.Equal(t, uint32(0), s.IndexOffset())
	assert.Equal(t, 1, s.Revolution())

	_, ok := s.NextBits(1)
	assert.False(t, ok)
}

func TestBitStreamReplay(t *testing.T) {
	// two stored revolutions of four bits, read three times around
	s := NewBitStream([]byte{0xf0}, 4, 3)
	assert.Equal(t, []uint32{1, 1, 1, 1, 0, 0, 0, 0, 1, 1, 1, 1}, readAll(s))
	assert.Equal(t, 3, s.Revolution())
}

func TestBitStreamIndexOffset(t *testing.T) {
	s := NewBitStream([]byte{0x00, 0x00}, 10, 2)

	_, ok := s.NextBits(3)
	require.True(t, ok)
	assert.Equal(t, uint32(3), s.IndexOffset())

	_, ok = s.NextBits(7)
	require.True(t, ok)
	assert.Equal(t, uint32(0), s.IndexOffset())
	assert.Equal(t, 1, s.Revolution())

	_, ok = s.NextBits(4)
	require.True(t, ok)
	assert.Equal(t, uint32(4), s.IndexOffset())
}

func TestBitStreamNextBits(t *testing.T) {
	s := NewBitStream([]byte{0xab, 0xcd, 0xef, 0x01, 0x23}, 0, 1)

	v, ok := s.NextBits(12)
	require.True(t, ok)
	assert.Equal(t, uint32(0xabc), v)

	v, ok = s.NextBits(0)
	require.True(t, ok)
	assert.Zero(t, v)

	v, ok = s.NextBits(28)
	require.True(t, ok)
	assert.Equal(t, uint32(0xdef0123), v)
	assert.Equal(t, uint32(0xcdef0123), s.Word())

	_, ok = s.NextBits(1)
	assert.False(t, ok)
}

func TestBitStreamClampsTrackLength(t *testing.T) {
	s := NewBitStream([]byte{0xff}, 100, 0)
	assert.Equal(t, uint32(8), s.TrackLength())
	assert.Len(t, readAll(s), 8)

	s = NewBitStream(nil, 0, 5)
	assert.Empty(t, readAll(s))
}
