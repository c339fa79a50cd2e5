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

package format

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xelalexv/fluxdisk/pkg/disk/base"
	"github.com/xelalexv/fluxdisk/pkg/disk/lemmings"
)

func TestBitsRoundTrip(t *testing.T) {

	img := &BitsImage{
		TrackBits:   20,
		Revolutions: 2,
		Data:        []byte{0x44, 0x89, 0x04, 0x48, 0x90},
	}

	var out bytes.Buffer
	require.NoError(t, WriteBits(img, &out))
	assert.Equal(t, BitsHeaderLength+5, out.Len())
	assert.Equal(t, "FLXB", string(out.Bytes()[:4]))

	read, err := ReadBits(bytes.NewReader(out.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, img, read)

	s := read.Stream(0)
	assert.Equal(t, uint32(20), s.TrackLength())
	v, ok := s.NextBits(20)
	require.True(t, ok)
	assert.Equal(t, uint32(0x44890), v)
	v, ok = s.NextBits(20)
	require.True(t, ok)
	assert.Equal(t, uint32(0x44890), v)
	_, ok = s.NextBit()
	assert.False(t, ok)
}

func TestBitsDefects(t *testing.T) {

	assert.Error(t, WriteBits(&BitsImage{TrackBits: 0, Revolutions: 1},
		&bytes.Buffer{}))
	assert.Error(t, WriteBits(&BitsImage{TrackBits: 8, Revolutions: 0,
		Data: []byte{0}}, &bytes.Buffer{}))
	assert.Error(t, WriteBits(&BitsImage{TrackBits: 16, Revolutions: 2,
		Data: []byte{0, 0, 0}}, &bytes.Buffer{}))

	var out bytes.Buffer
	require.NoError(t, WriteBits(&BitsImage{TrackBits: 16, Revolutions: 1,
		Data: []byte{0x44, 0x89}}, &out))
	data := out.Bytes()

	_, err := ReadBits(bytes.NewReader(data[:10]))
	assert.Error(t, err)
	_, err = ReadBits(bytes.NewReader(data[:17]))
	assert.Error(t, err)

	bad := append([]byte{}, data...)
	copy(bad, "FLXT")
	_, err = ReadBits(bytes.NewReader(bad))
	assert.Error(t, err)

	bad = append([]byte{}, data...)
	bad[4] = 2
	_, err = ReadBits(bytes.NewReader(bad))
	assert.Error(t, err)

	// header claims more revolutions than there is data for
	bad = append([]byte{}, data...)
	bad[7] = 3
	_, err = ReadBits(bytes.NewReader(bad))
	assert.Error(t, err)
}

func TestEncodeDecodeBits(t *testing.T) {

	h := lemmings.NewHandler()
	tr := testTrack()

	img, err := EncodeBits(h, tr)
	require.NoError(t, err)
	assert.Equal(t, tr.TotalBits, img.TrackBits)
	assert.Equal(t, 1, img.Revolutions)

	var out bytes.Buffer
	require.NoError(t, WriteBits(img, &out))
	img, err = ReadBits(&out)
	require.NoError(t, err)

	dec, err := DecodeBits(h, img, tr.Number, 2)
	require.NoError(t, err)
	assert.Equal(t, tr.Valid, dec.Valid)
	assert.Equal(t, tr.DataBitOffset, dec.DataBitOffset)
	assert.Equal(t, tr.Sector(0), dec.Sector(0))
	assert.Equal(t, tr.Sector(5), dec.Sector(5))
}

// lossyHandler damages every track it decodes
type lossyHandler struct {
	*lemmings.Handler
}

func (h lossyHandler) Decode(tracknr int, s base.Stream) (*base.Track, error) {
	t, err := h.Handler.Decode(tracknr, s)
	if err == nil {
		t.Data[0] ^= 0xff
	}
	return t, err
}

func TestVerify(t *testing.T) {

	h := lemmings.NewHandler()

	assert.NoError(t, Verify(h, testTrack()))
	assert.NoError(t, Verify(h, lemmings.NewTrack(1)))

	// payload crossing the index
	tr := testTrack()
	tr.DataBitOffset = 90000
	assert.NoError(t, Verify(h, tr))

	tr = testTrack()
	tr.Valid = 0
	assert.NoError(t, Verify(h, tr))

	assert.Error(t, Verify(lossyHandler{h}, testTrack()))

	tr = testTrack()
	tr.SectorCount = 5
	tr.Data = tr.Data[:5*lemmings.SectorLength]
	assert.Error(t, Verify(h, tr))
}

func TestBitsStreamSingleRevolution(t *testing.T) {
	img := &BitsImage{TrackBits: 8, Revolutions: 1, Data: []byte{0xa5}}

	s := img.Stream(0)
	v, ok := s.NextBits(16)
	require.True(t, ok)
	assert.Equal(t, uint32(0xa5a5), v)
	_, ok = s.NextBit()
	assert.False(t, ok)

	s = img.Stream(1)
	_, ok = s.NextBits(9)
	assert.False(t, ok)

	// asking for more than once around beyond the capture gets two revolutions
	s = img.Stream(1000000000)
	_, ok = s.NextBits(16)
	require.True(t, ok)
	_, ok = s.NextBit()
	assert.False(t, ok)
}
