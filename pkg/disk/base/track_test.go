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
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackSectors(t *testing.T) {

	tr := NewTrack(LEMMINGS, 3, 4)
	require.Equal(t, 12, tr.Len())
	copy(tr.Data, []byte("aaaabbbbcccc"))

	assert.Equal(t, []byte("aaaa"), tr.Sector(0))
	assert.Equal(t, []byte("cccc"), tr.Sector(2))
	assert.Nil(t, tr.Sector(3))
	assert.Nil(t, tr.Sector(-1))

	tr.Data = tr.Data[:10]
	assert.Nil(t, tr.Sector(2))
}

func TestTrackValidate(t *testing.T) {

	tr := NewTrack(LEMMINGS, 6, 1024)
	assert.NoError(t, tr.Validate())

	tr.TotalBits = 1000
	tr.DataBitOffset = 999
	assert.NoError(t, tr.Validate())

	tr.DataBitOffset = 1000
	assert.Error(t, tr.Validate())

	tr.DataBitOffset = 0
	tr.Data = tr.Data[:100]
	assert.Error(t, tr.Validate())

	assert.Error(t, NewTrack(LEMMINGS, 0, 1024).Validate())
}

func TestTrackOutput(t *testing.T) {

	tr := NewTrack(LEMMINGS, 2, 16)
	tr.Number = 7
	tr.DataBitOffset = 42
	tr.TotalBits = 100150
	tr.Valid.Set(1)
	assert.False(t, tr.IsComplete())

	var out bytes.Buffer
	tr.List(&out)
	assert.Contains(t, out.String(), "track 7 (lemmings)")
	assert.Contains(t, out.String(), "-+")
	assert.Contains(t, out.String(), "1 of 2 sectors valid")

	out.Reset()
	tr.Emit(&out)
	assert.Contains(t, out.String(), "SECTOR: 0 - INVALID")
	assert.Contains(t, out.String(), "SECTOR: 1 - valid")
	assert.Contains(t, out.String(), "00000000  00 00 00 00")
}
