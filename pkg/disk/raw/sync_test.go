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
)

func TestFindSync(t *testing.T) {

	// sync word at bit offset 3
	data := []byte{0x08, 0x91, 0x20, 0x00}

	assert.Equal(t, int64(3), FindSync(data, 32, 0))
	assert.Equal(t, int64(3), FindSync(data, 32, 3))
	assert.Equal(t, int64(-1), FindSync(data, 32, 4))
	assert.Equal(t, int64(-1), FindSync(data, 18, 0))
	assert.Equal(t, int64(3), FindSync(data, 1000, 0))
}

func TestSyncOffsets(t *testing.T) {
	data := []byte{0x44, 0x89, 0x00, 0x44, 0x89, 0xaa}
	assert.Equal(t, []uint32{0, 24}, SyncOffsets(data, 48))
	assert.Equal(t, []uint32{0}, SyncOffsets(data, 39))
	assert.Nil(t, SyncOffsets([]byte{0xaa, 0xaa, 0xaa}, 24))
}
