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

package disk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xelalexv/fluxdisk/pkg/disk/base"
	"github.com/xelalexv/fluxdisk/pkg/disk/lemmings"
)

func TestNewHandler(t *testing.T) {

	h, err := NewHandler(base.LEMMINGS)
	require.NoError(t, err)
	assert.Equal(t, "Lemmings", h.Name())
	assert.Equal(t, base.LEMMINGS, h.Type())

	h, err = NewHandlerByName("Lemmings")
	require.NoError(t, err)
	assert.Equal(t, base.LEMMINGS, h.Type())

	_, err = NewHandler(base.UNKNOWN)
	assert.Error(t, err)
	_, err = NewHandlerByName("amigados")
	assert.Error(t, err)
}

func TestNewHandlerWithFill(t *testing.T) {

	h, err := NewHandlerWithFill(base.LEMMINGS, []byte("FILL"))
	require.NoError(t, err)
	assert.Equal(t, []byte("FILL"), h.(*lemmings.Handler).Placeholder)

	h, err = NewHandlerWithFill(base.LEMMINGS, nil)
	require.NoError(t, err)
	assert.Equal(t, lemmings.DefaultFill, h.(*lemmings.Handler).Placeholder)
}

func TestNewImageTrack(t *testing.T) {

	tr, err := NewImageTrack(base.LEMMINGS, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, tr.Number)
	assert.True(t, tr.IsComplete())
	assert.NoError(t, tr.Validate())

	_, err = NewImageTrack(base.UNKNOWN, 4)
	assert.Error(t, err)
}
