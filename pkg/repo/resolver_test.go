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

package repo

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "sub", "track.bits"), []byte("capture"), 0644))

	rc, err := Resolve("repo://sub/track.bits", dir)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "capture", string(data))

	rc, err = Resolve("repo://sub/../sub/track.bits", dir)
	require.NoError(t, err)
	rc.Close()

	_, err = Resolve("repo://missing.bits", dir)
	assert.Error(t, err)

	_, err = Resolve("repo://../track.bits", dir)
	assert.Error(t, err)

	_, err = Resolve("repo://sub/../../etc/passwd", dir)
	assert.Error(t, err)

	_, err = Resolve("file:///etc/passwd", dir)
	assert.Error(t, err)

	_, err = Resolve("repo://sub/track.bits", "")
	assert.Error(t, err)
}

func TestIsReference(t *testing.T) {
	assert.True(t, IsReference("repo://a/b"))
	assert.False(t, IsReference("/a/b"))
	assert.False(t, IsReference("http://a/b"))
}
