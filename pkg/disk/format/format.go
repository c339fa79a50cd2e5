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
	"fmt"
	"io"
	"strings"

	"github.com/xelalexv/fluxdisk/pkg/disk/base"
)

// Reader interface for reading in a decoded track
type Reader interface {
	// when setting strict, inconsistent track files are rejected
	Read(in io.Reader, strict bool) (*base.Track, error)
}

// Writer interface for writing out a decoded track
type Writer interface {
	Write(t *base.Track, out io.Writer) error
}

// ReaderWriter interface for reading/writing a decoded track
type ReaderWriter interface {
	Reader
	Writer
}

//
func NewFormat(typ string) (ReaderWriter, error) {

	switch strings.ToLower(typ) {

	case "trk":
		return NewTRK(), nil

	case "img":
		return NewIMG(base.LEMMINGS), nil

	default:
		return nil, fmt.Errorf("unsupported track format: %s", typ)
	}
}

// Formats lists the names of all supported track formats
func Formats() []string {
	return []string{"trk", "img"}
}
