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

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/fluxdisk/pkg/disk"
	"github.com/xelalexv/fluxdisk/pkg/disk/base"
)

// IMG is a reader/writer for plain sector images. An IMG file contains nothing
// but the sector data of one track, so all sectors are considered valid when
// reading, and timing information is set to defaults.
type IMG struct {
	Type base.TrackType
}

//
func NewIMG(typ base.TrackType) *IMG {
	return &IMG{Type: typ}
}

//
func (f *IMG) Read(in io.Reader, strict bool) (*base.Track, error) {

	t, err := disk.NewImageTrack(f.Type, 0)
	if err != nil {
		return nil, err
	}

	// read one byte more than needed to detect oversized images
	data := make([]byte, t.Len()+1)
	read, err := io.ReadFull(in, data)

	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("error reading IMG file: %v", err)
	}

	if read != t.Len() {
		msg := fmt.Sprintf("image size mismatch: want %d bytes, got %d",
			t.Len(), read)
		if read > t.Len() {
			msg = fmt.Sprintf("image larger than %d bytes", t.Len())
		}
		if strict {
			return nil, fmt.Errorf("%s", msg)
		}
		log.Warn(msg)
	}

	copy(t.Data, data[:min(read, t.Len())])

	log.WithField("type", t.Type).Debug("IMG loaded")
	return t, nil
}

//
func (f *IMG) Write(t *base.Track, out io.Writer) error {
	if t.Type != f.Type {
		return fmt.Errorf("cannot write %v track as %v image", t.Type, f.Type)
	}
	if err := t.Validate(); err != nil {
		return err
	}
	if !t.IsComplete() {
		log.Warnf("writing incomplete track, invalid sectors: %s",
			t.Valid.Format(t.SectorCount))
	}
	_, err := out.Write(t.Data)
	return err
}

//
func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
