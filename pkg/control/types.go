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

package control

import (
	"fmt"
	"strings"

	"github.com/xelalexv/fluxdisk/pkg/disk/base"
)

//
type Status struct {
	TrackTypes []string `json:"trackTypes"`
	Formats    []string `json:"formats"`
}

//
func (s *Status) String() string {
	return fmt.Sprintf("\ntrack types: %s\nformats:     %s\n",
		strings.Join(s.TrackTypes, ", "), strings.Join(s.Formats, ", "))
}

//
type Track struct {
	Type           string `json:"type"`
	Number         int    `json:"number"`
	DataBitOffset  uint32 `json:"dataBitOffset"`
	TotalBits      uint32 `json:"totalBits"`
	SectorCount    int    `json:"sectorCount"`
	BytesPerSector int    `json:"bytesPerSector"`
	Valid          string `json:"valid"`
	ValidCount     int    `json:"validCount"`
}

//
func (t *Track) fill(tr *base.Track) {
	t.Type = tr.Type.String()
	t.Number = tr.Number
	t.DataBitOffset = tr.DataBitOffset
	t.TotalBits = tr.TotalBits
	t.SectorCount = tr.SectorCount
	t.BytesPerSector = tr.BytesPerSector
	t.Valid = tr.Valid.Format(tr.SectorCount)
	t.ValidCount = tr.Valid.Count()
}

//
func (t *Track) String() string {
	return fmt.Sprintf("track %d (%s): offset %d, %d bits, sectors %s",
		t.Number, t.Type, t.DataBitOffset, t.TotalBits, t.Valid)
}
