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
	"encoding/hex"
	"fmt"
	"io"
)

// Track is the decoded content of a single track
type Track struct {
	Type   TrackType
	Number int
	// bit offset of the data region relative to the index pulse
	DataBitOffset uint32
	// bits per revolution
	TotalBits      uint32
	BytesPerSector int
	SectorCount    int
	Valid          SectorMap
	Data           []byte
}

//
func NewTrack(typ TrackType, sectorCount, bytesPerSector int) *Track {
	return &Track{
		Type:           typ,
		BytesPerSector: bytesPerSector,
		SectorCount:    sectorCount,
		Data:           make([]byte, sectorCount*bytesPerSector),
	}
}

// Len returns the length of the sector data in bytes
func (t *Track) Len() int {
	return len(t.Data)
}

// Sector returns the data of the sector at position ix, nil if there is no
// such sector.
func (t *Track) Sector(ix int) []byte {
	if ix < 0 || ix >= t.SectorCount {
		return nil
	}
	start := ix * t.BytesPerSector
	end := start + t.BytesPerSector
	if end > len(t.Data) {
		return nil
	}
	return t.Data[start:end]
}

//
func (t *Track) IsComplete() bool {
	return t.Valid.IsComplete(t.SectorCount)
}

//
func (t *Track) Validate() error {
	if t.SectorCount <= 0 || t.BytesPerSector <= 0 {
		return fmt.Errorf("invalid geometry: %d sectors of %d bytes",
			t.SectorCount, t.BytesPerSector)
	}
	if want := t.SectorCount * t.BytesPerSector; len(t.Data) != want {
		return fmt.Errorf("invalid track length: want %d, got %d",
			want, len(t.Data))
	}
	if t.TotalBits > 0 && t.DataBitOffset >= t.TotalBits {
		return fmt.Errorf("data offset %d beyond track length %d",
			t.DataBitOffset, t.TotalBits)
	}
	return nil
}

// List writes a summary of this track to w
func (t *Track) List(w io.Writer) {
	fmt.Fprintf(w, "\ntrack %d (%s)\n\n", t.Number, t.Type)
	fmt.Fprintf(w, "data offset  %8d bits\n", t.DataBitOffset)
	fmt.Fprintf(w, "track length %8d bits\n", t.TotalBits)
	fmt.Fprintf(w, "sectors      %8d x %d bytes\n", t.SectorCount, t.BytesPerSector)
	fmt.Fprintf(w, "valid        %8s\n", t.Valid.Format(t.SectorCount))
	fmt.Fprintf(w, "\n%d of %d sectors valid\n\n",
		t.Valid.Count(), t.SectorCount)
}

// Emit writes a hex dump of all sectors to w
func (t *Track) Emit(w io.Writer) {
	for ix := 0; ix < t.SectorCount; ix++ {
		state := "valid"
		if !t.Valid.IsSet(ix) {
			state = "INVALID"
		}
		io.WriteString(w, fmt.Sprintf("\nSECTOR: %d - %s\n", ix, state))
		d := hex.Dumper(w)
		d.Write(t.Sector(ix))
		d.Close()
	}
}
