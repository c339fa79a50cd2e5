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

	"github.com/xelalexv/fluxdisk/pkg/disk/base"
	"github.com/xelalexv/fluxdisk/pkg/disk/raw"
)

const trkMagic = "FLXT"
const trkVersion = 1
const TRKHeaderLength = 32

// upper limit for sector data in a track file
const trkMaxDataLength = 1 << 20

//
var trkHeaderIndex = map[string][2]int{
	"magic":          {0, 4},
	"version":        {4, 1},
	"type":           {5, 1},
	"number":         {6, 2},
	"dataBitOffset":  {8, 4},
	"totalBits":      {12, 4},
	"bytesPerSector": {16, 2},
	"sectorCount":    {18, 2},
	"valid":          {20, 4},
	"length":         {24, 4},
}

// TRK is a reader/writer for decoded tracks. A TRK file consists of a header
// carrying the track meta data, followed by the sector data.
type TRK struct{}

//
func NewTRK() *TRK {
	return &TRK{}
}

//
func (f *TRK) Read(in io.Reader, strict bool) (*base.Track, error) {

	header := raw.NewBlock(trkHeaderIndex, make([]byte, TRKHeaderLength))
	if _, err := io.ReadFull(in, header.Data); err != nil {
		return nil, fmt.Errorf("error reading TRK header: %v", err)
	}

	if m := header.GetString("magic"); m != trkMagic {
		return nil, fmt.Errorf("not a TRK file, magic is %q", m)
	}
	if v := header.GetByte("version"); v != trkVersion {
		return nil, fmt.Errorf("unsupported TRK version %d", v)
	}

	t := &base.Track{
		Type:           base.TrackType(header.GetByte("type")),
		Number:         int(header.GetInt("number")),
		DataBitOffset:  uint32(header.GetInt("dataBitOffset")),
		TotalBits:      uint32(header.GetInt("totalBits")),
		BytesPerSector: int(header.GetInt("bytesPerSector")),
		SectorCount:    int(header.GetInt("sectorCount")),
		Valid:          base.SectorMap(header.GetInt("valid")),
	}

	length := header.GetInt("length")
	if length > trkMaxDataLength {
		return nil, fmt.Errorf("excessive TRK data length %d", length)
	}

	// the geometry decides the size of the track after lenient repair
	if size := int64(t.SectorCount) * int64(t.BytesPerSector); size > trkMaxDataLength {
		return nil, fmt.Errorf("excessive TRK geometry %d x %d",
			t.SectorCount, t.BytesPerSector)
	}

	t.Data = make([]byte, length)
	if _, err := io.ReadFull(in, t.Data); err != nil {
		return nil, fmt.Errorf("error reading TRK data: %v", err)
	}

	if err := t.Validate(); err != nil {
		msg := fmt.Sprintf("defective track %d: %v", t.Number, err)
		if strict {
			return nil, fmt.Errorf("%s", msg)
		}
		log.Warn(msg)
		if t.SectorCount > 0 && t.BytesPerSector > 0 {
			t.Data = resize(t.Data, t.SectorCount*t.BytesPerSector)
		}
	}

	log.WithFields(log.Fields{
		"track": t.Number,
		"type":  t.Type,
		"valid": t.Valid.Format(t.SectorCount),
	}).Debug("TRK loaded")

	return t, nil
}

//
func (f *TRK) Write(t *base.Track, out io.Writer) error {

	if err := t.Validate(); err != nil {
		return err
	}

	header := raw.NewBlock(trkHeaderIndex, make([]byte, TRKHeaderLength))

	if err := header.SetString("magic", trkMagic); err != nil {
		return err
	}

	for _, fld := range []struct {
		key string
		val int64
	}{
		{"version", trkVersion},
		{"type", int64(t.Type)},
		{"number", int64(t.Number)},
		{"dataBitOffset", int64(t.DataBitOffset)},
		{"totalBits", int64(t.TotalBits)},
		{"bytesPerSector", int64(t.BytesPerSector)},
		{"sectorCount", int64(t.SectorCount)},
		{"valid", int64(t.Valid)},
		{"length", int64(len(t.Data))},
	} {
		if err := header.SetInt(fld.key, fld.val); err != nil {
			return fmt.Errorf("error writing TRK header: %v", err)
		}
	}

	if _, err := out.Write(header.Data); err != nil {
		return err
	}
	_, err := out.Write(t.Data)
	return err
}

// resize returns data truncated or zero padded to length
func resize(data []byte, length int) []byte {
	if len(data) >= length {
		return data[:length]
	}
	ret := make([]byte, length)
	copy(ret, data)
	return ret
}
