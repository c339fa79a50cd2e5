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

package run

import (
	"fmt"
	"io"

	"github.com/xelalexv/fluxdisk/pkg/disk"
	"github.com/xelalexv/fluxdisk/pkg/disk/format"
)

//
func NewEncode() *Encode {

	e := &Encode{}
	e.Runner = *NewRunner(
		`encode -i|--input {track file} -o|--output {bits file} [-b|--bits {bits}]
      [--offset {bit offset}] [-l|--lenient] [-f|--force]`,
		"encode track into raw bit stream",
		`
Use the encode command to turn a decoded track (.trk or .img file) back into a raw
track bit stream (.bits file).`,
		`- Sectors marked invalid in the track are written with a bad checksum, so
  that they remain invalid when decoding the result.

- Tracks read from .img files get a default data offset and track length, which
  can be changed with --offset and --bits.

`+runnerHelpEpilogue, e.Run)

	e.AddSetting(&e.Input, "input", "i", "", nil, "track input file", true)
	e.AddSetting(&e.Output, "output", "o", "", nil, "bits output file", true)
	e.AddSetting(&e.Bits, "bits", "b", "", 0,
		"track length in bits, 0 to keep", false)
	e.AddSetting(&e.Offset, "offset", "", "", -1,
		"data bit offset, -1 to keep", false)
	e.AddSetting(&e.Lenient, "lenient", "l", "", false,
		"accept defective track files", false)
	e.AddSetting(&e.Force, "force", "f", "", false,
		"force overwriting output file", false)

	return e
}

//
type Encode struct {
	//
	Runner
	//
	Input   string
	Output  string
	Bits    uint
	Offset  int
	Lenient bool
	Force   bool
}

//
func (e *Encode) Run() error {

	if err := e.ParseSettings(); err != nil {
		return err
	}

	track, err := readTrackFile(e.Input, !e.Lenient)
	if err != nil {
		return err
	}

	if e.Bits > 0 {
		track.TotalBits = uint32(e.Bits)
	}
	if e.Offset >= 0 {
		track.DataBitOffset = uint32(e.Offset)
	}

	h, err := disk.NewHandler(track.Type)
	if err != nil {
		return err
	}

	img, err := format.EncodeBits(h, track)
	if err != nil {
		return err
	}

	if err := writeOutput(e.Output, e.Force, func(w io.Writer) error {
		return format.WriteBits(img, w)
	}); err != nil {
		return err
	}

	fmt.Printf("track %d encoded, %d bits\n", track.Number, img.TrackBits)
	return nil
}
