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

	"github.com/xelalexv/fluxdisk/pkg/disk"
	"github.com/xelalexv/fluxdisk/pkg/disk/format"
)

//
func NewVerify() *Verify {

	v := &Verify{}
	v.Runner = *NewRunner(
		"verify -i|--input {file} [-t|--type {type}]",
		"verify encode/decode round trip of a track",
		`
Use the verify command to check that a track survives being encoded and decoded
again, i.e. that validity of all sectors and data of valid sectors are retained.
Input can be a capture (.bits) or a decoded track (.trk, .img).`,
		runnerHelpEpilogue, v.Run)

	v.AddCodecSettings()
	v.AddSetting(&v.Input, "input", "i", "", nil, "input file", true)

	return v
}

//
type Verify struct {
	//
	Runner
	//
	Input string
}

//
func (v *Verify) Run() error {

	if err := v.ParseSettings(); err != nil {
		return err
	}

	track, err := loadTrack(&v.Runner, v.Input, true)
	if err != nil {
		return err
	}

	h, err := disk.NewHandler(track.Type)
	if err != nil {
		return err
	}

	if err := format.Verify(h, track); err != nil {
		return fmt.Errorf("verification of track %d failed: %v",
			track.Number, err)
	}

	fmt.Printf("track %d verified, sectors %s\n", track.Number,
		track.Valid.Format(track.SectorCount))
	return nil
}
