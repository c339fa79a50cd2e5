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
	"os"
)

//
func NewDump() *Dump {

	d := &Dump{}
	d.Runner = *NewRunner(
		"dump -i|--input {file} [-t|--type {type}] [--fill {pattern}]",
		"dump track sectors",
		`
Use the dump command to output a hex dump of all sectors of a track. Input can be a
capture (.bits) or a decoded track (.trk, .img).`,
		runnerHelpEpilogue, d.Run)

	d.AddCodecSettings()
	d.AddSetting(&d.Input, "input", "i", "", nil, "input file", true)

	return d
}

//
type Dump struct {
	//
	Runner
	//
	Input string
}

//
func (d *Dump) Run() error {

	if err := d.ParseSettings(); err != nil {
		return err
	}

	track, err := loadTrack(&d.Runner, d.Input, false)
	if err != nil {
		return err
	}

	track.Emit(os.Stdout)
	fmt.Println()
	return nil
}
