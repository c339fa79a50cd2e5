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

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/fluxdisk/pkg/capture"
	"github.com/xelalexv/fluxdisk/pkg/disk/format"
	"github.com/xelalexv/fluxdisk/pkg/disk/lemmings"
)

//
func NewCapture() *Capture {

	c := &Capture{}
	c.Runner = *NewRunner(
		`capture -d|--device {device} -o|--output {bits file} [-n|--track {track}]
      [-b|--bits {bits}] [-r|--revolutions {count}] [--baud {rate}] [-f|--force]`,
		"capture raw track from flux adapter",
		`
Use the capture command to read a raw track from a flux adapter connected via serial
port, and save it as a .bits file. Capturing several revolutions improves the chance
of recovering all sectors of a weak track.`,
		runnerHelpEpilogue, c.Run)

	c.AddSetting(&c.Device, "device", "d", "FLUXDISK_DEVICE", nil,
		"serial port device for adapter", true)
	c.AddSetting(&c.Output, "output", "o", "", nil, "bits output file", true)
	c.AddSetting(&c.Track, "track", "n", "", 0, "track number", false)
	c.AddSetting(&c.Bits, "bits", "b", "", uint(lemmings.DefaultTrackBits),
		"track length in bits", false)
	c.AddSetting(&c.Revolutions, "revolutions", "r", "", 2,
		"revolutions to capture", false)
	c.AddSetting(&c.Baud, "baud", "", "FLUXDISK_BAUD", uint(1000000),
		"baud rate of serial port", false)
	c.AddSetting(&c.Force, "force", "f", "", false,
		"force overwriting output file", false)

	return c
}

//
type Capture struct {
	//
	Runner
	//
	Device      string
	Output      string
	Track       int
	Bits        uint
	Revolutions int
	Baud        uint
	Force       bool
}

//
func (c *Capture) Run() error {

	if err := c.ParseSettings(); err != nil {
		return err
	}

	con, err := capture.Open(c.Device, c.Baud)
	if err != nil {
		return fmt.Errorf("cannot open serial port: %v", err)
	}
	defer func() {
		if err := con.Close(); err != nil {
			log.Errorf("error closing port: %v", err)
		}
	}()

	img, err := con.ReadTrack(c.Track, uint32(c.Bits), c.Revolutions)
	if err != nil {
		return err
	}

	if err := writeOutput(c.Output, c.Force, func(w io.Writer) error {
		return format.WriteBits(img, w)
	}); err != nil {
		return err
	}

	fmt.Printf("track %d captured, %d revolution(s)\n", c.Track, img.Revolutions)
	return nil
}
