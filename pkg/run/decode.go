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
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/fluxdisk/pkg/disk/base"
	"github.com/xelalexv/fluxdisk/pkg/disk/format"
)

//
func NewDecode() *Decode {

	d := &Decode{}
	d.Runner = *NewRunner(
		`decode -i|--input {bits file} [-o|--output {file}] [-n|--track {track}]
      [-r|--revolutions {count}] [-t|--type {type}] [--fill {pattern}] [-f|--force]`,
		"decode raw track capture",
		`
Use the decode command to decode a raw track capture (.bits file) into sector data.
Without an output file, a summary of the decoded track is shown.`,
		`- The format of the output file is determined by its extension. Supported
  formats are .trk (sector data plus track meta data) and .img (plain sector
  data).

- Sectors that could not be decoded are filled with the fill pattern.

- When no sector at all can be decoded, the command fails.

`+runnerHelpEpilogue, d.Run)

	d.AddCodecSettings()
	d.AddSetting(&d.Input, "input", "i", "", nil, "capture input file", true)
	d.AddSetting(&d.Output, "output", "o", "", nil, "track output file", false)
	d.AddSetting(&d.Track, "track", "n", "", 0, "track number", false)
	d.AddSetting(&d.Revolutions, "revolutions", "r", "", 0,
		"revolutions to read, 0 for all captured (at least 2)", false)
	d.AddSetting(&d.Force, "force", "f", "", false,
		"force overwriting output file", false)

	return d
}

//
type Decode struct {
	//
	Runner
	//
	Input       string
	Output      string
	Track       int
	Revolutions int
	Force       bool
}

//
func (d *Decode) Run() error {

	if err := d.ParseSettings(); err != nil {
		return err
	}

	track, err := decodeFile(&d.Runner, d.Input, d.Track, d.Revolutions)
	if err != nil {
		return err
	}

	if d.Output == "" {
		track.List(os.Stdout)
		return nil
	}

	form, err := format.NewFormat(getExtension(d.Output))
	if err != nil {
		return err
	}

	if err := writeOutput(d.Output, d.Force, func(w io.Writer) error {
		return form.Write(track, w)
	}); err != nil {
		return err
	}

	fmt.Printf("track %d decoded, sectors %s\n", track.Number,
		track.Valid.Format(track.SectorCount))
	return nil
}

// decodeFile decodes the capture in file with the codec selected in r
func decodeFile(r *Runner, file string, tracknr,
	revolutions int) (*base.Track, error) {

	h, err := r.handler()
	if err != nil {
		return nil, err
	}

	img, err := readBitsFile(file)
	if err != nil {
		return nil, err
	}

	track, err := format.DecodeBits(h, img, tracknr, revolutions)
	if err != nil {
		return nil, fmt.Errorf("cannot decode track %d from %s: %v",
			tracknr, file, err)
	}

	log.WithFields(log.Fields{
		"file":  file,
		"track": tracknr,
		"valid": track.Valid.Format(track.SectorCount),
	}).Info("track decoded")

	return track, nil
}

// loadTrack reads a track from file, decoding it first if it is a capture
func loadTrack(r *Runner, file string, strict bool) (*base.Track, error) {
	if isBitsFile(file) {
		return decodeFile(r, file, 0, 0)
	}
	return readTrackFile(file, strict)
}
