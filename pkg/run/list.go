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

	"github.com/xelalexv/fluxdisk/pkg/disk/base"
	"github.com/xelalexv/fluxdisk/pkg/disk/format"
	"github.com/xelalexv/fluxdisk/pkg/disk/raw"
)

//
func NewList() *List {

	l := &List{}
	l.Runner = *NewRunner(
		"ls -i|--input {file} [-t|--type {type}]",
		"show track summary",
		`
Use the ls command to show a summary of a track. For captures (.bits), the positions
of all sync marks in each revolution are listed as well.`,
		runnerHelpEpilogue, l.Run)

	l.AddCodecSettings()
	l.AddSetting(&l.Input, "input", "i", "", nil, "input file", true)

	return l
}

//
type List struct {
	//
	Runner
	//
	Input string
}

//
func (l *List) Run() error {

	if err := l.ParseSettings(); err != nil {
		return err
	}

	if !isBitsFile(l.Input) {
		track, err := readTrackFile(l.Input, false)
		if err != nil {
			return err
		}
		track.List(os.Stdout)
		return nil
	}

	img, err := readBitsFile(l.Input)
	if err != nil {
		return err
	}
	listCapture(img, os.Stdout)

	h, err := l.handler()
	if err != nil {
		return err
	}

	track, err := format.DecodeBits(h, img, 0, 0)
	if err == base.ErrNoData {
		fmt.Printf("no %s track found\n\n", h.Name())
		return nil
	} else if err != nil {
		return err
	}

	track.List(os.Stdout)
	return nil
}

//
func listCapture(img *format.BitsImage, w io.Writer) {

	fmt.Fprintf(w, "\ncapture: %d revolution(s) of %d bits\n\n",
		img.Revolutions, img.TrackBits)

	revBits := uint64(img.TrackBits)

	for rev := 0; rev < img.Revolutions; rev++ {
		start := uint64(rev) * revBits
		// revolutions are packed back to back, so extract each one first
		data := make([]byte, (revBits+7)/8)
		for ix := uint64(0); ix < revBits; ix++ {
			pos := start + ix
			if img.Data[pos/8]&(0x80>>(pos%8)) != 0 {
				data[ix/8] |= 0x80 >> (ix % 8)
			}
		}
		fmt.Fprintf(w, "revolution %d, sync marks at: %v\n",
			rev, raw.SyncOffsets(data, img.TrackBits))
	}
}
