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

package lemmings

import (
	"encoding/binary"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/fluxdisk/pkg/disk/base"
	"github.com/xelalexv/fluxdisk/pkg/disk/raw"
)

// emitter forwards emissions to a sink, remembering the first error. Once an
// error occurred, further emissions are dropped.
type emitter struct {
	sink base.Sink
	err  error
}

//
func (e *emitter) emit(role base.Role, width int, val uint32) {
	if e.err == nil {
		e.err = e.sink.Emit(base.DefaultSpeed, role, width, val)
	}
}

//
func (e *emitter) word(w uint16) {
	e.emit(base.RoleEven, 16, uint32(w))
	e.emit(base.RoleOdd, 16, uint32(w))
}

//
func encode(t *base.Track, sink base.Sink) error {

	if err := validateTrack(t); err != nil {
		return err
	}

	total := t.TotalBits
	if total == 0 {
		total = DefaultTrackBits
	}

	if err := sink.SetRegion(t.DataBitOffset, total); err != nil {
		return err
	}

	e := &emitter{sink: sink}
	e.emit(base.RoleRaw, raw.SyncLength, uint32(raw.SyncWord))
	e.emit(base.RoleAll, 16, headerFill)

	for sec := 0; sec < SectorCount; sec++ {

		data := t.Sector(sec)
		sum := Checksum(data)

		// a bad checksum makes sure the sector is rejected again on decode
		if !t.Valid.IsSet(sec) {
			sum = ^sum
		}

		log.WithFields(log.Fields{
			"track":    t.Number,
			"sector":   sec,
			"checksum": fmt.Sprintf("%04x", sum),
		}).Trace("encoding sector")

		e.word(sum)
		for ix := 0; ix < SectorLength; ix += 2 {
			e.word(binary.BigEndian.Uint16(data[ix:]))
		}
	}

	if e.err != nil {
		return fmt.Errorf("error encoding track %d: %v", t.Number, e.err)
	}

	return sink.Finalize()
}

//
func validateTrack(t *base.Track) error {
	if t == nil {
		return fmt.Errorf("no track")
	}
	if err := t.Validate(); err != nil {
		return err
	}
	if t.SectorCount != SectorCount || t.BytesPerSector != SectorLength {
		return fmt.Errorf(
			"track geometry %d x %d does not match %d x %d",
			t.SectorCount, t.BytesPerSector, SectorCount, SectorLength)
	}
	return nil
}
