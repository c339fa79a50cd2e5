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

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/fluxdisk/pkg/disk/base"
	"github.com/xelalexv/fluxdisk/pkg/disk/raw"
)

//
type state int

const (
	searchSync state = iota
	verifyHeader
	readSectors
	done
)

// decoder holds the state of a single decode run. It must not be reused.
type decoder struct {
	tracknr int
	src     base.Stream
	state   state
	//
	data  []byte
	words []uint16
	valid base.SectorMap
	// offset of the header currently being processed
	candidate uint32
	// offset of the last header that yielded a valid sector
	dataBitOffset uint32
	passes        int
}

//
func newDecoder(tracknr int, src base.Stream, placeholder []byte) *decoder {
	d := &decoder{
		tracknr: tracknr,
		src:     src,
		data:    make([]byte, TrackLength),
		words:   make([]uint16, rawTrackWords),
	}
	fill(d.data, placeholder)
	return d
}

//
func (d *decoder) run() (*base.Track, error) {

	for d.state != done {
		switch d.state {
		case searchSync:
			d.searchSync()
		case verifyHeader:
			d.verifyHeader()
		case readSectors:
			d.readSectors()
		}
	}

	if d.valid == 0 {
		log.WithField("track", d.tracknr).Debug("no valid sectors found")
		return nil, base.ErrNoData
	}

	t := base.NewTrack(base.LEMMINGS, SectorCount, SectorLength)
	t.Number = d.tracknr
	t.Data = d.data
	t.Valid = d.valid
	t.DataBitOffset = d.dataBitOffset
	t.TotalBits = d.src.TrackLength()

	log.WithFields(log.Fields{
		"track":  d.tracknr,
		"offset": t.DataBitOffset,
		"valid":  d.valid.Format(SectorCount),
		"passes": d.passes,
	}).Debug("track decoded")

	return t, nil
}

// searchSync advances bit by bit until the window ends in a sync word.
func (d *decoder) searchSync() {

	for {
		if d.valid.IsComplete(SectorCount) {
			d.state = done
			return
		}
		if _, ok := d.src.NextBit(); !ok {
			d.state = done
			return
		}
		if uint16(d.src.Word()) == raw.SyncWord {
			d.candidate = d.syncOffset()
			d.state = verifyHeader
			return
		}
	}
}

// verifyHeader checks that the 32 bits after the sync word are the header mark.
// The bits are read one at a time, so that a sync word overlapping them is not
// skipped.
func (d *decoder) verifyHeader() {

	for ix := 0; ix < 32; ix++ {
		if _, ok := d.src.NextBit(); !ok {
			d.state = done
			return
		}
		if uint16(d.src.Word()) == raw.SyncWord {
			log.WithField("offset", d.candidate).Trace(
				"sync word without header mark")
			d.candidate = d.syncOffset()
			ix = -1
		}
	}

	if d.src.Word() != HeaderMark {
		log.WithFields(log.Fields{
			"offset": d.candidate,
			"mark":   d.src.Word(),
		}).Trace("invalid header mark")
		d.state = searchSync
		return
	}

	log.WithFields(log.Fields{
		"track": d.tracknr, "offset": d.candidate}).Trace("found track header")
	d.state = readSectors
}

// readSectors demodulates all sectors following a header and validates each.
func (d *decoder) readSectors() {

	for ix := range d.words {
		g, ok := d.src.NextBits(32)
		if !ok {
			d.state = done
			return
		}
		d.words[ix] = raw.DecodeLong(g)
	}

	d.passes++
	found := 0

	for sec := 0; sec < SectorCount; sec++ {

		words := d.words[sec*rawSectorWords : (sec+1)*rawSectorWords]

		var sum uint16
		for _, w := range words[1:] {
			sum += w
		}

		if err := verifyChecksum(sum, words[0]); err != nil {
			log.WithFields(log.Fields{
				"track": d.tracknr, "sector": sec}).Tracef(
				"invalid sector checksum: %v", err)
			continue
		}

		out := d.data[sec*SectorLength : (sec+1)*SectorLength]
		for ix, w := range words[1:] {
			binary.BigEndian.PutUint16(out[2*ix:], w)
		}

		d.valid.Set(sec)
		found++
	}

	if found > 0 {
		d.dataBitOffset = d.candidate
	}

	log.WithFields(log.Fields{
		"track":  d.tracknr,
		"offset": d.candidate,
		"found":  found,
		"valid":  d.valid.Format(SectorCount),
	}).Debug("decode pass complete")

	d.state = searchSync
}

// syncOffset returns the offset of the sync word that just got read, relative
// to the index.
func (d *decoder) syncOffset() uint32 {
	length := d.src.TrackLength()
	off := d.src.IndexOffset()
	if length == 0 {
		return off - raw.SyncLength
	}
	return (off + length - raw.SyncLength%length) % length
}
