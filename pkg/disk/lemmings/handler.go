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
	"github.com/xelalexv/fluxdisk/pkg/disk/base"
)

//
func NewHandler() *Handler {
	return &Handler{Placeholder: DefaultFill}
}

// Handler decodes and encodes Lemmings tracks
type Handler struct {
	// pattern to fill sectors with that could not be decoded
	Placeholder []byte
}

//
func (h *Handler) Name() string {
	return "Lemmings"
}

//
func (h *Handler) Type() base.TrackType {
	return base.LEMMINGS
}

//
func (h *Handler) Decode(tracknr int, s base.Stream) (*base.Track, error) {
	return newDecoder(tracknr, s, h.Placeholder).run()
}

//
func (h *Handler) Encode(t *base.Track, sink base.Sink) error {
	return encode(t, sink)
}

// NewTrack creates an empty track with all sectors valid, as if read from a
// plain sector image.
func NewTrack(tracknr int) *base.Track {
	t := base.NewTrack(base.LEMMINGS, SectorCount, SectorLength)
	t.Number = tracknr
	t.DataBitOffset = DefaultDataBitOffset
	t.TotalBits = DefaultTrackBits
	for ix := 0; ix < SectorCount; ix++ {
		t.Valid.Set(ix)
	}
	return t
}
