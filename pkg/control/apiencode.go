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

package control

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/xelalexv/fluxdisk/pkg/disk"
	"github.com/xelalexv/fluxdisk/pkg/disk/base"
	"github.com/xelalexv/fluxdisk/pkg/disk/format"
)

//
func (a *api) encode(w http.ResponseWriter, req *http.Request) {

	track := a.readTrack(w, req)
	if track == nil {
		return
	}

	handler, err := disk.NewHandler(track.Type)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	img, err := format.EncodeBits(handler, track)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	var out bytes.Buffer
	if handleError(format.WriteBits(img, &out), http.StatusInternalServerError, w) {
		return
	}
	sendBinaryReply(out.Bytes(), http.StatusOK, w)
}

//
func (a *api) verify(w http.ResponseWriter, req *http.Request) {

	track := a.readTrack(w, req)
	if track == nil {
		return
	}

	handler, err := disk.NewHandler(track.Type)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	if handleError(format.Verify(handler, track), http.StatusConflict, w) {
		return
	}

	sendReply([]byte(fmt.Sprintf("track %d verified, sectors %s", track.Number,
		track.Valid.Format(track.SectorCount))), http.StatusOK, w)
}

// readTrack reads a track file in the requested format from the request
func (a *api) readTrack(w http.ResponseWriter, req *http.Request) *base.Track {

	reader := getFormat(w, req)
	if reader == nil {
		return nil
	}

	in := a.getInput(w, req)
	if in == nil {
		return nil
	}
	defer in.Close()

	track, err := reader.Read(in, !isFlagSet(req, "lenient"))
	if err != nil {
		handleError(fmt.Errorf("track corrupted: %v", err),
			http.StatusUnprocessableEntity, w)
		return nil
	}

	bits, err := getIntArg(req, "bits", 0)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return nil
	}
	if bits > 0 {
		track.TotalBits = uint32(bits)
	}

	return track
}
