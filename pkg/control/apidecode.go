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

	"github.com/xelalexv/fluxdisk/pkg/disk/base"
	"github.com/xelalexv/fluxdisk/pkg/disk/format"
)

//
func (a *api) decode(w http.ResponseWriter, req *http.Request) {

	handler := getHandler(w, req)
	if handler == nil {
		return
	}

	writer := getFormat(w, req)
	if writer == nil {
		return
	}

	tracknr, err := getIntArg(req, "track", 0)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	revs, err := getIntArg(req, "revolutions", 0)
	if err == nil && (revs < 0 || revs > format.MaxRevolutions) {
		err = fmt.Errorf("revolutions out of range 0 to %d: %d",
			format.MaxRevolutions, revs)
	}
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	in := a.getInput(w, req)
	if in == nil {
		return
	}
	defer in.Close()

	img, err := format.ReadBits(in)
	if err != nil {
		handleError(fmt.Errorf("capture corrupted: %v", err),
			http.StatusUnprocessableEntity, w)
		return
	}

	track, err := format.DecodeBits(handler, img, tracknr, revs)
	if err == base.ErrNoData {
		handleError(fmt.Errorf("track %d: %v", tracknr, err),
			http.StatusUnprocessableEntity, w)
		return
	}
	if handleError(err, http.StatusInternalServerError, w) {
		return
	}

	if wantsJSON(req) {
		info := &Track{}
		info.fill(track)
		sendJSONReply(info, http.StatusOK, w)
		return
	}

	var out bytes.Buffer
	if handleError(writer.Write(track, &out), http.StatusInternalServerError, w) {
		return
	}
	sendBinaryReply(out.Bytes(), http.StatusOK, w)
}
