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

package disk

import (
	"fmt"

	"github.com/xelalexv/fluxdisk/pkg/disk/base"
	"github.com/xelalexv/fluxdisk/pkg/disk/lemmings"
)

//
func NewHandler(typ base.TrackType) (base.Handler, error) {

	switch typ {

	case base.LEMMINGS:
		return lemmings.NewHandler(), nil

	default:
		return nil, fmt.Errorf("unsupported track type: %v", typ)
	}
}

//
func NewHandlerByName(name string) (base.Handler, error) {
	if typ := base.GetTrackType(name); typ != base.UNKNOWN {
		return NewHandler(typ)
	}
	return nil, fmt.Errorf("unknown track type: %s", name)
}

// NewHandlerWithFill creates the handler for typ, using fill as the pattern
// for sectors that could not be decoded, where the handler supports this.
func NewHandlerWithFill(typ base.TrackType, fill []byte) (base.Handler, error) {

	h, err := NewHandler(typ)
	if err != nil {
		return nil, err
	}

	if len(fill) > 0 {
		if lh, ok := h.(*lemmings.Handler); ok {
			lh.Placeholder = fill
		}
	}

	return h, nil
}

// NewImageTrack creates an empty, fully valid track of type typ, as used when
// reading plain sector images.
func NewImageTrack(typ base.TrackType, tracknr int) (*base.Track, error) {

	switch typ {

	case base.LEMMINGS:
		return lemmings.NewTrack(tracknr), nil

	default:
		return nil, fmt.Errorf("unsupported track type: %v", typ)
	}
}
