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

package format

import (
	"bytes"
	"fmt"

	"github.com/xelalexv/fluxdisk/pkg/disk/base"
	"github.com/xelalexv/fluxdisk/pkg/disk/tbuf"
)

// DecodeBits decodes the track captured in img with handler h, reading
// revolutions revolutions (the captured ones when less than 1).
func DecodeBits(h base.Handler, img *BitsImage, tracknr,
	revolutions int) (*base.Track, error) {
	return h.Decode(tracknr, img.Stream(revolutions))
}

// EncodeBits encodes track t with handler h into a single revolution image.
func EncodeBits(h base.Handler, t *base.Track) (*BitsImage, error) {
	buf := tbuf.New()
	if err := h.Encode(t, buf); err != nil {
		return nil, err
	}
	return NewBitsImage(buf), nil
}

// Verify encodes track t and decodes the result again, checking that validity
// and the data of all valid sectors survive. Two revolutions are read, so that
// payloads crossing the index are covered.
func Verify(h base.Handler, t *base.Track) error {

	img, err := EncodeBits(h, t)
	if err != nil {
		return fmt.Errorf("encoding failed: %v", err)
	}

	check, err := DecodeBits(h, img, t.Number, 2)
	if err != nil {
		if t.Valid == 0 && err == base.ErrNoData {
			return nil
		}
		return fmt.Errorf("decoding failed: %v", err)
	}

	if check.Valid != t.Valid {
		return fmt.Errorf("validity mismatch: want %s, got %s",
			t.Valid.Format(t.SectorCount), check.Valid.Format(check.SectorCount))
	}

	if check.DataBitOffset != t.DataBitOffset%img.TrackBits {
		return fmt.Errorf("data offset mismatch: want %d, got %d",
			t.DataBitOffset, check.DataBitOffset)
	}

	for ix := 0; ix < t.SectorCount; ix++ {
		if t.Valid.IsSet(ix) && !bytes.Equal(t.Sector(ix), check.Sector(ix)) {
			return fmt.Errorf("data mismatch in sector %d", ix)
		}
	}

	return nil
}
