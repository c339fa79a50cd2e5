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
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/fluxdisk/pkg/disk/raw"
	"github.com/xelalexv/fluxdisk/pkg/disk/tbuf"
)

const bitsMagic = "FLXB"
const bitsVersion = 1
const BitsHeaderLength = 16

// MaxRevolutions is the largest revolution count a bits file can carry
const MaxRevolutions = 0xffff

// upper limit for data in a bits file, generous for captures of many
// revolutions
const bitsMaxDataLength = 16 << 20

//
var bitsHeaderIndex = map[string][2]int{
	"magic":       {0, 4},
	"version":     {4, 1},
	"revolutions": {6, 2},
	"trackBits":   {8, 4},
	"length":      {12, 4},
}

// BitsImage is a raw capture of a track, holding one or more revolutions of
// TrackBits bits each, packed MSB first and back to back.
type BitsImage struct {
	TrackBits   uint32
	Revolutions int
	Data        []byte
}

// NewBitsImage creates an image from a finalized track buffer
func NewBitsImage(b *tbuf.Buffer) *BitsImage {
	return &BitsImage{
		TrackBits:   b.Length(),
		Revolutions: 1,
		Data:        b.Bytes(),
	}
}

// Stream returns a bit stream reading revolutions revolutions from this image.
// When revolutions is less than 1, the captured revolutions are read once, but
// at least two, so that data crossing the index of a single revolution capture
// can still be read. Reading goes at most once around beyond the captured
// revolutions, since any further revolution only repeats what was read.
func (b *BitsImage) Stream(revolutions int) *raw.BitStream {
	if revolutions < 1 {
		revolutions = b.Revolutions
		if revolutions < 2 {
			revolutions = 2
		}
	} else if revolutions > b.Revolutions+1 {
		revolutions = b.Revolutions + 1
	}
	return raw.NewBitStream(b.Data, b.TrackBits, revolutions)
}

//
func (b *BitsImage) validate() error {
	if b.TrackBits == 0 {
		return fmt.Errorf("track length is 0")
	}
	if b.Revolutions < 1 || b.Revolutions > MaxRevolutions {
		return fmt.Errorf("invalid revolution count %d", b.Revolutions)
	}
	need := (uint64(b.TrackBits)*uint64(b.Revolutions) + 7) / 8
	if uint64(len(b.Data)) < need {
		return fmt.Errorf("data too short for %d revolutions of %d bits",
			b.Revolutions, b.TrackBits)
	}
	return nil
}

// ReadBits reads a bits file
func ReadBits(in io.Reader) (*BitsImage, error) {

	header := raw.NewBlock(bitsHeaderIndex, make([]byte, BitsHeaderLength))
	if _, err := io.ReadFull(in, header.Data); err != nil {
		return nil, fmt.Errorf("error reading bits header: %v", err)
	}

	if m := header.GetString("magic"); m != bitsMagic {
		return nil, fmt.Errorf("not a bits file, magic is %q", m)
	}
	if v := header.GetByte("version"); v != bitsVersion {
		return nil, fmt.Errorf("unsupported bits file version %d", v)
	}

	length := header.GetInt("length")
	if length > bitsMaxDataLength {
		return nil, fmt.Errorf("excessive bits data length %d", length)
	}

	ret := &BitsImage{
		TrackBits:   uint32(header.GetInt("trackBits")),
		Revolutions: int(header.GetInt("revolutions")),
		Data:        make([]byte, length),
	}

	if _, err := io.ReadFull(in, ret.Data); err != nil {
		return nil, fmt.Errorf("error reading bits data: %v", err)
	}

	if err := ret.validate(); err != nil {
		return nil, fmt.Errorf("defective bits file: %v", err)
	}

	log.WithFields(log.Fields{
		"trackBits":   ret.TrackBits,
		"revolutions": ret.Revolutions,
	}).Debug("bits file loaded")

	return ret, nil
}

// WriteBits writes img as a bits file
func WriteBits(img *BitsImage, out io.Writer) error {

	if err := img.validate(); err != nil {
		return err
	}

	header := raw.NewBlock(bitsHeaderIndex, make([]byte, BitsHeaderLength))
	if err := header.SetString("magic", bitsMagic); err != nil {
		return err
	}

	for _, fld := range []struct {
		key string
		val int64
	}{
		{"version", bitsVersion},
		{"revolutions", int64(img.Revolutions)},
		{"trackBits", int64(img.TrackBits)},
		{"length", int64(len(img.Data))},
	} {
		if err := header.SetInt(fld.key, fld.val); err != nil {
			return fmt.Errorf("error writing bits header: %v", err)
		}
	}

	if _, err := out.Write(header.Data); err != nil {
		return err
	}
	_, err := out.Write(img.Data)
	return err
}
