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

package tbuf

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/fluxdisk/pkg/disk/base"
	"github.com/xelalexv/fluxdisk/pkg/disk/raw"
)

// SpeedRun is a stretch of consecutive bits sharing the same timing class
type SpeedRun struct {
	Offset uint32
	Bits   uint32
	Speed  base.Speed
}

// Buffer collects the bits of one revolution of a track. It implements
// base.Sink.
type Buffer struct {
	start   uint32
	length  uint32
	bits    []byte
	written uint32
	// last data bit laid down, needed for the clock of the next MFM bit
	prev  uint32
	speed []SpeedRun
	//
	ready bool
	final bool
}

//
func New() *Buffer {
	return &Buffer{}
}

//
func (b *Buffer) SetRegion(start, length uint32) error {

	if length == 0 {
		return fmt.Errorf("track length must not be 0")
	}

	b.start = start % length
	b.length = length
	b.bits = make([]byte, (length+7)/8)
	b.written = 0
	b.prev = 0
	b.speed = nil
	b.ready = true
	b.final = false

	log.WithFields(log.Fields{
		"start": b.start, "length": length}).Trace("track buffer region set")

	return nil
}

//
func (b *Buffer) Emit(speed base.Speed, role base.Role, width int,
	value uint32) error {

	if !b.ready {
		return fmt.Errorf("track buffer region not set")
	}
	if b.final {
		return fmt.Errorf("track buffer already finalized")
	}
	if speed == 0 {
		return fmt.Errorf("invalid speed 0")
	}
	if width <= 0 || width > 32 {
		return fmt.Errorf("invalid emission width %d", width)
	}

	switch role {

	case base.RoleRaw:
		for ix := width - 1; ix >= 0; ix-- {
			if err := b.put(speed, (value>>uint(ix))&1); err != nil {
				return err
			}
		}
		b.prev = value & 1
		return nil

	case base.RoleAll:
		return b.putData(speed, value, width, width-1, 1)

	case base.RoleEven:
		if width%2 != 0 {
			return fmt.Errorf("even emission needs even width, got %d", width)
		}
		return b.putData(speed, value, width/2, width-1, 2)

	case base.RoleOdd:
		if width%2 != 0 {
			return fmt.Errorf("odd emission needs even width, got %d", width)
		}
		return b.putData(speed, value, width/2, width-2, 2)

	default:
		return fmt.Errorf("unsupported role: %v", role)
	}
}

// putData MFM encodes count data bits taken from value, starting at bit
// position from and moving down by step.
func (b *Buffer) putData(speed base.Speed, value uint32, count, from,
	step int) error {
	for ix := 0; ix < count; ix++ {
		d := (value >> uint(from-ix*step)) & 1
		if err := b.putMFM(speed, d); err != nil {
			return err
		}
	}
	return nil
}

//
func (b *Buffer) putMFM(speed base.Speed, d uint32) error {
	var clock uint32
	if b.prev == 0 && d == 0 {
		clock = 1
	}
	if err := b.put(speed, clock); err != nil {
		return err
	}
	if err := b.put(speed, d); err != nil {
		return err
	}
	b.prev = d
	return nil
}

//
func (b *Buffer) put(speed base.Speed, bit uint32) error {

	if b.written >= b.length {
		return fmt.Errorf("track overflow, length is %d bits", b.length)
	}

	pos := (b.start + b.written) % b.length
	mask := byte(0x80 >> (pos & 7))
	if bit != 0 {
		b.bits[pos>>3] |= mask
	} else {
		b.bits[pos>>3] &^= mask
	}

	if n := len(b.speed); n > 0 && b.speed[n-1].Speed == speed {
		b.speed[n-1].Bits++
	} else {
		b.speed = append(b.speed, SpeedRun{Offset: pos, Bits: 1, Speed: speed})
	}

	b.written++
	return nil
}

// Finalize fills the remainder of the revolution with MFM encoded 0 bits.
func (b *Buffer) Finalize() error {

	if !b.ready {
		return fmt.Errorf("track buffer region not set")
	}
	if b.final {
		return nil
	}

	gap := b.length - b.written

	for ; gap >= 2; gap -= 2 {
		if err := b.putMFM(base.DefaultSpeed, 0); err != nil {
			return err
		}
	}
	if gap == 1 {
		if err := b.put(base.DefaultSpeed, 1^b.prev); err != nil {
			return err
		}
	}

	b.final = true

	if log.IsLevelEnabled(log.TraceLevel) {
		log.WithFields(log.Fields{
			"start":  b.start,
			"length": b.length,
			"syncs":  raw.SyncOffsets(b.bits, b.length),
		}).Trace("track buffer finalized")
	}

	return nil
}

// Bytes returns the packed bits of the revolution, MSB first.
func (b *Buffer) Bytes() []byte {
	return b.bits
}

//
func (b *Buffer) Length() uint32 {
	return b.length
}

//
func (b *Buffer) Start() uint32 {
	return b.start
}

// Written returns the number of bits laid down so far
func (b *Buffer) Written() uint32 {
	return b.written
}

//
func (b *Buffer) Speeds() []SpeedRun {
	return b.speed
}

// Stream returns a bit stream over the finalized buffer, reading revolutions
// times around the track.
func (b *Buffer) Stream(revolutions int) *raw.BitStream {
	return raw.NewBitStream(b.bits, b.length, revolutions)
}
