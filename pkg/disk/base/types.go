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

package base

import (
	"errors"
)

// ErrNoData is returned by a decoder when not a single sector of a track could
// be validated.
var ErrNoData = errors.New("no valid data found")

// Stream is a source of raw bits as read from a track, e.g. a captured flux
// stream.
type Stream interface {

	// NextBit shifts the next bit into the window and returns it. ok is false
	// once the stream is exhausted.
	NextBit() (bit uint32, ok bool)

	// NextBits shifts the next n bits (n <= 32) into the window and returns
	// them. ok is false once the stream is exhausted.
	NextBits(n int) (val uint32, ok bool)

	// Word returns the window of the most recently read 32 bits
	Word() uint32

	// IndexOffset returns the number of bits read since the last index pulse
	IndexOffset() uint32

	// TrackLength returns the number of bits per revolution
	TrackLength() uint32
}

// Role tells a sink how to lay down the bits of an emission.
type Role int

const (
	// bits are written as given, no clock bits are added
	RoleRaw Role = iota
	// every bit is a data bit and gets MFM encoded
	RoleAll
	// the odd numbered bits (15, 13, ..., 1) get MFM encoded
	RoleEven
	// the even numbered bits (14, 12, ..., 0) get MFM encoded
	RoleOdd
)

//
func (r Role) String() string {

	switch r {

	case RoleRaw:
		return "raw"

	case RoleAll:
		return "all"

	case RoleEven:
		return "even"

	case RoleOdd:
		return "odd"

	default:
		return "<unknown>"
	}
}

// Speed is the timing class of emitted bits, where DefaultSpeed denotes the
// nominal 2us bit cell.
type Speed uint16

const DefaultSpeed Speed = 1000

// Sink receives the bits of an encoded track.
type Sink interface {

	// SetRegion prepares the sink for a track of length bits, with the first
	// emitted bit placed at bit offset start after the index.
	SetRegion(start, length uint32) error

	// Emit lays down the lowest width bits of value.
	Emit(speed Speed, role Role, width int, value uint32) error

	// Finalize completes the track.
	Finalize() error
}

// Handler decodes and encodes tracks of one particular type.
type Handler interface {

	//
	Name() string

	//
	Type() TrackType

	// Decode reads the track with number tracknr from s. If no sector at all
	// can be recovered, ErrNoData is returned.
	Decode(tracknr int, s Stream) (*Track, error)

	// Encode emits track t into sink.
	Encode(t *Track, sink Sink) error
}
