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

package capture

import (
	"bytes"
	"fmt"
	"io"

	"github.com/jacobsa/go-serial/serial"
	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/fluxdisk/pkg/disk/format"
)

//
const markerLength = 4

// sent by the adapter ahead of every revolution
var indexMarker = []byte("indx")

// command for reading a track
var cmdReadTrack = []byte("rdtk")

// upper limit for the index search, a bit more than two revolutions of a DD
// track
const maxSyncBytes = 2 * 16384

// Conduit talks to a flux capture adapter
type Conduit struct {
	port io.ReadWriteCloser
}

// Open opens the serial port of the adapter
func Open(port string, baudRate uint) (*Conduit, error) {
	p, err := serial.Open(serial.OpenOptions{
		PortName:        port,
		BaudRate:        baudRate,
		DataBits:        8,
		StopBits:        1,
		MinimumReadSize: 1,
	})
	if err != nil {
		return nil, err
	}
	log.Infof("opened port %s", port)
	return NewConduit(p), nil
}

// NewConduit creates a conduit over an already opened port
func NewConduit(port io.ReadWriteCloser) *Conduit {
	return &Conduit{port: port}
}

//
func (c *Conduit) Close() error {
	return c.port.Close()
}

// ReadTrack requests track tracknr from the adapter and reads revolutions
// revolutions of trackBits bits each.
func (c *Conduit) ReadTrack(tracknr int, trackBits uint32,
	revolutions int) (*format.BitsImage, error) {

	if trackBits == 0 {
		return nil, fmt.Errorf("track length must not be 0")
	}
	if revolutions < 1 || revolutions > format.MaxRevolutions {
		return nil, fmt.Errorf("invalid revolution count %d", revolutions)
	}
	if tracknr < 0 || tracknr > 0xff {
		return nil, fmt.Errorf("invalid track number %d", tracknr)
	}

	cmd := append(append([]byte{}, cmdReadTrack...), byte(tracknr),
		byte(revolutions>>8), byte(revolutions))
	if _, err := c.port.Write(cmd); err != nil {
		return nil, fmt.Errorf("error sending read command: %v", err)
	}

	img := &format.BitsImage{
		TrackBits:   trackBits,
		Revolutions: revolutions,
	}

	// revolutions are stored back to back, so unless a revolution ends on a
	// byte boundary, bytes from the adapter need to be re-packed
	packer := &bitPacker{}
	revBytes := (int(trackBits) + 7) / 8

	for rev := 0; rev < revolutions; rev++ {

		if err := c.syncOnIndex(); err != nil {
			return nil, fmt.Errorf("error syncing on index of revolution %d: %v",
				rev, err)
		}

		buf := make([]byte, revBytes)
		if _, err := io.ReadFull(c.port, buf); err != nil {
			return nil, fmt.Errorf("error reading revolution %d: %v", rev, err)
		}

		packer.add(buf, trackBits)

		log.WithFields(log.Fields{
			"track": tracknr, "revolution": rev}).Debug("revolution captured")
	}

	img.Data = packer.bytes()
	return img, nil
}

// syncOnIndex shifts bytes from the adapter through a window until it holds
// the index marker.
func (c *Conduit) syncOnIndex() error {

	window := make([]byte, markerLength)
	if _, err := io.ReadFull(c.port, window); err != nil {
		return err
	}

	for count := 0; !bytes.Equal(window, indexMarker); count++ {
		if count > maxSyncBytes {
			return fmt.Errorf("no index marker within %d bytes", maxSyncBytes)
		}
		shiftLeft(window)
		if _, err := io.ReadFull(c.port, window[len(window)-1:]); err != nil {
			return err
		}
	}

	return nil
}

//
func shiftLeft(b []byte) {
	copy(b, b[1:])
}

// bitPacker appends bit sequences MSB first
type bitPacker struct {
	data []byte
	bits uint64
}

//
func (p *bitPacker) add(src []byte, count uint32) {
	if p.bits%8 == 0 {
		p.data = append(p.data[:p.bits/8], src[:(count+7)/8]...)
		p.bits += uint64(count)
		if rem := p.bits % 8; rem != 0 {
			p.data[len(p.data)-1] &= byte(0xff << (8 - rem))
		}
		return
	}
	for ix := uint32(0); ix < count; ix++ {
		bit := (src[ix>>3] >> (7 - ix&7)) & 1
		if p.bits%8 == 0 {
			p.data = append(p.data, 0)
		}
		p.data[p.bits/8] |= bit << (7 - p.bits%8)
		p.bits++
	}
}

//
func (p *bitPacker) bytes() []byte {
	return p.data
}
