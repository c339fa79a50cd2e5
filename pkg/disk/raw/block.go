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

package raw

import (
	"fmt"
)

//
func NewBlock(index map[string][2]int, data []byte) *Block {
	return &Block{index: index, Data: data}
}

// Block gives access to named fields of a byte slice. The index maps a field
// name to its offset and length. Multi byte integers are big-endian.
type Block struct {
	index map[string][2]int
	Data  []byte
}

//
func (b *Block) GetByte(key string) byte {
	if ix, ok := b.index[key]; ok {
		if 0 <= ix[0] && ix[0] < len(b.Data) && ix[1] == 1 {
			return b.Data[ix[0]]
		}
	}
	return 0
}

//
func (b *Block) GetSlice(key string) []byte {
	if ix, ok := b.index[key]; ok {
		start := ix[0]
		end := start + ix[1]
		if 0 <= start && end <= len(b.Data) {
			return b.Data[start:end]
		}
	}
	return []byte{}
}

// GetInt returns the unsigned integer stored in the field, -1 if the field
// does not exist or is wider than four bytes.
func (b *Block) GetInt(key string) int64 {
	bytes := b.GetSlice(key)
	if len(bytes) == 0 || len(bytes) > 4 {
		return -1
	}
	var ret int64
	for _, v := range bytes {
		ret = ret<<8 | int64(v)
	}
	return ret
}

//
func (b *Block) SetInt(key string, val int64) error {
	bytes := b.GetSlice(key)
	if len(bytes) == 0 || len(bytes) > 4 {
		return fmt.Errorf("no integer field '%s'", key)
	}
	if val < 0 || val >= 1<<(8*uint(len(bytes))) {
		return fmt.Errorf("value %d does not fit into field '%s'", val, key)
	}
	for ix := len(bytes) - 1; ix >= 0; ix-- {
		bytes[ix] = byte(val)
		val >>= 8
	}
	return nil
}

//
func (b *Block) GetString(key string) string {
	return string(b.GetSlice(key))
}

//
func (b *Block) SetString(key, val string) error {
	bytes := b.GetSlice(key)
	if len(bytes) == 0 {
		return fmt.Errorf("no field '%s'", key)
	}
	n := copy(bytes, val)
	for ; n < len(bytes); n++ {
		bytes[n] = 0
	}
	return nil
}
