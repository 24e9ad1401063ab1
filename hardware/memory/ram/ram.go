// This file is part of i86emu.
//
// i86emu is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// i86emu is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with i86emu.  If not, see <https://www.gnu.org/licenses/>.

// Package ram implements a plain byte-addressable RAM device for the
// memory bus.
package ram

import (
	"github.com/MateusDuartee/i86emu/curated"
	"github.com/MateusDuartee/i86emu/hardware/memory/bus"
)

// RAM is a flat block of random access memory. It implements the
// bus.Device interface.
type RAM struct {
	data []byte
}

// NewRAM creates a RAM device of the given size in bytes.
func NewRAM(size int) *RAM {
	return &RAM{
		data: make([]byte, size),
	}
}

// Size returns the capacity of the device in bytes.
func (r *RAM) Size() int {
	return len(r.data)
}

// Read implements the bus.Device interface. A size of 16 reads a
// little-endian word; a word read at the last byte of the device fails
// with OutOfRangeError.
func (r *RAM) Read(address uint32, size uint) (uint16, error) {
	if size == 8 {
		if address >= uint32(len(r.data)) {
			return 0, curated.Errorf(bus.OutOfRangeError, address)
		}
		return uint16(r.data[address]), nil
	}

	if address+1 >= uint32(len(r.data)) {
		return 0, curated.Errorf(bus.OutOfRangeError, address)
	}

	return uint16(r.data[address+1])<<8 | uint16(r.data[address]), nil
}

// Write implements the bus.Device interface. A size of 16 writes a
// little-endian word.
func (r *RAM) Write(address uint32, data uint16, size uint) error {
	if size == 8 {
		if address >= uint32(len(r.data)) {
			return curated.Errorf(bus.OutOfRangeError, address)
		}
		r.data[address] = uint8(data)
		return nil
	}

	if address+1 >= uint32(len(r.data)) {
		return curated.Errorf(bus.OutOfRangeError, address)
	}

	r.data[address] = uint8(data)
	r.data[address+1] = uint8(data >> 8)

	return nil
}
