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

// Package bus defines the interfaces of devices that can be attached to
// the memory bus, and of observers that want to be told about bus traffic.
package bus

// Error patterns raised by the memory bus and its devices.
const (
	// a device attachment collided with an existing mapping.
	OverlapError = "memory bus: overlapping address range (%#05x to %#05x)"

	// the device is not attached to the bus.
	NotFoundError = "memory bus: device not attached"

	// no device is mapped at the address, or the access fell outside the
	// device's range.
	OutOfRangeError = "memory bus: no device at address (%#05x)"
)

// Device is any component that can be mapped into the address space of the
// memory bus. Addresses are local to the device, starting at zero. A size
// of 8 transfers one byte; a size of 16 transfers a little-endian word.
type Device interface {
	Read(address uint32, size uint) (uint16, error)
	Write(address uint32, data uint16, size uint) error
	Size() int
}

// Observer is notified of bus traffic when the access requests it. The
// address is the resolved 20 bit physical address. Observers must not
// perform bus operations of their own.
type Observer interface {
	OnRead(address uint32)
	OnWrite(address uint32, data uint16)
}
