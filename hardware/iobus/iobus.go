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

// Package iobus implements the port-mapped I/O bus. Reads from unmapped
// ports return zero and writes to unmapped ports are dropped, matching
// open-bus behaviour of the real hardware.
package iobus

import (
	"github.com/MateusDuartee/i86emu/curated"
	"github.com/MateusDuartee/i86emu/logger"
)

// Error patterns raised by the I/O bus.
const (
	OverlapError  = "io bus: port range overlap (%#04x to %#04x)"
	NotFoundError = "io bus: device not attached"
)

// Device is any component that can be mapped onto a range of I/O ports.
type Device interface {
	// PortRange returns the inclusive range of ports the device answers to.
	PortRange() (start uint16, end uint16)

	Read(port uint16, size uint) uint16
	Write(port uint16, data uint16, size uint)
}

// Bus is the I/O bus. Not safe for concurrent use.
type Bus struct {
	devices []Device
}

// NewBus is the preferred method of initialisation for the I/O bus.
func NewBus() *Bus {
	return &Bus{}
}

// AttachDevice adds a device to the bus. Fails with OverlapError when the
// device's port range intersects an already attached device.
func (b *Bus) AttachDevice(device Device) error {
	start, end := device.PortRange()

	for _, d := range b.devices {
		s, e := d.PortRange()
		if start <= e && end >= s {
			return curated.Errorf(OverlapError, start, end)
		}
	}

	b.devices = append(b.devices, device)
	logger.Logf("iobus", "device attached at ports %#04x to %#04x", start, end)

	return nil
}

// DetachDevice removes a device from the bus. Fails with NotFoundError if
// the device has not been attached.
func (b *Bus) DetachDevice(device Device) error {
	for i, d := range b.devices {
		if d == device {
			b.devices = append(b.devices[:i], b.devices[i+1:]...)
			return nil
		}
	}

	return curated.Errorf(NotFoundError)
}

// Read from an I/O port. Unmapped ports read as zero.
func (b *Bus) Read(port uint16, size uint) uint16 {
	for _, d := range b.devices {
		s, e := d.PortRange()
		if port >= s && port <= e {
			return d.Read(port, size)
		}
	}

	return 0x0000
}

// Write to an I/O port. Writes to unmapped ports are dropped silently.
func (b *Bus) Write(port uint16, data uint16, size uint) {
	for _, d := range b.devices {
		s, e := d.PortRange()
		if port >= s && port <= e {
			d.Write(port, data, size)
			return
		}
	}
}
