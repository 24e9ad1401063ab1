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

// Package memory implements the segmented memory bus of the 8086. Devices
// are attached over non-overlapping physical address ranges; accesses name
// a 16 bit offset and a segment value which combine into a 20 bit physical
// address.
package memory

import (
	"github.com/MateusDuartee/i86emu/curated"
	"github.com/MateusDuartee/i86emu/hardware/memory/bus"
	"github.com/MateusDuartee/i86emu/logger"
)

// physical addresses are 20 bits wide.
const addressMask = 0xfffff

// mapping ties a device to an inclusive range of physical addresses.
type mapping struct {
	device bus.Device
	start  uint32
	end    uint32
}

// Bus is the memory bus. Not safe for concurrent use; the emulator is
// single-threaded by design.
type Bus struct {
	mappings  []mapping
	observers []bus.Observer
}

// NewBus is the preferred method of initialisation for the memory bus.
func NewBus() *Bus {
	return &Bus{}
}

// Physical resolves a segment:offset pair into a 20 bit physical address.
func Physical(offset uint16, segment uint16) uint32 {
	return ((uint32(segment) << 4) + uint32(offset)) & addressMask
}

// AttachDevice maps a device over the inclusive physical address range
// start to end. Fails with OverlapError if the range intersects an
// existing mapping.
func (b *Bus) AttachDevice(device bus.Device, start uint32, end uint32) error {
	for _, m := range b.mappings {
		if start <= m.end && end >= m.start {
			return curated.Errorf(bus.OverlapError, start, end)
		}
	}

	b.mappings = append(b.mappings, mapping{device: device, start: start, end: end})
	logger.Logf("memory", "device attached at %#05x to %#05x", start, end)

	return nil
}

// DetachDevice removes a device from the bus. Fails with NotFoundError if
// the device has not been attached.
func (b *Bus) DetachDevice(device bus.Device) error {
	for i, m := range b.mappings {
		if m.device == device {
			b.mappings = append(b.mappings[:i], b.mappings[i+1:]...)
			logger.Logf("memory", "device detached from %#05x", m.start)
			return nil
		}
	}

	return curated.Errorf(bus.NotFoundError)
}

// Read a value from the segment:offset address. Observers are notified
// before the value is returned to the caller.
func (b *Bus) Read(offset uint16, segment uint16, size uint, notify bool) (uint16, error) {
	physical := Physical(offset, segment)

	for _, m := range b.mappings {
		if physical >= m.start && physical <= m.end {
			if notify {
				for _, o := range b.observers {
					o.OnRead(physical)
				}
			}

			return m.device.Read(physical-m.start, size)
		}
	}

	return 0, curated.Errorf(bus.OutOfRangeError, physical)
}

// Write a value to the segment:offset address. The device write happens
// before observers are notified.
func (b *Bus) Write(offset uint16, data uint16, segment uint16, size uint, notify bool) error {
	physical := Physical(offset, segment)

	for _, m := range b.mappings {
		if physical >= m.start && physical <= m.end {
			if err := m.device.Write(physical-m.start, data, size); err != nil {
				return err
			}

			if notify {
				for _, o := range b.observers {
					o.OnWrite(physical, data)
				}
			}

			return nil
		}
	}

	return curated.Errorf(bus.OutOfRangeError, physical)
}

// Size returns the sum of the lengths of all mapped ranges.
func (b *Bus) Size() int {
	total := 0
	for _, m := range b.mappings {
		total += int(m.end - m.start + 1)
	}
	return total
}

// Dump produces a flat byte image of the mapped address space. Bytes not
// covered by any mapping read as zero.
func (b *Bus) Dump() ([]byte, error) {
	out := make([]byte, b.Size())

	for _, m := range b.mappings {
		for i := uint32(0); i <= m.end-m.start; i++ {
			idx := m.start + i
			if idx >= uint32(len(out)) {
				break
			}

			v, err := m.device.Read(i, 8)
			if err != nil {
				return nil, err
			}
			out[idx] = uint8(v)
		}
	}

	return out, nil
}

// RegisterObserver adds an observer to the notification list. Observers
// are invoked synchronously in registration order.
func (b *Bus) RegisterObserver(observer bus.Observer) {
	b.observers = append(b.observers, observer)
}

// UnregisterObserver removes an observer from the notification list.
func (b *Bus) UnregisterObserver(observer bus.Observer) {
	for i, o := range b.observers {
		if o == observer {
			b.observers = append(b.observers[:i], b.observers[i+1:]...)
			return
		}
	}
}
