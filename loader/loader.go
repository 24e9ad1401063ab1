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

// Package loader copies a flat binary image into a RAM device at a chosen
// physical base address. No headers are interpreted.
package loader

import (
	"os"

	"github.com/MateusDuartee/i86emu/curated"
	"github.com/MateusDuartee/i86emu/hardware/memory/ram"
	"github.com/MateusDuartee/i86emu/logger"
)

// Error patterns raised by the loader.
const (
	// the file could not be opened or read.
	IoError = "loader: %v"

	// the image does not fit the device at the base address.
	TooLargeError = "loader: image of %d bytes does not fit at %#05x"
)

// LoadFile reads a binary file and copies its bytes into the RAM device
// starting at the base address.
func LoadFile(filename string, base uint32, mem *ram.RAM) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return curated.Errorf(IoError, err)
	}

	if err := Load(data, base, mem); err != nil {
		return err
	}

	logger.Logf("loader", "%s: %d bytes at %#05x", filename, len(data), base)

	return nil
}

// Load copies a binary image into the RAM device starting at the base
// address. Fails with TooLargeError when base plus the image size exceeds
// the device capacity.
func Load(data []byte, base uint32, mem *ram.RAM) error {
	if int(base)+len(data) > mem.Size() {
		return curated.Errorf(TooLargeError, len(data), base)
	}

	for i, b := range data {
		if err := mem.Write(base+uint32(i), uint16(b), 8); err != nil {
			return err
		}
	}

	return nil
}
