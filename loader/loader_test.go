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

package loader_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MateusDuartee/i86emu/curated"
	"github.com/MateusDuartee/i86emu/hardware/memory/ram"
	"github.com/MateusDuartee/i86emu/loader"
	"github.com/MateusDuartee/i86emu/test"
)

func TestLoad(t *testing.T) {
	mem := ram.NewRAM(0x100)

	test.ExpectedSuccess(t, loader.Load([]byte{0xde, 0xad, 0xbe, 0xef}, 0x10, mem))

	v, err := mem.Read(0x10, 8)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0xde)
	v, err = mem.Read(0x13, 8)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0xef)
}

func TestLoadTooLarge(t *testing.T) {
	mem := ram.NewRAM(0x10)

	err := loader.Load(make([]byte, 0x11), 0, mem)
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, loader.TooLargeError))

	// an image that exactly fits is fine
	test.ExpectedSuccess(t, loader.Load(make([]byte, 0x10), 0, mem))

	// but not when offset by the base address
	err = loader.Load(make([]byte, 0x10), 1, mem)
	test.ExpectedFailure(t, err)
}

func TestLoadFile(t *testing.T) {
	mem := ram.NewRAM(0x100)

	filename := filepath.Join(t.TempDir(), "image.bin")
	if err := os.WriteFile(filename, []byte{0x05, 0x34, 0x12}, 0o644); err != nil {
		t.Fatal(err)
	}

	test.ExpectedSuccess(t, loader.LoadFile(filename, 0, mem))

	v, err := mem.Read(0, 8)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0x05)
}

func TestLoadFileMissing(t *testing.T) {
	mem := ram.NewRAM(0x100)

	err := loader.LoadFile(filepath.Join(t.TempDir(), "no-such-file"), 0, mem)
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, loader.IoError))
}
