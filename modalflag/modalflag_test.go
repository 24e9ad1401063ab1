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

package modalflag_test

import (
	"testing"

	"github.com/MateusDuartee/i86emu/modalflag"
	"github.com/MateusDuartee/i86emu/test"
)

func TestDefaultSubMode(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"image.bin"})
	md.AddSubModes("RUN", "DEBUG", "DISASM")

	r, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, int(r), int(modalflag.ParseContinue))
	test.Equate(t, md.Mode(), "RUN")
	test.Equate(t, md.GetArg(0), "image.bin")
}

func TestExplicitSubMode(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"debug", "image.bin"})
	md.AddSubModes("RUN", "DEBUG", "DISASM")

	_, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, md.Mode(), "DEBUG")

	// mode-specific flags are parsed in the next stage
	md.NewMode()
	color := md.AddBool("color", true, "ANSI terminal")

	_, err = md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, *color, true)
	test.Equate(t, md.GetArg(0), "image.bin")
	test.Equate(t, md.Path(), "DEBUG")
}

func TestFlags(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-ram", "65536", "image.bin"})
	ramSize := md.AddInt("ram", 1048576, "RAM size in bytes")

	_, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, *ramSize, 65536)
	test.Equate(t, len(md.RemainingArgs()), 1)
}

func TestParseError(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-no-such-flag"})

	r, err := md.Parse()
	test.ExpectedFailure(t, err)
	test.Equate(t, int(r), int(modalflag.ParseError))
}
