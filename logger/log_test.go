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

package logger

import (
	"strings"
	"testing"

	"github.com/MateusDuartee/i86emu/test"
)

func TestRepeatFolding(t *testing.T) {
	l := newLogger(16)
	l.log("bus", "device attached")
	l.log("bus", "device attached")
	l.log("bus", "device detached")

	s := strings.Builder{}
	l.write(&s)

	test.Equate(t, s.String(), "bus: device attached (repeat x2)\nbus: device detached\n")
}

func TestTail(t *testing.T) {
	l := newLogger(16)
	l.log("a", "one")
	l.log("b", "two")
	l.log("c", "three")

	s := strings.Builder{}
	l.tail(&s, 2)

	test.Equate(t, s.String(), "b: two\nc: three\n")
}
