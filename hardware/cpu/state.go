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

package cpu

import "github.com/MateusDuartee/i86emu/hardware/cpu/registers"

// State is a copy-out view of the CPU for consumption by a front-end. It
// is a plain value and safe to keep.
type State struct {
	IP uint16

	A uint16
	B uint16
	C uint16
	D uint16

	SP uint16
	BP uint16
	SI uint16
	DI uint16

	CS uint16
	DS uint16
	SS uint16
	ES uint16

	Flags registers.Flags

	// scratch state of the most recent instruction
	OperandSize uint
	Mod         uint8
	Reg         uint8
	Rm          uint8
	EA          uint16

	Halted bool
}

// Snapshot copies the current CPU state.
func (mc *CPU) Snapshot() State {
	return State{
		IP:          mc.IP.Value(),
		A:           mc.A.Value(),
		B:           mc.B.Value(),
		C:           mc.C.Value(),
		D:           mc.D.Value(),
		SP:          mc.SP.Value(),
		BP:          mc.BP.Value(),
		SI:          mc.SI.Value(),
		DI:          mc.DI.Value(),
		CS:          mc.CS.Value(),
		DS:          mc.DS.Value(),
		SS:          mc.SS.Value(),
		ES:          mc.ES.Value(),
		Flags:       mc.Flags,
		OperandSize: mc.OperandSize,
		Mod:         mc.Mod,
		Reg:         mc.Reg,
		Rm:          mc.Rm,
		EA:          mc.EA,
		Halted:      mc.halted,
	}
}
