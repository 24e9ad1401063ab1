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

package alu

import (
	"github.com/MateusDuartee/i86emu/hardware/cpu/registers"
)

// Daa adjusts AL after an addition of two packed BCD operands. The low
// nibble test uses the masked nibble; the upper digit test uses the AL and
// carry values from before the low adjustment. S, Z and P are updated from
// the adjusted AL.
func Daa(a *registers.Register, f *registers.Flags) {
	al := a.Low()
	origAL := al
	origCarry := f.Carry

	if (al&0x0f) > 9 || f.Auxiliary {
		al += 6
		f.Auxiliary = true
	} else {
		f.Auxiliary = false
	}

	if origAL > 0x9f || origCarry {
		al += 0x60
		f.Carry = true
	} else {
		f.Carry = false
	}

	a.SetLow(al)

	f.CheckParity(al)
	f.CheckZero(uint32(al), 8)
	f.CheckSign(uint32(al), 8)
}

// Das adjusts AL after a subtraction of two packed BCD operands. The
// mirror image of Daa.
func Das(a *registers.Register, f *registers.Flags) {
	al := a.Low()
	origAL := al
	origCarry := f.Carry

	if (al&0x0f) > 9 || f.Auxiliary {
		al -= 6
		f.Auxiliary = true
	} else {
		f.Auxiliary = false
	}

	if origAL > 0x9f || origCarry {
		al -= 0x60
		f.Carry = true
	} else {
		f.Carry = false
	}

	a.SetLow(al)

	f.CheckParity(al)
	f.CheckZero(uint32(al), 8)
	f.CheckSign(uint32(al), 8)
}

// Aaa adjusts AL after an addition of two unpacked BCD operands, carrying
// into AH. The low nibble of AL is kept.
func Aaa(a *registers.Register, f *registers.Flags) {
	if (a.Low()&0x0f) > 9 || f.Auxiliary {
		a.SetLow(a.Low() + 6)
		a.SetHigh(a.High() + 1)
		f.Auxiliary = true
		f.Carry = true
	} else {
		f.Auxiliary = false
		f.Carry = false
	}

	a.SetLow(a.Low() & 0x0f)
}

// Aas adjusts AL after a subtraction of two unpacked BCD operands,
// borrowing from AH. The low nibble of AL is kept.
func Aas(a *registers.Register, f *registers.Flags) {
	if (a.Low()&0x0f) > 9 || f.Auxiliary {
		a.SetLow(a.Low() - 6)
		a.SetHigh(a.High() - 1)
		f.Auxiliary = true
		f.Carry = true
	} else {
		f.Auxiliary = false
		f.Carry = false
	}

	a.SetLow(a.Low() & 0x0f)
}
