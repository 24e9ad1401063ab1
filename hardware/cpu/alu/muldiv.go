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
	"github.com/MateusDuartee/i86emu/hardware/bits"
	"github.com/MateusDuartee/i86emu/hardware/cpu/registers"
)

// Mul performs an unsigned multiplication. The full double-width product is
// returned; C and O are set when the upper half of the product is non-zero.
// The other arithmetic flags are left undefined.
func Mul(a uint16, b uint16, size uint, f *registers.Flags) uint32 {
	result := uint32(a) * uint32(b)

	f.Carry = result>>size != 0
	f.Overflow = f.Carry

	return result
}

// Imul performs a signed multiplication. The full double-width product is
// returned; C and O are set when the product does not fit the operand size.
// The other arithmetic flags are left undefined.
func Imul(a uint16, b uint16, size uint, f *registers.Flags) uint32 {
	var result int32
	var fits bool

	if size == 8 {
		result = int32(int8(a)) * int32(int8(b))
		fits = result >= -128 && result <= 127
	} else {
		result = int32(int16(a)) * int32(int16(b))
		fits = result >= -32768 && result <= 32767
	}

	f.Carry = !fits
	f.Overflow = f.Carry

	if size == 8 {
		return uint32(uint16(result))
	}

	return uint32(result)
}

// Div performs an unsigned division of a double-width dividend. The ok
// return is false for a zero divisor or a quotient that does not fit the
// operand size; the CPU turns that into the divide-error interrupt.
func Div(dividend uint32, divisor uint16, size uint) (quotient uint16, remainder uint16, ok bool) {
	if divisor == 0 {
		return 0, 0, false
	}

	q := dividend / uint32(divisor)
	r := dividend % uint32(divisor)

	if q > bits.Mask(0xffffffff, size) {
		return 0, 0, false
	}

	return uint16(q), uint16(r), true
}

// Idiv performs a signed division of a double-width dividend. The ok
// return is false for a zero divisor or a quotient outside the signed
// range of the operand size. The remainder takes the sign of the dividend.
func Idiv(dividend uint32, divisor uint16, size uint) (quotient uint16, remainder uint16, ok bool) {
	var sdividend, sdivisor int32

	if size == 8 {
		sdividend = int32(int16(uint16(dividend)))
		sdivisor = int32(int8(uint8(divisor)))
	} else {
		sdividend = int32(dividend)
		sdivisor = int32(int16(divisor))
	}

	if sdivisor == 0 {
		return 0, 0, false
	}

	q := sdividend / sdivisor
	r := sdividend % sdivisor

	if size == 8 {
		if q < -128 || q > 127 {
			return 0, 0, false
		}
		return uint16(uint8(int8(q))), uint16(uint8(int8(r))), true
	}

	if q < -32768 || q > 32767 {
		return 0, 0, false
	}

	return uint16(int16(q)), uint16(int16(r)), true
}
