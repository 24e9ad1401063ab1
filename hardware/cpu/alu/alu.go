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

// Package alu implements the arithmetic and logic primitives of the 8086.
// Every function takes its operands, the operand size (8 or 16) and the
// flags to mutate; the numeric result is returned truncated to the operand
// size and the caller is responsible for writing it back to the
// destination.
package alu

import (
	"github.com/MateusDuartee/i86emu/hardware/bits"
	"github.com/MateusDuartee/i86emu/hardware/cpu/registers"
)

// Add returns a+b and updates C, A, P, O, Z and S.
func Add(a uint16, b uint16, size uint, f *registers.Flags) uint16 {
	result := uint32(a) + uint32(b)

	f.CheckCarryAdd(a, b, result, size)
	f.CheckAuxiliaryCarryAdd(a, b, result)
	f.CheckParity(uint8(result))
	f.CheckOverflowAdd(a, b, result, size)
	f.CheckZero(result, size)
	f.CheckSign(result, size)

	return uint16(bits.Mask(result, size))
}

// Adc returns a+b+carry and updates C, A, P, O, Z and S. The overflow
// check is handed b plus the carry-in as a single operand.
func Adc(a uint16, b uint16, size uint, f *registers.Flags) uint16 {
	var carryIn uint16
	if f.Carry {
		carryIn = 1
	}
	result := uint32(a) + uint32(b) + uint32(carryIn)

	f.CheckCarryAdd(a, b, result, size)
	f.CheckAuxiliaryCarryAdd(a, b, result)
	f.CheckParity(uint8(result))
	f.CheckOverflowAdd(a, b+carryIn, result, size)
	f.CheckZero(result, size)
	f.CheckSign(result, size)

	return uint16(bits.Mask(result, size))
}

// Sub returns a-b and updates C, A, P, O, Z and S. CMP is Sub with the
// result discarded.
func Sub(a uint16, b uint16, size uint, f *registers.Flags) uint16 {
	result := uint32(a) - uint32(b)

	f.CheckCarrySub(a, b, size)
	f.CheckAuxiliaryCarrySub(a, b)
	f.CheckParity(uint8(result))
	f.CheckOverflowSub(a, b, size)
	f.CheckZero(result, size)
	f.CheckSign(result, size)

	return uint16(bits.Mask(result, size))
}

// Sbb returns a-b-carry and updates C, A, P, O, Z and S. The overflow
// check is handed b minus the carry-in as a single operand.
func Sbb(a uint16, b uint16, size uint, f *registers.Flags) uint16 {
	var carryIn uint16
	if f.Carry {
		carryIn = 1
	}
	result := uint32(a) - uint32(b) - uint32(carryIn)

	f.CheckCarrySub(a, b, size)
	f.CheckAuxiliaryCarrySub(a, b)
	f.CheckParity(uint8(result))
	f.CheckOverflowSub(a, b-carryIn, size)
	f.CheckZero(result, size)
	f.CheckSign(result, size)

	return uint16(bits.Mask(result, size))
}

// Or returns a|b. C and O are cleared; P, Z and S updated. A is left
// undefined.
func Or(a uint16, b uint16, size uint, f *registers.Flags) uint16 {
	result := uint32(a) | uint32(b)

	f.Carry = false
	f.Overflow = false
	f.CheckParity(uint8(result))
	f.CheckZero(result, size)
	f.CheckSign(result, size)

	return uint16(bits.Mask(result, size))
}

// And returns a&b. C and O are cleared; P, Z and S updated. A is left
// undefined. TEST is And with the result discarded.
func And(a uint16, b uint16, size uint, f *registers.Flags) uint16 {
	result := uint32(a) & uint32(b)

	f.Carry = false
	f.Overflow = false
	f.CheckParity(uint8(result))
	f.CheckZero(result, size)
	f.CheckSign(result, size)

	return uint16(bits.Mask(result, size))
}

// Xor returns a^b. C and O are cleared; P, Z and S updated. A is left
// undefined.
func Xor(a uint16, b uint16, size uint, f *registers.Flags) uint16 {
	result := uint32(a) ^ uint32(b)

	f.Carry = false
	f.Overflow = false
	f.CheckParity(uint8(result))
	f.CheckZero(result, size)
	f.CheckSign(result, size)

	return uint16(bits.Mask(result, size))
}

// Inc returns v+1 and updates A, P, O, Z and S. The carry flag is not
// affected.
func Inc(v uint16, size uint, f *registers.Flags) uint16 {
	result := uint32(v) + 1

	f.CheckAuxiliaryCarryAdd(v, 1, result)
	f.CheckParity(uint8(result))
	f.CheckOverflowAdd(v, 1, result, size)
	f.CheckZero(result, size)
	f.CheckSign(result, size)

	return uint16(bits.Mask(result, size))
}

// Dec returns v-1 and updates A, P, O, Z and S. The carry flag is not
// affected.
func Dec(v uint16, size uint, f *registers.Flags) uint16 {
	result := uint32(v) - 1

	f.CheckAuxiliaryCarrySub(v, 1)
	f.CheckParity(uint8(result))
	f.CheckOverflowSub(v, 1, size)
	f.CheckZero(result, size)
	f.CheckSign(result, size)

	return uint16(bits.Mask(result, size))
}

// Neg returns 0-v with the usual subtraction flags. The carry flag ends up
// set for any non-zero operand.
func Neg(v uint16, size uint, f *registers.Flags) uint16 {
	return Sub(0, v, size, f)
}

// Not returns ^v. No flags are affected.
func Not(v uint16, size uint) uint16 {
	return uint16(bits.Mask(^uint32(v), size))
}
