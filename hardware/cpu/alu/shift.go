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

// Rcl rotates left through the carry flag. The rotation count is taken
// modulo size+1 because the carry flag takes part in the rotation. The
// overflow flag is defined only for a count of one: MSB of the result
// XORed with the resulting carry.
func Rcl(value uint16, count uint8, size uint, f *registers.Flags) uint16 {
	result := uint32(value)
	tempCount := uint(count) % (size + 1)

	for tempCount != 0 {
		carry := bits.MSB(result, size)
		result = result << 1
		if f.Carry {
			result |= 1
		}
		f.Carry = carry
		tempCount--
	}

	if count == 1 {
		f.Overflow = bits.MSB(result, size) != f.Carry
	}

	return uint16(bits.Mask(result, size))
}

// Rcr rotates right through the carry flag. The rotation count is taken
// modulo size+1. The overflow flag is defined only for a count of one and
// uses the carry flag as it was before the rotation.
func Rcr(value uint16, count uint8, size uint, f *registers.Flags) uint16 {
	result := bits.Mask(uint32(value), size)
	tempCount := uint(count) % (size + 1)

	if tempCount == 1 {
		f.Overflow = bits.MSB(result, size) != f.Carry
	}

	for tempCount != 0 {
		carry := bits.LSB(result)
		result = result >> 1
		if f.Carry {
			result |= 1 << (size - 1)
		}
		f.Carry = carry
		tempCount--
	}

	return uint16(bits.Mask(result, size))
}

// Rol rotates left. The count is taken modulo the operand size. A non-zero
// count leaves the carry flag holding the last bit rotated out; a count of
// one defines the overflow flag as MSB of the result XORed with the carry.
func Rol(value uint16, count uint8, size uint, f *registers.Flags) uint16 {
	result := uint32(value)
	tempCount := uint(count) % size
	var carry bool

	for tempCount != 0 {
		carry = bits.MSB(result, size)
		result = result << 1
		if carry {
			result |= 1
		}
		tempCount--
	}

	if count != 0 {
		f.Carry = carry
	}

	if count == 1 {
		f.Overflow = bits.MSB(result, size) != f.Carry
	}

	return uint16(bits.Mask(result, size))
}

// Ror rotates right. The count is taken modulo the operand size. A count
// of one defines the overflow flag as the XOR of the two top bits of the
// result, which is the same as the XOR of the MSB of the result and the
// MSB of the original value.
func Ror(value uint16, count uint8, size uint, f *registers.Flags) uint16 {
	result := bits.Mask(uint32(value), size)
	tempCount := uint(count) % size
	var carry bool

	for tempCount != 0 {
		carry = bits.LSB(result)
		result = result >> 1
		if carry {
			result |= 1 << (size - 1)
		}
		tempCount--
	}

	if count != 0 {
		f.Carry = carry
	}

	if count == 1 {
		f.Overflow = bits.MSB(result, size) != bits.MSB(uint32(value), size)
	}

	return uint16(bits.Mask(result, size))
}

// Shl shifts left. A count of zero affects no flags; a count larger than
// the operand size produces zero with C=0, Z=1, S=0 and P=1. The overflow
// flag is defined only for a count of one.
func Shl(value uint16, count uint8, size uint, f *registers.Flags) uint16 {
	if count == 0 {
		return value
	}

	if uint(count) > size {
		f.Carry = false
		f.Zero = true
		f.Sign = false
		f.Parity = true
		return 0
	}

	f.Carry = bits.Get(uint32(value), size-uint(count))

	result := bits.Mask(uint32(value)<<count, size)

	if count == 1 {
		f.Overflow = bits.MSB(result, size) != f.Carry
	}

	f.CheckParity(uint8(result))
	f.CheckZero(result, size)
	f.CheckSign(result, size)

	return uint16(result)
}

// Shr shifts right. A count of zero affects no flags; a count larger than
// the operand size produces zero with C=0, Z=1, S=0 and P=1. For a count
// of one the overflow flag receives the MSB of the original value.
func Shr(value uint16, count uint8, size uint, f *registers.Flags) uint16 {
	if count == 0 {
		return value
	}

	if uint(count) > size {
		f.Carry = false
		f.Zero = true
		f.Sign = false
		f.Parity = true
		return 0
	}

	maskedValue := bits.Mask(uint32(value), size)

	f.Carry = bits.Get(maskedValue, uint(count)-1)

	result := maskedValue >> count

	if count == 1 {
		f.Overflow = bits.MSB(maskedValue, size)
	}

	f.CheckParity(uint8(result))
	f.CheckZero(result, size)
	f.CheckSign(result, size)

	return uint16(bits.Mask(result, size))
}

// Sar shifts right arithmetically, preserving the sign bit. A count of at
// least the operand size produces all ones or all zeroes depending on the
// sign. For a count of one the overflow flag is cleared.
func Sar(value uint16, count uint8, size uint, f *registers.Flags) uint16 {
	if count == 0 {
		return value
	}

	maskedValue := bits.Mask(uint32(value), size)

	var result int32
	if size == 8 {
		result = int32(int8(maskedValue))
	} else {
		result = int32(int16(maskedValue))
	}

	if uint(count) >= size {
		signBit := bits.MSB(maskedValue, size)
		f.Carry = signBit

		if signBit {
			result = int32(bits.Mask(0xffffffff, size))
		} else {
			result = 0
		}
	} else {
		f.Carry = bits.Get(maskedValue, uint(count)-1)
		result >>= count
	}

	if count == 1 {
		f.Overflow = false
	}

	f.CheckParity(uint8(result))
	f.CheckZero(uint32(result), size)
	f.CheckSign(uint32(result), size)

	return uint16(bits.Mask(uint32(result), size))
}
