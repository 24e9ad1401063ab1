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

package registers

import (
	"strings"

	"github.com/MateusDuartee/i86emu/hardware/bits"
)

// Flags is the status register of the 8086. The nine flags are stored as
// named booleans; the packed 16 bit form is produced on demand by Value().
type Flags struct {
	Carry     bool
	Parity    bool
	Auxiliary bool
	Zero      bool
	Sign      bool
	Trap      bool
	Interrupt bool
	Direction bool
	Overflow  bool
}

// NewFlags is the preferred method of initialisation for the Flags type.
func NewFlags() Flags {
	return Flags{}
}

// Label returns the canonical name for the status register.
func (f Flags) Label() string {
	return "FLAGS"
}

func (f Flags) String() string {
	s := strings.Builder{}

	for _, c := range []struct {
		set bool
		r   rune
	}{
		{f.Overflow, 'O'},
		{f.Direction, 'D'},
		{f.Interrupt, 'I'},
		{f.Trap, 'T'},
		{f.Sign, 'S'},
		{f.Zero, 'Z'},
		{f.Auxiliary, 'A'},
		{f.Parity, 'P'},
		{f.Carry, 'C'},
	} {
		if c.set {
			s.WriteRune(c.r)
		} else {
			s.WriteRune(c.r + 0x20)
		}
	}

	return s.String()
}

// Value returns the packed 16 bit form of the status register. Bits outside
// the nine defined positions read as zero.
func (f Flags) Value() uint16 {
	var v uint16

	if f.Carry {
		v |= 1 << 0
	}
	if f.Parity {
		v |= 1 << 2
	}
	if f.Auxiliary {
		v |= 1 << 4
	}
	if f.Zero {
		v |= 1 << 6
	}
	if f.Sign {
		v |= 1 << 7
	}
	if f.Trap {
		v |= 1 << 8
	}
	if f.Interrupt {
		v |= 1 << 9
	}
	if f.Direction {
		v |= 1 << 10
	}
	if f.Overflow {
		v |= 1 << 11
	}

	return v
}

// SetValue unpacks the 16 bit form of the status register into the nine
// named flags.
func (f *Flags) SetValue(v uint16) {
	f.Carry = bits.Get(uint32(v), 0)
	f.Parity = bits.Get(uint32(v), 2)
	f.Auxiliary = bits.Get(uint32(v), 4)
	f.Zero = bits.Get(uint32(v), 6)
	f.Sign = bits.Get(uint32(v), 7)
	f.Trap = bits.Get(uint32(v), 8)
	f.Interrupt = bits.Get(uint32(v), 9)
	f.Direction = bits.Get(uint32(v), 10)
	f.Overflow = bits.Get(uint32(v), 11)
}

// Reset all flags to their initial state.
func (f *Flags) Reset() {
	f.SetValue(0)
}

// CheckParity sets the parity flag if the number of set bits in the low
// byte of the result is even.
func (f *Flags) CheckParity(value uint8) {
	count := 0
	for value != 0 {
		count++
		value &= value - 1
	}
	f.Parity = count%2 == 0
}

// CheckZero sets the zero flag according to the result, truncated to the
// operand size.
func (f *Flags) CheckZero(value uint32, size uint) {
	f.Zero = bits.Mask(value, size) == 0
}

// CheckSign sets the sign flag to the top bit of the result within the
// operand size.
func (f *Flags) CheckSign(value uint32, size uint) {
	f.Sign = bits.MSB(value, size)
}

// CheckCarryAdd sets the carry flag after an addition. The carry out of the
// top bit appears in bit <size> of a^b^result.
func (f *Flags) CheckCarryAdd(a uint16, b uint16, result uint32, size uint) {
	f.Carry = (uint32(a)^uint32(b)^result)&(1<<size) != 0
}

// CheckCarrySub sets the carry flag after a subtraction. A borrow occurred
// if the subtrahend is larger than the minuend.
func (f *Flags) CheckCarrySub(a uint16, b uint16, size uint) {
	f.Carry = bits.Mask(uint32(b), size) > bits.Mask(uint32(a), size)
}

// CheckAuxiliaryCarryAdd sets the auxiliary flag if the addition carried
// out of the low nibble.
func (f *Flags) CheckAuxiliaryCarryAdd(a uint16, b uint16, result uint32) {
	f.Auxiliary = (uint32(a)^uint32(b)^result)&0x10 == 0x10
}

// CheckAuxiliaryCarrySub sets the auxiliary flag if the subtraction
// borrowed from the low nibble.
func (f *Flags) CheckAuxiliaryCarrySub(a uint16, b uint16) {
	f.Auxiliary = (b & 0xf) > (a & 0xf)
}

// CheckOverflowAdd sets the overflow flag after an addition. Overflow has
// occurred when both operands share a sign that differs from the sign of
// the result.
func (f *Flags) CheckOverflowAdd(a uint16, b uint16, result uint32, size uint) {
	switch size {
	case 8:
		sa := int8(a)
		sb := int8(b)
		sr := int8(result)
		f.Overflow = (sa > 0 && sb > 0 && sr < 0) || (sa < 0 && sb < 0 && sr >= 0)
	case 16:
		sa := int16(a)
		sb := int16(b)
		sr := int16(result)
		f.Overflow = (sa > 0 && sb > 0 && sr < 0) || (sa < 0 && sb < 0 && sr >= 0)
	}
}

// CheckOverflowSub sets the overflow flag after a subtraction. The
// subtraction is performed in the next larger signed width and overflow has
// occurred when the result falls outside the signed range of the operand
// size.
func (f *Flags) CheckOverflowSub(a uint16, b uint16, size uint) {
	switch size {
	case 8:
		sr := int16(int8(a)) - int16(int8(b))
		f.Overflow = sr < -128 || sr > 127
	case 16:
		sr := int32(int16(a)) - int32(int16(b))
		f.Overflow = sr < -32768 || sr > 32767
	}
}
