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

// The group opcodes select the actual instruction with the Reg subfield of
// the ModR/M byte. Undefined rows consume no bytes beyond the ModR/M byte
// itself, which keeps byte consumption aligned with the disassembler.

import (
	"github.com/MateusDuartee/i86emu/hardware/cpu/alu"
)

// 0x80/0x81/0x82/0x83: ALU operation r/m, imm. The 0x83 form sign extends
// an 8 bit immediate to 16 bits.
func (mc *CPU) opGroupImm(size uint, signExtend bool) error {
	if err := mc.fetchModRM(); err != nil {
		return err
	}
	if err := mc.calcEffectiveAddress(); err != nil {
		return err
	}

	a, err := mc.readRMOperand(size)
	if err != nil {
		return err
	}

	var b uint16
	if signExtend {
		v, err := mc.fetch8()
		if err != nil {
			return err
		}
		b = uint16(int16(int8(v)))
	} else {
		b, err = mc.fetch(size)
		if err != nil {
			return err
		}
	}

	var result uint16
	writeBack := true

	switch mc.Reg {
	case 0:
		result = alu.Add(a, b, size, &mc.Flags)
	case 1:
		result = alu.Or(a, b, size, &mc.Flags)
	case 2:
		result = alu.Adc(a, b, size, &mc.Flags)
	case 3:
		result = alu.Sbb(a, b, size, &mc.Flags)
	case 4:
		result = alu.And(a, b, size, &mc.Flags)
	case 5:
		result = alu.Sub(a, b, size, &mc.Flags)
	case 6:
		result = alu.Xor(a, b, size, &mc.Flags)
	case 7:
		// CMP discards the result
		alu.Sub(a, b, size, &mc.Flags)
		writeBack = false
	}

	if !writeBack {
		return nil
	}

	return mc.writeRMOperand(result, size)
}

// 0x8c: MOV r/m16, segment register. Rows 4 to 7 are undefined.
func (mc *CPU) opGroupMovFromSeg() error {
	if err := mc.fetchModRM(); err != nil {
		return err
	}

	if mc.Reg > 3 {
		return nil
	}

	if err := mc.calcEffectiveAddress(); err != nil {
		return err
	}

	return mc.writeRMOperand(mc.segReg(mc.Reg).Value(), 16)
}

// 0x8e: MOV segment register, r/m16. Rows 4 to 7 are undefined.
func (mc *CPU) opGroupMovToSeg() error {
	if err := mc.fetchModRM(); err != nil {
		return err
	}

	if mc.Reg > 3 {
		return nil
	}

	if err := mc.calcEffectiveAddress(); err != nil {
		return err
	}

	v, err := mc.readRMOperand(16)
	if err != nil {
		return err
	}

	mc.segReg(mc.Reg).Load(v)

	return nil
}

// 0x8f: POP r/m16. Only row 0 is defined.
func (mc *CPU) opGroupPopRM() error {
	if err := mc.fetchModRM(); err != nil {
		return err
	}

	if mc.Reg != 0 {
		return nil
	}

	if err := mc.calcEffectiveAddress(); err != nil {
		return err
	}

	v, err := mc.pop()
	if err != nil {
		return err
	}

	return mc.writeRMOperand(v, 16)
}

// 0xc6/0xc7: MOV r/m, imm. Only row 0 is defined.
func (mc *CPU) opGroupMovImm() error {
	if err := mc.fetchModRM(); err != nil {
		return err
	}

	if mc.Reg != 0 {
		return nil
	}

	if err := mc.calcEffectiveAddress(); err != nil {
		return err
	}

	v, err := mc.fetch(mc.OperandSize)
	if err != nil {
		return err
	}

	return mc.writeRMOperand(v, mc.OperandSize)
}

// 0xd0 to 0xd3: shift and rotate r/m by one or by CL. Row 6 is undefined.
func (mc *CPU) opGroupShift(useCL bool) error {
	if err := mc.fetchModRM(); err != nil {
		return err
	}

	if mc.Reg == 6 {
		return nil
	}

	if err := mc.calcEffectiveAddress(); err != nil {
		return err
	}

	v, err := mc.readRMOperand(mc.OperandSize)
	if err != nil {
		return err
	}

	count := uint8(1)
	if useCL {
		count = mc.C.Low()
	}

	var result uint16

	switch mc.Reg {
	case 0:
		result = alu.Rol(v, count, mc.OperandSize, &mc.Flags)
	case 1:
		result = alu.Ror(v, count, mc.OperandSize, &mc.Flags)
	case 2:
		result = alu.Rcl(v, count, mc.OperandSize, &mc.Flags)
	case 3:
		result = alu.Rcr(v, count, mc.OperandSize, &mc.Flags)
	case 4:
		result = alu.Shl(v, count, mc.OperandSize, &mc.Flags)
	case 5:
		result = alu.Shr(v, count, mc.OperandSize, &mc.Flags)
	case 7:
		result = alu.Sar(v, count, mc.OperandSize, &mc.Flags)
	}

	return mc.writeRMOperand(result, mc.OperandSize)
}

// 0xf6/0xf7: TEST/NOT/NEG/MUL/IMUL/DIV/IDIV on r/m. Row 1 is undefined.
func (mc *CPU) opGroupUnary() error {
	if err := mc.fetchModRM(); err != nil {
		return err
	}

	if mc.Reg == 1 {
		return nil
	}

	if err := mc.calcEffectiveAddress(); err != nil {
		return err
	}

	v, err := mc.readRMOperand(mc.OperandSize)
	if err != nil {
		return err
	}

	switch mc.Reg {
	case 0:
		// TEST r/m, imm
		imm, err := mc.fetch(mc.OperandSize)
		if err != nil {
			return err
		}
		alu.And(v, imm, mc.OperandSize, &mc.Flags)

	case 2:
		return mc.writeRMOperand(alu.Not(v, mc.OperandSize), mc.OperandSize)

	case 3:
		return mc.writeRMOperand(alu.Neg(v, mc.OperandSize, &mc.Flags), mc.OperandSize)

	case 4:
		// MUL: the double-width product lands in AX or DX:AX
		if mc.OperandSize == 8 {
			mc.A.Load(uint16(alu.Mul(uint16(mc.A.Low()), v, 8, &mc.Flags)))
		} else {
			r := alu.Mul(mc.A.Value(), v, 16, &mc.Flags)
			mc.A.Load(uint16(r))
			mc.D.Load(uint16(r >> 16))
		}

	case 5:
		// IMUL
		if mc.OperandSize == 8 {
			mc.A.Load(uint16(alu.Imul(uint16(mc.A.Low()), v, 8, &mc.Flags)))
		} else {
			r := alu.Imul(mc.A.Value(), v, 16, &mc.Flags)
			mc.A.Load(uint16(r))
			mc.D.Load(uint16(r >> 16))
		}

	case 6:
		// DIV: divide error raises interrupt 0
		if mc.OperandSize == 8 {
			q, rem, ok := alu.Div(uint32(mc.A.Value()), v, 8)
			if !ok {
				return mc.interrupt(0)
			}
			mc.A.SetLow(uint8(q))
			mc.A.SetHigh(uint8(rem))
		} else {
			dividend := uint32(mc.D.Value())<<16 | uint32(mc.A.Value())
			q, rem, ok := alu.Div(dividend, v, 16)
			if !ok {
				return mc.interrupt(0)
			}
			mc.A.Load(q)
			mc.D.Load(rem)
		}

	case 7:
		// IDIV
		if mc.OperandSize == 8 {
			q, rem, ok := alu.Idiv(uint32(mc.A.Value()), v, 8)
			if !ok {
				return mc.interrupt(0)
			}
			mc.A.SetLow(uint8(q))
			mc.A.SetHigh(uint8(rem))
		} else {
			dividend := uint32(mc.D.Value())<<16 | uint32(mc.A.Value())
			q, rem, ok := alu.Idiv(dividend, v, 16)
			if !ok {
				return mc.interrupt(0)
			}
			mc.A.Load(q)
			mc.D.Load(rem)
		}
	}

	return nil
}

// 0xfe: INC/DEC r/m8. Rows 2 to 7 are undefined.
func (mc *CPU) opGroupIncDecByte() error {
	if err := mc.fetchModRM(); err != nil {
		return err
	}

	if mc.Reg > 1 {
		return nil
	}

	if err := mc.calcEffectiveAddress(); err != nil {
		return err
	}

	v, err := mc.readRMOperand(8)
	if err != nil {
		return err
	}

	if mc.Reg == 0 {
		return mc.writeRMOperand(alu.Inc(v, 8, &mc.Flags), 8)
	}

	return mc.writeRMOperand(alu.Dec(v, 8, &mc.Flags), 8)
}

// 0xff: INC/DEC/CALL/JMP/PUSH on r/m16. Row 7 is undefined.
func (mc *CPU) opGroupWordIndirect() error {
	if err := mc.fetchModRM(); err != nil {
		return err
	}

	if mc.Reg == 7 {
		return nil
	}

	if err := mc.calcEffectiveAddress(); err != nil {
		return err
	}

	switch mc.Reg {
	case 0:
		v, err := mc.readRMOperand(16)
		if err != nil {
			return err
		}
		return mc.writeRMOperand(alu.Inc(v, 16, &mc.Flags), 16)

	case 1:
		v, err := mc.readRMOperand(16)
		if err != nil {
			return err
		}
		return mc.writeRMOperand(alu.Dec(v, 16, &mc.Flags), 16)

	case 2:
		// CALL near indirect
		target, err := mc.readRMOperand(16)
		if err != nil {
			return err
		}
		if err := mc.push(mc.IP.Value()); err != nil {
			return err
		}
		mc.IP.Load(target)

	case 3:
		// CALL far indirect. register-direct addressing has no second
		// word to read and performs no operation
		if mc.Mod == 3 {
			return nil
		}
		ip, cs, err := mc.readFarPointer()
		if err != nil {
			return err
		}
		if err := mc.push(mc.CS.Value()); err != nil {
			return err
		}
		if err := mc.push(mc.IP.Value()); err != nil {
			return err
		}
		mc.IP.Load(ip)
		mc.CS.Load(cs)

	case 4:
		// JMP near indirect
		target, err := mc.readRMOperand(16)
		if err != nil {
			return err
		}
		mc.IP.Load(target)

	case 5:
		// JMP far indirect
		if mc.Mod == 3 {
			return nil
		}
		ip, cs, err := mc.readFarPointer()
		if err != nil {
			return err
		}
		mc.IP.Load(ip)
		mc.CS.Load(cs)

	case 6:
		v, err := mc.readRMOperand(16)
		if err != nil {
			return err
		}
		return mc.push(v)
	}

	return nil
}

// readFarPointer reads an offset:segment pair from the effective address.
func (mc *CPU) readFarPointer() (ip uint16, cs uint16, err error) {
	ip, err = mc.mem.Read(mc.EA, mc.seg, 16, false)
	if err != nil {
		return 0, 0, err
	}

	cs, err = mc.mem.Read(mc.EA+2, mc.seg, 16, false)
	if err != nil {
		return 0, 0, err
	}

	return ip, cs, nil
}
