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

import (
	"github.com/MateusDuartee/i86emu/hardware/cpu/alu"
	"github.com/MateusDuartee/i86emu/hardware/cpu/registers"
)

// aluFunc is the shape of the two-operand primitives in the alu package.
type aluFunc func(a uint16, b uint16, size uint, f *registers.Flags) uint16

// buildOpcodeTable fills the 256 entry dispatch table. Reserved and
// unimplemented encodings execute as NOPs; their table slots are simply
// left holding the no-operation handler.
func (mc *CPU) buildOpcodeTable() {
	nop := func() error { return nil }

	for i := range mc.opcodes {
		mc.opcodes[i] = nop
	}

	// the eight arithmetic/logical rows. each row has the r/m,r - r,r/m
	// and accumulator,immediate forms at fixed offsets from its base
	rows := []struct {
		base      uint8
		op        aluFunc
		writeBack bool
	}{
		{0x00, alu.Add, true},
		{0x08, alu.Or, true},
		{0x10, alu.Adc, true},
		{0x18, alu.Sbb, true},
		{0x20, alu.And, true},
		{0x28, alu.Sub, true},
		{0x30, alu.Xor, true},
		{0x38, alu.Sub, false}, // CMP
	}

	for _, r := range rows {
		r := r
		mc.opcodes[r.base+0] = func() error { return mc.opALURMR(r.op, r.writeBack) }
		mc.opcodes[r.base+1] = mc.opcodes[r.base+0]
		mc.opcodes[r.base+2] = func() error { return mc.opALURRM(r.op, r.writeBack) }
		mc.opcodes[r.base+3] = mc.opcodes[r.base+2]
		mc.opcodes[r.base+4] = func() error { return mc.opALUAccImm(r.op, r.writeBack) }
		mc.opcodes[r.base+5] = mc.opcodes[r.base+4]
	}

	// PUSH/POP segment registers. PUSH CS (0x0e) and POP CS (0x0f) are
	// illegal encodings and stay NOPs
	mc.opcodes[0x06] = func() error { return mc.push(mc.ES.Value()) }
	mc.opcodes[0x07] = func() error { return mc.opPopSeg(&mc.ES) }
	mc.opcodes[0x16] = func() error { return mc.push(mc.SS.Value()) }
	mc.opcodes[0x17] = func() error { return mc.opPopSeg(&mc.SS) }
	mc.opcodes[0x1e] = func() error { return mc.push(mc.DS.Value()) }
	mc.opcodes[0x1f] = func() error { return mc.opPopSeg(&mc.DS) }

	// segment override prefixes
	mc.opcodes[0x26] = func() error { mc.setOverride(mc.ES.Value()); return nil }
	mc.opcodes[0x2e] = func() error { mc.setOverride(mc.CS.Value()); return nil }
	mc.opcodes[0x36] = func() error { mc.setOverride(mc.SS.Value()); return nil }
	mc.opcodes[0x3e] = func() error { mc.setOverride(mc.DS.Value()); return nil }

	// BCD adjusts
	mc.opcodes[0x27] = func() error { alu.Daa(&mc.A, &mc.Flags); return nil }
	mc.opcodes[0x2f] = func() error { alu.Das(&mc.A, &mc.Flags); return nil }
	mc.opcodes[0x37] = func() error { alu.Aaa(&mc.A, &mc.Flags); return nil }
	mc.opcodes[0x3f] = func() error { alu.Aas(&mc.A, &mc.Flags); return nil }

	// INC/DEC/PUSH/POP on the 16 bit registers
	for i := uint8(0); i < 8; i++ {
		i := i
		mc.opcodes[0x40+i] = func() error {
			r := mc.reg16(i)
			r.Load(alu.Inc(r.Value(), 16, &mc.Flags))
			return nil
		}
		mc.opcodes[0x48+i] = func() error {
			r := mc.reg16(i)
			r.Load(alu.Dec(r.Value(), 16, &mc.Flags))
			return nil
		}
		mc.opcodes[0x50+i] = func() error { return mc.push(mc.reg16(i).Value()) }
		mc.opcodes[0x58+i] = func() error {
			v, err := mc.pop()
			if err != nil {
				return err
			}
			mc.reg16(i).Load(v)
			return nil
		}
	}

	// 0x60 to 0x6f are reserved encodings; they stay NOPs

	// conditional jumps, in opcode order from 0x70
	conditions := []func() bool{
		func() bool { return mc.Flags.Overflow },                              // JO
		func() bool { return !mc.Flags.Overflow },                             // JNO
		func() bool { return mc.Flags.Carry },                                 // JC
		func() bool { return !mc.Flags.Carry },                                // JNC
		func() bool { return mc.Flags.Zero },                                  // JZ
		func() bool { return !mc.Flags.Zero },                                 // JNZ
		func() bool { return mc.Flags.Carry || mc.Flags.Zero },                // JNA
		func() bool { return !mc.Flags.Carry && !mc.Flags.Zero },              // JA
		func() bool { return mc.Flags.Sign },                                  // JS
		func() bool { return !mc.Flags.Sign },                                 // JNS
		func() bool { return mc.Flags.Parity },                                // JP
		func() bool { return !mc.Flags.Parity },                               // JNP
		func() bool { return mc.Flags.Sign != mc.Flags.Overflow },             // JL
		func() bool { return mc.Flags.Sign == mc.Flags.Overflow },             // JNL
		func() bool { return mc.Flags.Zero || mc.Flags.Sign != mc.Flags.Overflow },   // JLE
		func() bool { return !mc.Flags.Zero && mc.Flags.Sign == mc.Flags.Overflow }, // JG
	}

	for i, cond := range conditions {
		cond := cond
		mc.opcodes[0x70+uint8(i)] = func() error { return mc.opJumpRel8(cond) }
	}

	// immediate groups
	mc.opcodes[0x80] = func() error { return mc.opGroupImm(8, false) }
	mc.opcodes[0x81] = func() error { return mc.opGroupImm(16, false) }
	mc.opcodes[0x82] = func() error { return mc.opGroupImm(8, false) }
	mc.opcodes[0x83] = func() error { return mc.opGroupImm(16, true) }

	mc.opcodes[0x84] = func() error { return mc.opTestRMR() }
	mc.opcodes[0x85] = mc.opcodes[0x84]
	mc.opcodes[0x86] = func() error { return mc.opXchgRRM() }
	mc.opcodes[0x87] = mc.opcodes[0x86]
	mc.opcodes[0x88] = func() error { return mc.opMovRMR() }
	mc.opcodes[0x89] = mc.opcodes[0x88]
	mc.opcodes[0x8a] = func() error { return mc.opMovRRM() }
	mc.opcodes[0x8b] = mc.opcodes[0x8a]
	mc.opcodes[0x8c] = func() error { return mc.opGroupMovFromSeg() }
	mc.opcodes[0x8d] = func() error { return mc.opLea() }
	mc.opcodes[0x8e] = func() error { return mc.opGroupMovToSeg() }
	mc.opcodes[0x8f] = func() error { return mc.opGroupPopRM() }

	// XCHG AX with a 16 bit register. XCHG AX,AX (0x90) is the canonical
	// NOP and stays one
	for i := uint8(1); i < 8; i++ {
		i := i
		mc.opcodes[0x90+i] = func() error {
			r := mc.reg16(i)
			tmp := mc.A.Value()
			mc.A.Load(r.Value())
			r.Load(tmp)
			return nil
		}
	}

	mc.opcodes[0x98] = func() error { return mc.opCbw() }
	mc.opcodes[0x99] = func() error { return mc.opCwd() }
	mc.opcodes[0x9a] = func() error { return mc.opCallFar() }
	// 0x9b is WAIT; accepted and ignored
	mc.opcodes[0x9c] = func() error { return mc.push(mc.Flags.Value()) }
	mc.opcodes[0x9d] = func() error { return mc.opPopf() }
	mc.opcodes[0x9e] = func() error { return mc.opSahf() }
	mc.opcodes[0x9f] = func() error { return mc.opLahf() }

	mc.opcodes[0xa0] = func() error { return mc.opMovAccFromMoffs() }
	mc.opcodes[0xa1] = mc.opcodes[0xa0]
	mc.opcodes[0xa2] = func() error { return mc.opMovMoffsFromAcc() }
	mc.opcodes[0xa3] = mc.opcodes[0xa2]
	mc.opcodes[0xa4] = func() error { return mc.opMovs() }
	mc.opcodes[0xa5] = mc.opcodes[0xa4]
	mc.opcodes[0xa6] = func() error { return mc.opCmps() }
	mc.opcodes[0xa7] = mc.opcodes[0xa6]
	mc.opcodes[0xa8] = func() error { return mc.opTestAccImm() }
	mc.opcodes[0xa9] = mc.opcodes[0xa8]
	mc.opcodes[0xaa] = func() error { return mc.opStos() }
	mc.opcodes[0xab] = mc.opcodes[0xaa]
	mc.opcodes[0xac] = func() error { return mc.opLods() }
	mc.opcodes[0xad] = mc.opcodes[0xac]
	mc.opcodes[0xae] = func() error { return mc.opScas() }
	mc.opcodes[0xaf] = mc.opcodes[0xae]

	// MOV register, immediate
	for i := uint8(0); i < 8; i++ {
		i := i
		mc.opcodes[0xb0+i] = func() error {
			v, err := mc.fetch8()
			if err != nil {
				return err
			}
			mc.setReg(i, uint16(v), 8)
			return nil
		}
		mc.opcodes[0xb8+i] = func() error {
			v, err := mc.fetch16()
			if err != nil {
				return err
			}
			mc.reg16(i).Load(v)
			return nil
		}
	}

	// 0xc0, 0xc1, 0xc8 and 0xc9 are reserved encodings; they stay NOPs
	mc.opcodes[0xc2] = func() error { return mc.opRetImm() }
	mc.opcodes[0xc3] = func() error { return mc.opRet() }
	mc.opcodes[0xc4] = func() error { return mc.opLoadFarPointer(&mc.ES) }
	mc.opcodes[0xc5] = func() error { return mc.opLoadFarPointer(&mc.DS) }
	mc.opcodes[0xc6] = func() error { return mc.opGroupMovImm() }
	mc.opcodes[0xc7] = mc.opcodes[0xc6]
	mc.opcodes[0xca] = func() error { return mc.opRetfImm() }
	mc.opcodes[0xcb] = func() error { return mc.opRetf() }
	mc.opcodes[0xcc] = func() error { return mc.interrupt(3) }
	mc.opcodes[0xcd] = func() error { return mc.opIntImm() }
	mc.opcodes[0xce] = func() error { return mc.opInto() }
	mc.opcodes[0xcf] = func() error { return mc.opIret() }

	// shift and rotate groups
	mc.opcodes[0xd0] = func() error { return mc.opGroupShift(false) }
	mc.opcodes[0xd1] = mc.opcodes[0xd0]
	mc.opcodes[0xd2] = func() error { return mc.opGroupShift(true) }
	mc.opcodes[0xd3] = mc.opcodes[0xd2]
	mc.opcodes[0xd4] = func() error { return mc.opAam() }
	mc.opcodes[0xd5] = func() error { return mc.opAad() }
	// 0xd6 is reserved; 0xd8 to 0xdf are ESC (FPU) encodings. all stay NOPs
	mc.opcodes[0xd7] = func() error { return mc.opXlat() }

	mc.opcodes[0xe0] = func() error { return mc.opLoop(func() bool { return !mc.Flags.Zero }) }
	mc.opcodes[0xe1] = func() error { return mc.opLoop(func() bool { return mc.Flags.Zero }) }
	mc.opcodes[0xe2] = func() error { return mc.opLoop(func() bool { return true }) }
	mc.opcodes[0xe3] = func() error { return mc.opJcxz() }

	// IN/OUT with an immediate operand perform no I/O but must consume
	// the immediate byte to keep IP advancement correct
	discardImm := func() error {
		_, err := mc.fetch8()
		return err
	}
	mc.opcodes[0xe4] = discardImm
	mc.opcodes[0xe5] = discardImm
	mc.opcodes[0xe6] = discardImm
	mc.opcodes[0xe7] = discardImm

	mc.opcodes[0xe8] = func() error { return mc.opCallRel16() }
	mc.opcodes[0xe9] = func() error { return mc.opJmpRel16() }
	mc.opcodes[0xea] = func() error { return mc.opJmpFar() }
	mc.opcodes[0xeb] = func() error { return mc.opJmpRel8() }
	// 0xec to 0xef are the IN/OUT DX forms; accepted and ignored

	// 0xf0 is LOCK; accepted and ignored. 0xf1 is reserved
	mc.opcodes[0xf2] = func() error { mc.rep = repNotEqual; return nil }
	mc.opcodes[0xf3] = func() error { mc.rep = repEqual; return nil }
	mc.opcodes[0xf4] = func() error { mc.halted = true; return nil }
	mc.opcodes[0xf5] = func() error { mc.Flags.Carry = !mc.Flags.Carry; return nil }
	mc.opcodes[0xf6] = func() error { return mc.opGroupUnary() }
	mc.opcodes[0xf7] = mc.opcodes[0xf6]
	mc.opcodes[0xf8] = func() error { mc.Flags.Carry = false; return nil }
	mc.opcodes[0xf9] = func() error { mc.Flags.Carry = true; return nil }
	mc.opcodes[0xfa] = func() error { mc.Flags.Interrupt = false; return nil }
	mc.opcodes[0xfb] = func() error { mc.pendingInterruptEnable = true; return nil }
	mc.opcodes[0xfc] = func() error { mc.Flags.Direction = false; return nil }
	mc.opcodes[0xfd] = func() error { mc.Flags.Direction = true; return nil }
	mc.opcodes[0xfe] = func() error { return mc.opGroupIncDecByte() }
	mc.opcodes[0xff] = func() error { return mc.opGroupWordIndirect() }
}

func (mc *CPU) setOverride(segment uint16) {
	mc.pendingOverride = true
	mc.overrideSegment = segment
}

// op r/m, r
func (mc *CPU) opALURMR(op aluFunc, writeBack bool) error {
	if err := mc.fetchModRM(); err != nil {
		return err
	}
	if err := mc.calcEffectiveAddress(); err != nil {
		return err
	}

	a, err := mc.readRMOperand(mc.OperandSize)
	if err != nil {
		return err
	}

	result := op(a, mc.getReg(mc.Reg, mc.OperandSize), mc.OperandSize, &mc.Flags)

	if !writeBack {
		return nil
	}

	return mc.writeRMOperand(result, mc.OperandSize)
}

// op r, r/m
func (mc *CPU) opALURRM(op aluFunc, writeBack bool) error {
	if err := mc.fetchModRM(); err != nil {
		return err
	}
	if err := mc.calcEffectiveAddress(); err != nil {
		return err
	}

	b, err := mc.readRMOperand(mc.OperandSize)
	if err != nil {
		return err
	}

	result := op(mc.getReg(mc.Reg, mc.OperandSize), b, mc.OperandSize, &mc.Flags)

	if writeBack {
		mc.setReg(mc.Reg, result, mc.OperandSize)
	}

	return nil
}

// op AL/AX, imm
func (mc *CPU) opALUAccImm(op aluFunc, writeBack bool) error {
	v, err := mc.fetch(mc.OperandSize)
	if err != nil {
		return err
	}

	result := op(mc.getAccumulator(), v, mc.OperandSize, &mc.Flags)

	if writeBack {
		mc.setAccumulator(result)
	}

	return nil
}

func (mc *CPU) opPopSeg(sr *registers.Register) error {
	v, err := mc.pop()
	if err != nil {
		return err
	}
	sr.Load(v)
	return nil
}

func (mc *CPU) opJumpRel8(cond func() bool) error {
	offset, err := mc.fetch8()
	if err != nil {
		return err
	}

	if cond() {
		mc.IP.Add(uint16(int16(int8(offset))))
	}

	return nil
}

// TEST r/m, r
func (mc *CPU) opTestRMR() error {
	if err := mc.fetchModRM(); err != nil {
		return err
	}
	if err := mc.calcEffectiveAddress(); err != nil {
		return err
	}

	a, err := mc.readRMOperand(mc.OperandSize)
	if err != nil {
		return err
	}

	alu.And(a, mc.getReg(mc.Reg, mc.OperandSize), mc.OperandSize, &mc.Flags)

	return nil
}

// XCHG r, r/m
func (mc *CPU) opXchgRRM() error {
	if err := mc.fetchModRM(); err != nil {
		return err
	}
	if err := mc.calcEffectiveAddress(); err != nil {
		return err
	}

	tmp, err := mc.readRMOperand(mc.OperandSize)
	if err != nil {
		return err
	}

	regValue := mc.getReg(mc.Reg, mc.OperandSize)

	if mc.Mod != 3 {
		if err := mc.mem.Write(mc.EA, regValue, mc.seg, mc.OperandSize, false); err != nil {
			return err
		}
		mc.setReg(mc.Reg, tmp, mc.OperandSize)
		return nil
	}

	mc.setReg(mc.Rm, regValue, mc.OperandSize)
	mc.setReg(mc.Reg, tmp, mc.OperandSize)

	return nil
}

// MOV r/m, r
func (mc *CPU) opMovRMR() error {
	if err := mc.fetchModRM(); err != nil {
		return err
	}
	if err := mc.calcEffectiveAddress(); err != nil {
		return err
	}

	return mc.writeRMOperand(mc.getReg(mc.Reg, mc.OperandSize), mc.OperandSize)
}

// MOV r, r/m
func (mc *CPU) opMovRRM() error {
	if err := mc.fetchModRM(); err != nil {
		return err
	}
	if err := mc.calcEffectiveAddress(); err != nil {
		return err
	}

	v, err := mc.readRMOperand(mc.OperandSize)
	if err != nil {
		return err
	}

	mc.setReg(mc.Reg, v, mc.OperandSize)

	return nil
}

// LEA r16, m
func (mc *CPU) opLea() error {
	if err := mc.fetchModRM(); err != nil {
		return err
	}

	// Mod 3 is architecturally undefined for LEA; no operation is
	// performed
	if mc.Mod == 3 {
		return nil
	}

	if err := mc.calcEffectiveAddress(); err != nil {
		return err
	}

	mc.setReg(mc.Reg, mc.EA, 16)

	return nil
}

// CBW sign extends AL into AH.
func (mc *CPU) opCbw() error {
	if mc.A.Low()&0x80 == 0x80 {
		mc.A.SetHigh(0xff)
	} else {
		mc.A.SetHigh(0x00)
	}
	return nil
}

// CWD sign extends AX into DX.
func (mc *CPU) opCwd() error {
	if mc.A.High()&0x80 == 0x80 {
		mc.D.Load(0xffff)
	} else {
		mc.D.Load(0x0000)
	}
	return nil
}

// CALL seg:addr
func (mc *CPU) opCallFar() error {
	addr, err := mc.fetch16()
	if err != nil {
		return err
	}
	segment, err := mc.fetch16()
	if err != nil {
		return err
	}

	if err := mc.push(mc.CS.Value()); err != nil {
		return err
	}
	if err := mc.push(mc.IP.Value()); err != nil {
		return err
	}

	mc.IP.Load(addr)
	mc.CS.Load(segment)

	return nil
}

func (mc *CPU) opPopf() error {
	v, err := mc.pop()
	if err != nil {
		return err
	}
	mc.Flags.SetValue(v)
	return nil
}

// SAHF stores AH into the low byte of the packed flags.
func (mc *CPU) opSahf() error {
	mc.Flags.SetValue((mc.Flags.Value() & 0xff00) | uint16(mc.A.High()))
	return nil
}

// LAHF loads AH from the low byte of the packed flags.
func (mc *CPU) opLahf() error {
	mc.A.SetHigh(uint8(mc.Flags.Value()))
	return nil
}

// MOV AL/AX, [moffs16]
func (mc *CPU) opMovAccFromMoffs() error {
	addr, err := mc.fetch16()
	if err != nil {
		return err
	}

	v, err := mc.mem.Read(addr, mc.DS.Value(), mc.OperandSize, false)
	if err != nil {
		return err
	}

	mc.setAccumulator(v)

	return nil
}

// MOV [moffs16], AL/AX
func (mc *CPU) opMovMoffsFromAcc() error {
	addr, err := mc.fetch16()
	if err != nil {
		return err
	}

	return mc.mem.Write(addr, mc.getAccumulator(), mc.DS.Value(), mc.OperandSize, false)
}

// MOVS copies DS:SI to ES:DI and advances both indexes.
func (mc *CPU) opMovs() error {
	v, err := mc.mem.Read(mc.SI.Value(), mc.DS.Value(), mc.OperandSize, false)
	if err != nil {
		return err
	}

	if err := mc.mem.Write(mc.DI.Value(), v, mc.ES.Value(), mc.OperandSize, false); err != nil {
		return err
	}

	step := mc.stringStep()
	mc.SI.Add(step)
	mc.DI.Add(step)

	return nil
}

// CMPS compares DS:SI with ES:DI and advances both indexes.
func (mc *CPU) opCmps() error {
	a, err := mc.mem.Read(mc.SI.Value(), mc.DS.Value(), mc.OperandSize, false)
	if err != nil {
		return err
	}

	b, err := mc.mem.Read(mc.DI.Value(), mc.ES.Value(), mc.OperandSize, false)
	if err != nil {
		return err
	}

	alu.Sub(a, b, mc.OperandSize, &mc.Flags)

	step := mc.stringStep()
	mc.SI.Add(step)
	mc.DI.Add(step)

	return nil
}

// TEST AL/AX, imm
func (mc *CPU) opTestAccImm() error {
	v, err := mc.fetch(mc.OperandSize)
	if err != nil {
		return err
	}

	alu.And(mc.getAccumulator(), v, mc.OperandSize, &mc.Flags)

	return nil
}

// STOS stores the accumulator at ES:DI and advances DI.
func (mc *CPU) opStos() error {
	if err := mc.mem.Write(mc.DI.Value(), mc.getAccumulator(), mc.ES.Value(), mc.OperandSize, false); err != nil {
		return err
	}

	mc.DI.Add(mc.stringStep())

	return nil
}

// LODS loads the accumulator from DS:SI and advances SI.
func (mc *CPU) opLods() error {
	v, err := mc.mem.Read(mc.SI.Value(), mc.DS.Value(), mc.OperandSize, false)
	if err != nil {
		return err
	}

	mc.setAccumulator(v)
	mc.SI.Add(mc.stringStep())

	return nil
}

// SCAS compares ES:DI with the accumulator and advances DI.
func (mc *CPU) opScas() error {
	v, err := mc.mem.Read(mc.DI.Value(), mc.ES.Value(), mc.OperandSize, false)
	if err != nil {
		return err
	}

	alu.Sub(v, mc.getAccumulator(), mc.OperandSize, &mc.Flags)

	mc.DI.Add(mc.stringStep())

	return nil
}

// RET imm16
func (mc *CPU) opRetImm() error {
	offset, err := mc.fetch16()
	if err != nil {
		return err
	}

	v, err := mc.pop()
	if err != nil {
		return err
	}

	mc.IP.Load(v)
	mc.SP.Add(offset)

	return nil
}

// RET
func (mc *CPU) opRet() error {
	v, err := mc.pop()
	if err != nil {
		return err
	}

	mc.IP.Load(v)

	return nil
}

// LES/LDS r16, m16:16
func (mc *CPU) opLoadFarPointer(sr *registers.Register) error {
	if err := mc.fetchModRM(); err != nil {
		return err
	}
	if err := mc.calcEffectiveAddress(); err != nil {
		return err
	}

	v, err := mc.mem.Read(mc.EA, mc.seg, 16, false)
	if err != nil {
		return err
	}
	mc.setReg(mc.Reg, v, 16)

	s, err := mc.mem.Read(mc.EA+2, mc.seg, 16, false)
	if err != nil {
		return err
	}
	sr.Load(s)

	return nil
}

// RETF imm16
func (mc *CPU) opRetfImm() error {
	offset, err := mc.fetch16()
	if err != nil {
		return err
	}

	if err := mc.opRetf(); err != nil {
		return err
	}

	mc.SP.Add(offset)

	return nil
}

// RETF
func (mc *CPU) opRetf() error {
	ip, err := mc.pop()
	if err != nil {
		return err
	}

	cs, err := mc.pop()
	if err != nil {
		return err
	}

	mc.IP.Load(ip)
	mc.CS.Load(cs)

	return nil
}

// INT imm8
func (mc *CPU) opIntImm() error {
	vector, err := mc.fetch8()
	if err != nil {
		return err
	}

	return mc.interrupt(vector)
}

// INTO raises interrupt 4 when the overflow flag is set.
func (mc *CPU) opInto() error {
	if mc.Flags.Overflow {
		return mc.interrupt(4)
	}
	return nil
}

// IRET
func (mc *CPU) opIret() error {
	if err := mc.opRetf(); err != nil {
		return err
	}
	return mc.opPopf()
}

// AAM divides AL by the base operand, leaving the quotient in AH and the
// remainder in AL. A zero base raises the divide-error interrupt.
func (mc *CPU) opAam() error {
	base, err := mc.fetch8()
	if err != nil {
		return err
	}

	if base == 0 {
		return mc.interrupt(0)
	}

	al := mc.A.Low()
	mc.A.SetHigh(al / base)
	mc.A.SetLow(al % base)

	mc.Flags.CheckParity(mc.A.Low())
	mc.Flags.CheckZero(uint32(mc.A.Low()), 8)
	mc.Flags.CheckSign(uint32(mc.A.Low()), 8)

	return nil
}

// AAD folds AH into AL using the base operand and clears AH.
func (mc *CPU) opAad() error {
	base, err := mc.fetch8()
	if err != nil {
		return err
	}

	al := mc.A.High()*base + mc.A.Low()
	mc.A.SetLow(al)
	mc.A.SetHigh(0)

	mc.Flags.CheckParity(mc.A.Low())
	mc.Flags.CheckZero(uint32(mc.A.Low()), 8)
	mc.Flags.CheckSign(uint32(mc.A.Low()), 8)

	return nil
}

// XLAT replaces AL with the byte at DS:[BX+AL].
func (mc *CPU) opXlat() error {
	offset := mc.B.Value() + uint16(mc.A.Low())

	v, err := mc.mem.Read(offset, mc.DS.Value(), 8, false)
	if err != nil {
		return err
	}

	mc.A.SetLow(uint8(v))

	return nil
}

// LOOP/LOOPE/LOOPNE decrement CX and jump while CX is non-zero and the
// condition holds.
func (mc *CPU) opLoop(cond func() bool) error {
	offset, err := mc.fetch8()
	if err != nil {
		return err
	}

	mc.C.Load(mc.C.Value() - 1)

	if mc.C.Value() != 0 && cond() {
		mc.IP.Add(uint16(int16(int8(offset))))
	}

	return nil
}

// JCXZ jumps when CX is zero. CX is not decremented.
func (mc *CPU) opJcxz() error {
	offset, err := mc.fetch8()
	if err != nil {
		return err
	}

	if mc.C.Value() == 0 {
		mc.IP.Add(uint16(int16(int8(offset))))
	}

	return nil
}

// CALL rel16
func (mc *CPU) opCallRel16() error {
	offset, err := mc.fetch16()
	if err != nil {
		return err
	}

	if err := mc.push(mc.IP.Value()); err != nil {
		return err
	}

	mc.IP.Add(offset)

	return nil
}

// JMP rel16
func (mc *CPU) opJmpRel16() error {
	offset, err := mc.fetch16()
	if err != nil {
		return err
	}

	mc.IP.Add(offset)

	return nil
}

// JMP seg:addr
func (mc *CPU) opJmpFar() error {
	addr, err := mc.fetch16()
	if err != nil {
		return err
	}

	segment, err := mc.fetch16()
	if err != nil {
		return err
	}

	mc.IP.Load(addr)
	mc.CS.Load(segment)

	return nil
}

// JMP rel8
func (mc *CPU) opJmpRel8() error {
	offset, err := mc.fetch8()
	if err != nil {
		return err
	}

	mc.IP.Add(uint16(int16(int8(offset))))

	return nil
}
