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

// Package cpu implements the 8086 execution core: instruction fetch,
// decode through a 256 entry opcode table, effective address resolution
// and the prefix machinery (segment override and REP).
package cpu

import (
	"fmt"

	"github.com/MateusDuartee/i86emu/hardware/cpu/registers"
	"github.com/MateusDuartee/i86emu/hardware/memory"
)

// repKind records a pending REP prefix. The prefix decides the Z flag
// condition that stops a CMPS or SCAS loop early.
type repKind int

const (
	repNone repKind = iota
	repEqual
	repNotEqual
)

// CPU implements the Intel 8086. Register logic is implemented by the
// Register and Flags types in the registers sub-package.
type CPU struct {
	mem *memory.Bus

	IP registers.Register

	// general purpose registers
	A registers.Register
	B registers.Register
	C registers.Register
	D registers.Register

	SP registers.Register
	BP registers.Register
	SI registers.Register
	DI registers.Register

	// segment registers
	CS registers.Register
	DS registers.Register
	SS registers.Register
	ES registers.Register

	Flags registers.Flags

	// scratch state for the instruction being executed. reset implicitly
	// by each opcode handler
	OperandSize uint
	Mod         uint8
	Reg         uint8
	Rm          uint8
	EA          uint16

	// segment value used by the current effective address
	seg uint16

	// sticky prefix state. consumed by the next instruction
	pendingOverride bool
	overrideSegment uint16
	rep             repKind

	// the interrupt enable posted by STI materialises after the current
	// batch of instructions
	pendingInterruptEnable bool

	halted bool

	breakpoints map[uint32]struct{}

	opcodes [256]func() error
}

// NewCPU is the preferred method of initialisation for the CPU structure.
// All registers and flags start at zero except SP which holds 0xfffe.
func NewCPU(mem *memory.Bus) *CPU {
	mc := &CPU{
		mem:         mem,
		IP:          registers.NewRegister(0, "IP"),
		A:           registers.NewRegister(0, "AX"),
		B:           registers.NewRegister(0, "BX"),
		C:           registers.NewRegister(0, "CX"),
		D:           registers.NewRegister(0, "DX"),
		SP:          registers.NewRegister(0xfffe, "SP"),
		BP:          registers.NewRegister(0, "BP"),
		SI:          registers.NewRegister(0, "SI"),
		DI:          registers.NewRegister(0, "DI"),
		CS:          registers.NewRegister(0, "CS"),
		DS:          registers.NewRegister(0, "DS"),
		SS:          registers.NewRegister(0, "SS"),
		ES:          registers.NewRegister(0, "ES"),
		Flags:       registers.NewFlags(),
		breakpoints: make(map[uint32]struct{}),
	}

	mc.buildOpcodeTable()

	return mc
}

func (mc *CPU) String() string {
	return fmt.Sprintf("%s %s %s %s %s %s %s %s %s %s %s %s %s %s=%s",
		mc.IP, mc.A, mc.B, mc.C, mc.D,
		mc.SP, mc.BP, mc.SI, mc.DI,
		mc.CS, mc.DS, mc.SS, mc.ES,
		mc.Flags.Label(), mc.Flags)
}

// Halted returns true if the CPU has executed a HLT instruction and no
// interrupt has woken it since.
func (mc *CPU) Halted() bool {
	return mc.halted
}

// Cycles performs count fetch-decode-execute cycles. A halted CPU
// executes nothing. An interrupt enable posted by STI during the batch
// materialises after the batch completes.
func (mc *CPU) Cycles(count int) error {
	if !mc.halted {
		if err := mc.executeInstructions(count); err != nil {
			return err
		}
	}

	if mc.pendingInterruptEnable {
		mc.Flags.Interrupt = true
		mc.pendingInterruptEnable = false
	}

	return nil
}

// Interrupt delivers an interrupt from outside the instruction stream. A
// halted CPU resumes running.
func (mc *CPU) Interrupt(vector uint8) error {
	return mc.interrupt(vector)
}

func (mc *CPU) executeInstructions(count int) error {
	for i := 0; i < count && !mc.halted; i++ {
		opcode, err := mc.fetch8()
		if err != nil {
			return err
		}

		mc.OperandSize = 8 + 8*uint(opcode&1)

		if err := mc.opcodes[opcode](); err != nil {
			return err
		}

		if mc.rep != repNone {
			if err := mc.handleRep(); err != nil {
				return err
			}
		}
	}

	return nil
}

// handleRep runs the REP loop for the opcode following the prefix. The
// opcode is fetched once; the loop repeats it, decrementing CX each
// iteration. CMPS and SCAS opcodes additionally stop on the prefix's Z
// flag condition.
func (mc *CPU) handleRep() error {
	opcode, err := mc.fetch8()
	if err != nil {
		return err
	}

	mc.OperandSize = 8 + 8*uint(opcode&1)

	masked := opcode & 0xfe
	useZStop := masked == 0xa6 || masked == 0xae
	zStop := mc.rep == repNotEqual

	for mc.C.Value() != 0 {
		if err := mc.opcodes[opcode](); err != nil {
			return err
		}

		mc.C.Load(mc.C.Value() - 1)

		if useZStop && mc.Flags.Zero == zStop {
			break
		}
	}

	mc.rep = repNone

	return nil
}

// fetch the next byte or word at CS:IP, advancing IP.
func (mc *CPU) fetch(size uint) (uint16, error) {
	v, err := mc.mem.Read(mc.IP.Value(), mc.CS.Value(), size, false)
	if err != nil {
		return 0, err
	}

	mc.IP.Add(uint16(size / 8))

	return v, nil
}

func (mc *CPU) fetch8() (uint8, error) {
	v, err := mc.fetch(8)
	return uint8(v), err
}

func (mc *CPU) fetch16() (uint16, error) {
	return mc.fetch(16)
}

// fetchModRM splits the post-opcode byte into the Mod, Reg and Rm fields.
func (mc *CPU) fetchModRM() error {
	v, err := mc.fetch8()
	if err != nil {
		return err
	}

	mc.Mod = (v & 0xc0) >> 6
	mc.Reg = (v & 0x38) >> 3
	mc.Rm = v & 0x07

	return nil
}

// calcEffectiveAddress computes EA and the implicit segment for the
// current Mod/Rm fields, consuming any displacement bytes. A pending
// segment override replaces the segment only for addressing modes whose
// default is DS; it is cleared either way.
func (mc *CPU) calcEffectiveAddress() error {
	if mc.Mod == 0 && mc.Rm == 6 {
		ea, err := mc.fetch16()
		if err != nil {
			return err
		}

		mc.EA = ea
		mc.seg = mc.DS.Value()
		mc.applyOverride(true)

		return nil
	}

	if mc.Mod == 3 {
		// register-direct; EA is unused
		mc.seg = mc.DS.Value()
		mc.applyOverride(true)

		return nil
	}

	switch mc.Rm {
	case 0:
		mc.EA = mc.B.Value() + mc.SI.Value()
		mc.seg = mc.DS.Value()
		mc.applyOverride(true)
	case 1:
		mc.EA = mc.B.Value() + mc.DI.Value()
		mc.seg = mc.DS.Value()
		mc.applyOverride(true)
	case 2:
		mc.EA = mc.BP.Value() + mc.SI.Value()
		mc.seg = mc.SS.Value()
		mc.applyOverride(false)
	case 3:
		mc.EA = mc.BP.Value() + mc.DI.Value()
		mc.seg = mc.SS.Value()
		mc.applyOverride(false)
	case 4:
		mc.EA = mc.SI.Value()
		mc.seg = mc.DS.Value()
		mc.applyOverride(true)
	case 5:
		mc.EA = mc.DI.Value()
		mc.seg = mc.DS.Value()
		mc.applyOverride(true)
	case 6:
		mc.EA = mc.BP.Value()
		mc.seg = mc.SS.Value()
		mc.applyOverride(false)
	case 7:
		mc.EA = mc.B.Value()
		mc.seg = mc.DS.Value()
		mc.applyOverride(true)
	}

	if mc.Mod == 1 {
		d, err := mc.fetch8()
		if err != nil {
			return err
		}
		mc.EA += uint16(int16(int8(d)))
	} else if mc.Mod == 2 {
		d, err := mc.fetch16()
		if err != nil {
			return err
		}
		mc.EA += d
	}

	return nil
}

// applyOverride consumes a pending segment override. BP based addressing
// modes keep their SS default but still clear the override.
func (mc *CPU) applyOverride(dsDefault bool) {
	if mc.pendingOverride {
		if dsDefault {
			mc.seg = mc.overrideSegment
		}
		mc.pendingOverride = false
	}
}

// reg16 returns the 16 bit register selected by a three bit register
// field.
func (mc *CPU) reg16(reg uint8) *registers.Register {
	switch reg & 0x07 {
	case 0:
		return &mc.A
	case 1:
		return &mc.C
	case 2:
		return &mc.D
	case 3:
		return &mc.B
	case 4:
		return &mc.SP
	case 5:
		return &mc.BP
	case 6:
		return &mc.SI
	}
	return &mc.DI
}

// segReg returns the segment register selected by a two bit register
// field.
func (mc *CPU) segReg(reg uint8) *registers.Register {
	switch reg & 0x03 {
	case 0:
		return &mc.ES
	case 1:
		return &mc.CS
	case 2:
		return &mc.SS
	}
	return &mc.DS
}

// getReg reads a register selected by a three bit register field. At a
// size of 8 the field selects AL, CL, DL, BL, AH, CH, DH or BH.
func (mc *CPU) getReg(reg uint8, size uint) uint16 {
	if size == 8 {
		r := mc.reg16(reg & 0x03)
		if reg < 4 {
			return uint16(r.Low())
		}
		return uint16(r.High())
	}

	return mc.reg16(reg).Value()
}

// setReg writes a register selected by a three bit register field.
func (mc *CPU) setReg(reg uint8, value uint16, size uint) {
	if size == 8 {
		r := mc.reg16(reg & 0x03)
		if reg < 4 {
			r.SetLow(uint8(value))
		} else {
			r.SetHigh(uint8(value))
		}
		return
	}

	mc.reg16(reg).Load(value)
}

// readRMOperand reads the operand selected by the current ModR/M fields:
// a register when Mod is 3, memory at the effective address otherwise.
func (mc *CPU) readRMOperand(size uint) (uint16, error) {
	if mc.Mod == 3 {
		return mc.getReg(mc.Rm, size), nil
	}

	return mc.mem.Read(mc.EA, mc.seg, size, false)
}

// writeRMOperand writes the operand selected by the current ModR/M
// fields.
func (mc *CPU) writeRMOperand(data uint16, size uint) error {
	if mc.Mod == 3 {
		mc.setReg(mc.Rm, data, size)
		return nil
	}

	return mc.mem.Write(mc.EA, data, mc.seg, size, false)
}

// accumulator read/write honouring the current operand size.
func (mc *CPU) getAccumulator() uint16 {
	if mc.OperandSize == 8 {
		return uint16(mc.A.Low())
	}
	return mc.A.Value()
}

func (mc *CPU) setAccumulator(v uint16) {
	if mc.OperandSize == 8 {
		mc.A.SetLow(uint8(v))
		return
	}
	mc.A.Load(v)
}

// stringStep returns the index adjustment for string instructions: the
// operand width, negated when the direction flag is set.
func (mc *CPU) stringStep() uint16 {
	step := uint16(mc.OperandSize / 8)
	if mc.Flags.Direction {
		return -step
	}
	return step
}
