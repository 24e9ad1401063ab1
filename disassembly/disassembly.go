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

// Package disassembly is the static disassembler. It consumes the same
// byte stream as the CPU through byte-level bus reads but never mutates
// CPU state. The instruction tables mirror the executor's opcode space;
// byte consumption per instruction equals what the executor would consume
// at the same address.
package disassembly

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MateusDuartee/i86emu/hardware/memory"
)

// Entry is one disassembled instruction.
type Entry struct {
	Address    uint32
	Bytes      []byte
	Tokens     []Token
	Breakpoint bool
}

// String reconstructs the instruction text from its tokens.
func (e Entry) String() string {
	s := strings.Builder{}
	for _, tok := range e.Tokens {
		s.WriteString(tok.Text)
		if tok.TrailingSpace {
			s.WriteString(" ")
		}
	}
	return strings.TrimRight(s.String(), " ")
}

// BreakpointQuery answers whether an address holds a breakpoint. The CPU
// satisfies this interface.
type BreakpointQuery interface {
	HasBreakpoint(address uint32) bool
}

// Disassembly decodes memory into a list of Entry records. The entry list
// is fully rebuilt on every call to Disassemble().
type Disassembly struct {
	mem *memory.Bus

	// Breakpoints marks entries whose address is in the set. May be nil.
	Breakpoints BreakpointQuery

	entries  []Entry
	maxBytes int

	// decode state. ip is the physical address being decoded, not the
	// CPU's instruction pointer
	ip  uint32
	cur *Entry

	mod uint8
	reg uint8
	rm  uint8
}

// NewDisassembly is the preferred method of initialisation for the
// Disassembly type.
func NewDisassembly(mem *memory.Bus) *Disassembly {
	return &Disassembly{mem: mem}
}

// Disassemble decodes instructions from the start address until the end
// address is reached. Decoding of a partial instruction at the end
// address is undefined; callers should not rely on exact end alignment.
func (dsm *Disassembly) Disassemble(start uint32, end uint32) error {
	dsm.ip = start
	dsm.maxBytes = 0

	capacity := 0
	if end > start {
		capacity = int(end - start)
	}
	dsm.entries = make([]Entry, 0, capacity)

	for dsm.ip < end {
		e := Entry{Address: dsm.ip}
		dsm.cur = &e

		opcode, err := dsm.fetch()
		if err != nil {
			return err
		}

		line, err := dsm.decode(opcode)
		if err != nil {
			return err
		}

		e.Tokens = tokenize(line)

		if dsm.Breakpoints != nil {
			e.Breakpoint = dsm.Breakpoints.HasBreakpoint(e.Address)
		}

		if len(e.Bytes) > dsm.maxBytes {
			dsm.maxBytes = len(e.Bytes)
		}

		dsm.entries = append(dsm.entries, e)
	}

	dsm.cur = nil

	return nil
}

// Count returns the number of entries produced by the last Disassemble().
func (dsm *Disassembly) Count() int {
	return len(dsm.entries)
}

// Entry returns the ith entry of the last Disassemble().
func (dsm *Disassembly) Entry(i int) Entry {
	return dsm.entries[i]
}

// MaxByteCount returns the largest byte length observed across the last
// Disassemble(). The view uses it for column alignment.
func (dsm *Disassembly) MaxByteCount() int {
	return dsm.maxBytes
}

// fetch one byte at the decode address, recording it against the current
// entry.
func (dsm *Disassembly) fetch() (uint8, error) {
	v, err := dsm.mem.Read(uint16(dsm.ip), 0x0000, 8, false)
	if err != nil {
		return 0, err
	}

	dsm.cur.Bytes = append(dsm.cur.Bytes, uint8(v))
	dsm.ip++

	return uint8(v), nil
}

func (dsm *Disassembly) fetch16() (uint16, error) {
	lo, err := dsm.fetch()
	if err != nil {
		return 0, err
	}

	hi, err := dsm.fetch()
	if err != nil {
		return 0, err
	}

	return uint16(hi)<<8 | uint16(lo), nil
}

// decode one instruction into its formatted line. Group opcodes are
// resolved through the second-stage table using the Reg subfield.
func (dsm *Disassembly) decode(opcode uint8) (string, error) {
	entry := primaryTable[opcode]

	if entry.modRM {
		v, err := dsm.fetch()
		if err != nil {
			return "", err
		}

		dsm.mod = (v & 0xc0) >> 6
		dsm.reg = (v & 0x38) >> 3
		dsm.rm = v & 0x07
	}

	if g, ok := groupIndex(opcode); ok {
		entry = groupTable[g*8+int(dsm.reg)]
	}

	return dsm.expandInstr(entry)
}

// expandInstr renders both operands and substitutes them into the
// mnemonic template.
func (dsm *Disassembly) expandInstr(in instr) (string, error) {
	op1, err := dsm.renderOperand(in.op1)
	if err != nil {
		return "", err
	}

	op2, err := dsm.renderOperand(in.op2)
	if err != nil {
		return "", err
	}

	line := strings.Replace(in.template, "{}", op1, 1)
	line = strings.Replace(line, "{}", op2, 1)

	return line, nil
}

func (dsm *Disassembly) renderOperand(kind operand) (string, error) {
	switch kind {
	case none, implied:
		return "", nil

	case rel8:
		v, err := dsm.fetch()
		if err != nil {
			return "", err
		}
		return strconv.Itoa(int(int8(v))), nil

	case se8:
		v, err := dsm.fetch()
		if err != nil {
			return "", err
		}
		return strconv.Itoa(int(int16(int8(v)))), nil

	case i8:
		v, err := dsm.fetch()
		if err != nil {
			return "", err
		}
		return strconv.Itoa(int(v)), nil

	case i16:
		v, err := dsm.fetch16()
		if err != nil {
			return "", err
		}
		return strconv.Itoa(int(v)), nil

	case rm8:
		if dsm.mod == 3 {
			return modrmTable[3][dsm.rm], nil
		}
		s, err := dsm.rmAddressOperand()
		if err != nil {
			return "", err
		}
		return "BYTE PTR " + s, nil

	case rm16:
		if dsm.mod == 3 {
			return modrmTable[4][dsm.rm], nil
		}
		s, err := dsm.rmAddressOperand()
		if err != nil {
			return "", err
		}
		return "WORD PTR " + s, nil

	case r8:
		return modrmTable[3][dsm.reg], nil

	case r16:
		return modrmTable[4][dsm.reg], nil

	case addr:
		v, err := dsm.fetch16()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("0x%04X", v), nil

	case segAddr:
		offset, err := dsm.fetch16()
		if err != nil {
			return "", err
		}
		segment, err := dsm.fetch16()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("0x%04X:0x%04X", segment, offset), nil
	}

	return "", nil
}

// rmAddressOperand renders the memory operand for the current Mod and Rm
// fields, consuming displacement bytes as needed.
func (dsm *Disassembly) rmAddressOperand() (string, error) {
	switch dsm.mod {
	case 0:
		if dsm.rm != 6 {
			return modrmTable[0][dsm.rm], nil
		}
		v, err := dsm.fetch16()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(modrmTable[0][6], v), nil

	case 1:
		v, err := dsm.fetch()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(modrmTable[1][dsm.rm], int8(v)), nil

	case 2:
		v, err := dsm.fetch16()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(modrmTable[2][dsm.rm], v), nil
	}

	return "", nil
}
