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

package disassembly_test

import (
	"testing"

	"github.com/MateusDuartee/i86emu/disassembly"
	"github.com/MateusDuartee/i86emu/hardware/cpu"
	"github.com/MateusDuartee/i86emu/hardware/memory"
	"github.com/MateusDuartee/i86emu/hardware/memory/ram"
	"github.com/MateusDuartee/i86emu/test"
)

func newTestBus(t *testing.T) *memory.Bus {
	t.Helper()

	b := memory.NewBus()
	if err := b.AttachDevice(ram.NewRAM(0x100000), 0x00000, 0xfffff); err != nil {
		t.Fatal(err)
	}

	return b
}

func poke(t *testing.T, b *memory.Bus, origin uint16, bytes ...uint8) {
	t.Helper()
	for i, v := range bytes {
		if err := b.Write(origin+uint16(i), uint16(v), 0, 8, false); err != nil {
			t.Fatal(err)
		}
	}
}

// S6: disassembly round trip of two instructions.
func TestRoundTrip(t *testing.T) {
	b := newTestBus(t)
	poke(t, b, 0, 0xb8, 0x34, 0x12, 0x05, 0x01, 0x00) // MOV AX, 0x1234; ADD AX, 1

	dsm := disassembly.NewDisassembly(b)
	test.ExpectedSuccess(t, dsm.Disassemble(0, 6))

	test.Equate(t, dsm.Count(), 2)

	e := dsm.Entry(0)
	test.Equate(t, e.String(), "MOV AX, 4660")
	test.Equate(t, e.Address, uint32(0))
	test.Equate(t, len(e.Bytes), 3)
	test.Equate(t, e.Bytes[0], 0xb8)

	e = dsm.Entry(1)
	test.Equate(t, e.String(), "ADD AX, 1")
	test.Equate(t, e.Address, uint32(3))
	test.Equate(t, len(e.Bytes), 3)

	test.Equate(t, dsm.MaxByteCount(), 3)
}

func TestTokenClassification(t *testing.T) {
	b := newTestBus(t)
	poke(t, b, 0, 0xb8, 0x34, 0x12) // MOV AX, 4660

	dsm := disassembly.NewDisassembly(b)
	test.ExpectedSuccess(t, dsm.Disassemble(0, 3))

	tokens := dsm.Entry(0).Tokens
	test.Equate(t, len(tokens), 4)

	test.Equate(t, tokens[0].Text, "MOV")
	test.Equate(t, tokens[0].Type.String(), "Keyword")
	test.Equate(t, tokens[0].TrailingSpace, true)

	test.Equate(t, tokens[1].Text, "AX")
	test.Equate(t, tokens[1].Type.String(), "Register")
	test.Equate(t, tokens[1].TrailingSpace, false)

	test.Equate(t, tokens[2].Text, ",")
	test.Equate(t, tokens[2].Type.String(), "Comma")
	test.Equate(t, tokens[2].TrailingSpace, true)

	test.Equate(t, tokens[3].Text, "4660")
	test.Equate(t, tokens[3].Type.String(), "Number")
}

func TestMemoryOperandRendering(t *testing.T) {
	b := newTestBus(t)

	// MOV AL, [BX+SI]; MOV AL, [BP-1]; MOV AL, [BX+SI+0x1234]; MOV AL, [0x0400]
	poke(t, b, 0,
		0x8a, 0x00,
		0x8a, 0x46, 0xff,
		0x8a, 0x80, 0x34, 0x12,
		0x8a, 0x06, 0x00, 0x04,
	)

	dsm := disassembly.NewDisassembly(b)
	test.ExpectedSuccess(t, dsm.Disassemble(0, 13))
	test.Equate(t, dsm.Count(), 4)

	// reconstruction from tokens drops the spacing inside brackets
	test.Equate(t, dsm.Entry(0).String(), "MOV AL, BYTE PTR [BX+SI]")
	test.Equate(t, dsm.Entry(1).String(), "MOV AL, BYTE PTR [BP-1]")
	test.Equate(t, dsm.Entry(2).String(), "MOV AL, BYTE PTR [BX+SI+0x1234]")
	test.Equate(t, dsm.Entry(3).String(), "MOV AL, BYTE PTR [0x0400]")
}

func TestGroupRendering(t *testing.T) {
	b := newTestBus(t)

	// ADD BYTE PTR [BX], 5; CMP WORD PTR [BX], 0x1234; SHR AL, 1;
	// NOT CX; INC BYTE PTR [BX]; PUSH DX
	poke(t, b, 0,
		0x80, 0x07, 0x05,
		0x81, 0x3f, 0x34, 0x12,
		0xd0, 0xe8,
		0xf7, 0xd1,
		0xfe, 0x07,
		0xff, 0xf2,
	)

	dsm := disassembly.NewDisassembly(b)
	test.ExpectedSuccess(t, dsm.Disassemble(0, 15))
	test.Equate(t, dsm.Count(), 6)

	test.Equate(t, dsm.Entry(0).String(), "ADD BYTE PTR [BX], 5")
	test.Equate(t, dsm.Entry(1).String(), "CMP WORD PTR [BX], 4660")
	test.Equate(t, dsm.Entry(2).String(), "SHR AL, 1")
	test.Equate(t, dsm.Entry(3).String(), "NOT CX")
	test.Equate(t, dsm.Entry(4).String(), "INC BYTE PTR [BX]")
	test.Equate(t, dsm.Entry(5).String(), "PUSH DX")
}

func TestRelativeAndFarOperands(t *testing.T) {
	b := newTestBus(t)

	// JZ -2; JMP 0x2000:0x0100; INT 0x21; CALL FAR through memory
	poke(t, b, 0,
		0x74, 0xfe,
		0xea, 0x00, 0x01, 0x00, 0x20,
		0xcd, 0x21,
		0xff, 0x1f,
	)

	dsm := disassembly.NewDisassembly(b)
	test.ExpectedSuccess(t, dsm.Disassemble(0, 11))
	test.Equate(t, dsm.Count(), 4)

	test.Equate(t, dsm.Entry(0).String(), "JZ -2")
	test.Equate(t, dsm.Entry(1).String(), "JMP 0x2000:0x0100")
	test.Equate(t, dsm.Entry(2).String(), "INT 33")
	test.Equate(t, dsm.Entry(3).String(), "CALL FAR WORD PTR [BX]")
}

func TestPrefixesDecodeAlone(t *testing.T) {
	b := newTestBus(t)

	poke(t, b, 0, 0x26, 0x8a, 0x07, 0xf3, 0xa4) // ES: MOV AL,[BX]; REP MOVSB

	dsm := disassembly.NewDisassembly(b)
	test.ExpectedSuccess(t, dsm.Disassemble(0, 5))
	test.Equate(t, dsm.Count(), 4)

	test.Equate(t, dsm.Entry(0).String(), "ES:")
	test.Equate(t, dsm.Entry(1).String(), "MOV AL, BYTE PTR [BX]")
	test.Equate(t, dsm.Entry(2).String(), "REP")
	test.Equate(t, dsm.Entry(3).String(), "MOVSB")
}

func TestBreakpointMarking(t *testing.T) {
	b := newTestBus(t)
	poke(t, b, 0, 0x90, 0x90, 0x90)

	mc := cpu.NewCPU(b)
	mc.SetBreakpoint(0x0001, true)

	dsm := disassembly.NewDisassembly(b)
	dsm.Breakpoints = mc

	test.ExpectedSuccess(t, dsm.Disassemble(0, 3))
	test.Equate(t, dsm.Entry(0).Breakpoint, false)
	test.Equate(t, dsm.Entry(1).Breakpoint, true)
	test.Equate(t, dsm.Entry(2).Breakpoint, false)
}

func TestParseTokenType(t *testing.T) {
	for _, k := range []disassembly.TokenType{
		disassembly.TokenUnknown,
		disassembly.TokenKeyword,
		disassembly.TokenIdentifier,
		disassembly.TokenNumber,
		disassembly.TokenRegister,
		disassembly.TokenLBracket,
		disassembly.TokenRBracket,
		disassembly.TokenComma,
		disassembly.TokenColon,
		disassembly.TokenPlus,
		disassembly.TokenMinus,
	} {
		test.Equate(t, int(disassembly.ParseTokenType(k.String())), int(k))
	}
}
