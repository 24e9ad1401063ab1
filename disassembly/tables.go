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

package disassembly

// operand names the rendering rule for one instruction operand.
type operand int

const (
	none operand = iota
	implied
	rel8
	se8
	i8
	i16
	rm8
	rm16
	r8
	r16
	addr
	segAddr
)

// instr is one entry of the static instruction tables. The mnemonic
// template holds up to two {} placeholders which receive the rendered
// operands.
type instr struct {
	template string
	op1      operand
	op2      operand
	modRM    bool
}

// grp marks a primary table slot whose instruction is selected by the Reg
// subfield of the ModR/M byte.
var grp = instr{"GRP", none, none, true}

// primaryTable mirrors the executor's 256 entry opcode table. Byte
// consumption per entry must equal what the executor consumes for the
// same opcode.
var primaryTable = [256]instr{
	// 0x00 - 0x0f
	{"ADD {}, {}", rm8, r8, true}, {"ADD {}, {}", rm16, r16, true}, {"ADD {}, {}", r8, rm8, true}, {"ADD {}, {}", r16, rm16, true},
	{"ADD AL, {}{}", implied, i8, false}, {"ADD AX, {}{}", implied, i16, false}, {"PUSH ES", implied, none, false}, {"POP ES", implied, none, false},
	{"OR {}, {}", rm8, r8, true}, {"OR {}, {}", rm16, r16, true}, {"OR {}, {}", r8, rm8, true}, {"OR {}, {}", r16, rm16, true},
	{"OR AL, {}{}", implied, i8, false}, {"OR AX, {}{}", implied, i16, false}, {"PUSH CS", implied, none, false}, {"POP CS", implied, none, false},

	// 0x10 - 0x1f
	{"ADC {}, {}", rm8, r8, true}, {"ADC {}, {}", rm16, r16, true}, {"ADC {}, {}", r8, rm8, true}, {"ADC {}, {}", r16, rm16, true},
	{"ADC AL, {}{}", implied, i8, false}, {"ADC AX, {}{}", implied, i16, false}, {"PUSH SS", implied, none, false}, {"POP SS", implied, none, false},
	{"SBB {}, {}", rm8, r8, true}, {"SBB {}, {}", rm16, r16, true}, {"SBB {}, {}", r8, rm8, true}, {"SBB {}, {}", r16, rm16, true},
	{"SBB AL, {}{}", implied, i8, false}, {"SBB AX, {}{}", implied, i16, false}, {"PUSH DS", implied, none, false}, {"POP DS", implied, none, false},

	// 0x20 - 0x2f
	{"AND {}, {}", rm8, r8, true}, {"AND {}, {}", rm16, r16, true}, {"AND {}, {}", r8, rm8, true}, {"AND {}, {}", r16, rm16, true},
	{"AND AL, {}{}", implied, i8, false}, {"AND AX, {}{}", implied, i16, false}, {"ES:", none, none, false}, {"DAA", none, none, false},
	{"SUB {}, {}", rm8, r8, true}, {"SUB {}, {}", rm16, r16, true}, {"SUB {}, {}", r8, rm8, true}, {"SUB {}, {}", r16, rm16, true},
	{"SUB AL, {}{}", implied, i8, false}, {"SUB AX, {}{}", implied, i16, false}, {"CS:", none, none, false}, {"DAS", none, none, false},

	// 0x30 - 0x3f
	{"XOR {}, {}", rm8, r8, true}, {"XOR {}, {}", rm16, r16, true}, {"XOR {}, {}", r8, rm8, true}, {"XOR {}, {}", r16, rm16, true},
	{"XOR AL, {}{}", implied, i8, false}, {"XOR AX, {}{}", implied, i16, false}, {"SS:", none, none, false}, {"AAA", none, none, false},
	{"CMP {}, {}", rm8, r8, true}, {"CMP {}, {}", rm16, r16, true}, {"CMP {}, {}", r8, rm8, true}, {"CMP {}, {}", r16, rm16, true},
	{"CMP AL, {}{}", implied, i8, false}, {"CMP AX, {}{}", implied, i16, false}, {"DS:", none, none, false}, {"AAS", none, none, false},

	// 0x40 - 0x4f
	{"INC AX", implied, none, false}, {"INC CX", implied, none, false}, {"INC DX", implied, none, false}, {"INC BX", implied, none, false},
	{"INC SP", implied, none, false}, {"INC BP", implied, none, false}, {"INC SI", implied, none, false}, {"INC DI", implied, none, false},
	{"DEC AX", implied, none, false}, {"DEC CX", implied, none, false}, {"DEC DX", implied, none, false}, {"DEC BX", implied, none, false},
	{"DEC SP", implied, none, false}, {"DEC BP", implied, none, false}, {"DEC SI", implied, none, false}, {"DEC DI", implied, none, false},

	// 0x50 - 0x5f
	{"PUSH AX", implied, none, false}, {"PUSH CX", implied, none, false}, {"PUSH DX", implied, none, false}, {"PUSH BX", implied, none, false},
	{"PUSH SP", implied, none, false}, {"PUSH BP", implied, none, false}, {"PUSH SI", implied, none, false}, {"PUSH DI", implied, none, false},
	{"POP AX", implied, none, false}, {"POP CX", implied, none, false}, {"POP DX", implied, none, false}, {"POP BX", implied, none, false},
	{"POP SP", implied, none, false}, {"POP BP", implied, none, false}, {"POP SI", implied, none, false}, {"POP DI", implied, none, false},

	// 0x60 - 0x6f (reserved encodings)
	{"NOP", none, none, false}, {"NOP", none, none, false}, {"NOP", none, none, false}, {"NOP", none, none, false},
	{"NOP", none, none, false}, {"NOP", none, none, false}, {"NOP", none, none, false}, {"NOP", none, none, false},
	{"NOP", none, none, false}, {"NOP", none, none, false}, {"NOP", none, none, false}, {"NOP", none, none, false},
	{"NOP", none, none, false}, {"NOP", none, none, false}, {"NOP", none, none, false}, {"NOP", none, none, false},

	// 0x70 - 0x7f
	{"JO {}{}", rel8, none, false}, {"JNO {}{}", rel8, none, false}, {"JC {}{}", rel8, none, false}, {"JNC {}{}", rel8, none, false},
	{"JZ {}{}", rel8, none, false}, {"JNZ {}{}", rel8, none, false}, {"JNA {}{}", rel8, none, false}, {"JA {}{}", rel8, none, false},
	{"JS {}{}", rel8, none, false}, {"JNS {}{}", rel8, none, false}, {"JP {}{}", rel8, none, false}, {"JNP {}{}", rel8, none, false},
	{"JL {}{}", rel8, none, false}, {"JNL {}{}", rel8, none, false}, {"JLE {}{}", rel8, none, false}, {"JG {}{}", rel8, none, false},

	// 0x80 - 0x8f
	grp, grp, grp, grp,
	{"TEST {}, {}", rm8, r8, true}, {"TEST {}, {}", rm16, r16, true}, {"XCHG {}, {}", r8, rm8, true}, {"XCHG {}, {}", r16, rm16, true},
	{"MOV {}, {}", rm8, r8, true}, {"MOV {}, {}", rm16, r16, true}, {"MOV {}, {}", r8, rm8, true}, {"MOV {}, {}", r16, rm16, true},
	grp, {"LEA {}, {}", r16, rm16, true}, grp, grp,

	// 0x90 - 0x9f
	{"NOP", none, none, false}, {"XCHG CX", implied, none, false}, {"XCHG DX", implied, none, false}, {"XCHG BX", implied, none, false},
	{"XCHG SP", implied, none, false}, {"XCHG BP", implied, none, false}, {"XCHG SI", implied, none, false}, {"XCHG DI", implied, none, false},
	{"CBW", none, none, false}, {"CWD", none, none, false}, {"CALL {}{}", segAddr, none, false}, {"WAIT", none, none, false},
	{"PUSHF", none, none, false}, {"POPF", none, none, false}, {"SAHF", none, none, false}, {"LAHF", none, none, false},

	// 0xa0 - 0xaf
	{"MOV AL, {}{}", implied, addr, false}, {"MOV AX, {}{}", implied, addr, false}, {"MOV {}{}, AL", addr, implied, false}, {"MOV {}{}, AX", addr, implied, false},
	{"MOVSB", none, none, false}, {"MOVSW", none, none, false}, {"CMPSB", none, none, false}, {"CMPSW", none, none, false},
	{"TEST AL, {}{}", implied, i8, false}, {"TEST AX, {}{}", implied, i16, false}, {"STOSB", none, none, false}, {"STOSW", none, none, false},
	{"LODSB", none, none, false}, {"LODSW", none, none, false}, {"SCASB", none, none, false}, {"SCASW", none, none, false},

	// 0xb0 - 0xbf
	{"MOV AL, {}{}", implied, i8, false}, {"MOV CL, {}{}", implied, i8, false}, {"MOV DL, {}{}", implied, i8, false}, {"MOV BL, {}{}", implied, i8, false},
	{"MOV AH, {}{}", implied, i8, false}, {"MOV CH, {}{}", implied, i8, false}, {"MOV DH, {}{}", implied, i8, false}, {"MOV BH, {}{}", implied, i8, false},
	{"MOV AX, {}{}", implied, i16, false}, {"MOV CX, {}{}", implied, i16, false}, {"MOV DX, {}{}", implied, i16, false}, {"MOV BX, {}{}", implied, i16, false},
	{"MOV SP, {}{}", implied, i16, false}, {"MOV BP, {}{}", implied, i16, false}, {"MOV SI, {}{}", implied, i16, false}, {"MOV DI, {}{}", implied, i16, false},

	// 0xc0 - 0xcf
	{"NOP", none, none, false}, {"NOP", none, none, false}, {"RET {}{}", i16, none, false}, {"RET", none, none, false},
	{"LES {}, {}", r16, rm16, true}, {"LDS {}, {}", r16, rm16, true}, grp, grp,
	{"NOP", none, none, false}, {"NOP", none, none, false}, {"RETF {}{}", i16, none, false}, {"RETF", none, none, false},
	{"INT 3", implied, none, false}, {"INT {}{}", i8, none, false}, {"INTO", none, none, false}, {"IRET", none, none, false},

	// 0xd0 - 0xdf
	grp, grp, grp, grp,
	{"AAM {}{}", i8, none, false}, {"AAD {}{}", i8, none, false}, {"NOP", none, none, false}, {"XLAT", none, none, false},
	{"ESC", none, none, false}, {"ESC", none, none, false}, {"ESC", none, none, false}, {"ESC", none, none, false},
	{"ESC", none, none, false}, {"ESC", none, none, false}, {"ESC", none, none, false}, {"ESC", none, none, false},

	// 0xe0 - 0xef
	{"LOOPNZ {}{}", rel8, none, false}, {"LOOPZ {}{}", rel8, none, false}, {"LOOP {}{}", rel8, none, false}, {"JCXZ {}{}", rel8, implied, false},
	{"IN AL, {}{}", implied, i8, false}, {"IN AX, {}{}", implied, i8, false}, {"OUT {}, AL", i8, implied, false}, {"OUT {}, AX", i8, implied, false},
	{"CALL {}", addr, none, false}, {"JMP {}", addr, none, false}, {"JMP {}{}", segAddr, none, false}, {"JMP {}{}", rel8, none, false},
	{"IN AL, DX", implied, implied, false}, {"IN AX, DX", implied, implied, false}, {"OUT DX, AL", implied, implied, false}, {"OUT DX, AX", implied, implied, false},

	// 0xf0 - 0xff
	{"LOCK", none, none, false}, {"NOP", none, none, false}, {"REPNZ", none, none, false}, {"REP", none, none, false},
	{"HLT", none, none, false}, {"CMC", none, none, false}, grp, grp,
	{"CLC", none, none, false}, {"STC", none, none, false}, {"CLI", none, none, false}, {"STI", none, none, false},
	{"CLD", none, none, false}, {"STD", none, none, false}, grp, grp,
}

// groupTable holds the instructions selected by the Reg subfield for the
// seventeen group opcodes. Each group occupies eight contiguous slots in
// the order 0x80, 0x81, 0x82, 0x83, 0x8c, 0x8e, 0x8f, 0xc6, 0xc7, 0xd0,
// 0xd1, 0xd2, 0xd3, 0xf6, 0xf7, 0xfe, 0xff.
var groupTable = [136]instr{
	// 0x80: op r/m8, i8
	{"ADD {}, {}", rm8, i8, false}, {"OR {}, {}", rm8, i8, false}, {"ADC {}, {}", rm8, i8, false}, {"SBB {}, {}", rm8, i8, false},
	{"AND {}, {}", rm8, i8, false}, {"SUB {}, {}", rm8, i8, false}, {"XOR {}, {}", rm8, i8, false}, {"CMP {}, {}", rm8, i8, false},

	// 0x81: op r/m16, i16
	{"ADD {}, {}", rm16, i16, false}, {"OR {}, {}", rm16, i16, false}, {"ADC {}, {}", rm16, i16, false}, {"SBB {}, {}", rm16, i16, false},
	{"AND {}, {}", rm16, i16, false}, {"SUB {}, {}", rm16, i16, false}, {"XOR {}, {}", rm16, i16, false}, {"CMP {}, {}", rm16, i16, false},

	// 0x82: alias of 0x80
	{"ADD {}, {}", rm8, i8, false}, {"OR {}, {}", rm8, i8, false}, {"ADC {}, {}", rm8, i8, false}, {"SBB {}, {}", rm8, i8, false},
	{"AND {}, {}", rm8, i8, false}, {"SUB {}, {}", rm8, i8, false}, {"XOR {}, {}", rm8, i8, false}, {"CMP {}, {}", rm8, i8, false},

	// 0x83: op r/m16, sign extended i8
	{"ADD {}, {}", rm16, se8, false}, {"OR {}, {}", rm16, se8, false}, {"ADC {}, {}", rm16, se8, false}, {"SBB {}, {}", rm16, se8, false},
	{"AND {}, {}", rm16, se8, false}, {"SUB {}, {}", rm16, se8, false}, {"XOR {}, {}", rm16, se8, false}, {"CMP {}, {}", rm16, se8, false},

	// 0x8c: MOV r/m16, segment register
	{"MOV {}, ES", rm16, implied, false}, {"MOV {}, CS", rm16, implied, false}, {"MOV {}, SS", rm16, implied, false}, {"MOV {}, DS", rm16, implied, false},
	{"NOP", none, none, false}, {"NOP", none, none, false}, {"NOP", none, none, false}, {"NOP", none, none, false},

	// 0x8e: MOV segment register, r/m16
	{"MOV ES, {}{}", implied, rm16, false}, {"MOV CS, {}{}", implied, rm16, false}, {"MOV SS, {}{}", implied, rm16, false}, {"MOV DS, {}{}", implied, rm16, false},
	{"NOP", none, none, false}, {"NOP", none, none, false}, {"NOP", none, none, false}, {"NOP", none, none, false},

	// 0x8f: POP r/m16
	{"POP {}", rm16, none, false}, {"NOP", none, none, false}, {"NOP", none, none, false}, {"NOP", none, none, false},
	{"NOP", none, none, false}, {"NOP", none, none, false}, {"NOP", none, none, false}, {"NOP", none, none, false},

	// 0xc6: MOV r/m8, i8
	{"MOV {}, {}", rm8, i8, false}, {"NOP", none, none, false}, {"NOP", none, none, false}, {"NOP", none, none, false},
	{"NOP", none, none, false}, {"NOP", none, none, false}, {"NOP", none, none, false}, {"NOP", none, none, false},

	// 0xc7: MOV r/m16, i16
	{"MOV {}, {}", rm16, i16, false}, {"NOP", none, none, false}, {"NOP", none, none, false}, {"NOP", none, none, false},
	{"NOP", none, none, false}, {"NOP", none, none, false}, {"NOP", none, none, false}, {"NOP", none, none, false},

	// 0xd0: shift/rotate r/m8 by 1
	{"ROL {}, 1", rm8, implied, false}, {"ROR {}, 1", rm8, implied, false}, {"RCL {}, 1", rm8, implied, false}, {"RCR {}, 1", rm8, implied, false},
	{"SHL {}, 1", rm8, implied, false}, {"SHR {}, 1", rm8, implied, false}, {"NOP", none, none, false}, {"SAR {}, 1", rm8, implied, false},

	// 0xd1: shift/rotate r/m16 by 1
	{"ROL {}, 1", rm16, implied, false}, {"ROR {}, 1", rm16, implied, false}, {"RCL {}, 1", rm16, implied, false}, {"RCR {}, 1", rm16, implied, false},
	{"SHL {}, 1", rm16, implied, false}, {"SHR {}, 1", rm16, implied, false}, {"NOP", none, none, false}, {"SAR {}, 1", rm16, implied, false},

	// 0xd2: shift/rotate r/m8 by CL
	{"ROL {}, CL", rm8, implied, false}, {"ROR {}, CL", rm8, implied, false}, {"RCL {}, CL", rm8, implied, false}, {"RCR {}, CL", rm8, implied, false},
	{"SHL {}, CL", rm8, implied, false}, {"SHR {}, CL", rm8, implied, false}, {"NOP", none, none, false}, {"SAR {}, CL", rm8, implied, false},

	// 0xd3: shift/rotate r/m16 by CL
	{"ROL {}, CL", rm16, implied, false}, {"ROR {}, CL", rm16, implied, false}, {"RCL {}, CL", rm16, implied, false}, {"RCR {}, CL", rm16, implied, false},
	{"SHL {}, CL", rm16, implied, false}, {"SHR {}, CL", rm16, implied, false}, {"NOP", none, none, false}, {"SAR {}, CL", rm16, implied, false},

	// 0xf6: TEST/NOT/NEG/MUL/IMUL/DIV/IDIV r/m8
	{"TEST {}, {}", rm8, i8, false}, {"NOP", none, none, false}, {"NOT {}", rm8, none, false}, {"NEG {}", rm8, none, false},
	{"MUL {}", rm8, none, false}, {"IMUL {}", rm8, none, false}, {"DIV {}", rm8, none, false}, {"IDIV {}", rm8, none, false},

	// 0xf7: TEST/NOT/NEG/MUL/IMUL/DIV/IDIV r/m16
	{"TEST {}, {}", rm16, i16, false}, {"NOP", none, none, false}, {"NOT {}", rm16, none, false}, {"NEG {}", rm16, none, false},
	{"MUL {}", rm16, none, false}, {"IMUL {}", rm16, none, false}, {"DIV {}", rm16, none, false}, {"IDIV {}", rm16, none, false},

	// 0xfe: INC/DEC r/m8
	{"INC {}", rm8, none, false}, {"DEC {}", rm8, none, false}, {"NOP", none, none, false}, {"NOP", none, none, false},
	{"NOP", none, none, false}, {"NOP", none, none, false}, {"NOP", none, none, false}, {"NOP", none, none, false},

	// 0xff: INC/DEC/CALL/JMP/PUSH r/m16
	{"INC {}", rm16, none, false}, {"DEC {}", rm16, none, false}, {"CALL {}", rm16, none, false}, {"CALL FAR {}", rm16, none, false},
	{"JMP {}", rm16, none, false}, {"JMP FAR {}", rm16, none, false}, {"PUSH {}", rm16, none, false}, {"NOP", none, none, false},
}

// modrmTable holds the memory operand strings for each Mod row, plus the
// byte and word register names used when Mod is 3. The Mod 1 and Mod 2
// rows are format strings receiving the displacement.
var modrmTable = [5][8]string{
	{"[BX + SI]", "[BX + DI]", "[BP + SI]", "[BP + DI]", "[SI]", "[DI]", "[0x%04X]", "[BX]"},
	{"[BX + SI%+d]", "[BX + DI%+d]", "[BP + SI%+d]", "[BP + DI%+d]", "[SI%+d]", "[DI%+d]", "[BP%+d]", "[BX%+d]"},
	{"[BX + SI + 0x%04X]", "[BX + DI + 0x%04X]", "[BP + SI + 0x%04X]", "[BP + DI + 0x%04X]", "[SI + 0x%04X]", "[DI + 0x%04X]", "[BP + 0x%04X]", "[BX + 0x%04X]"},
	{"AL", "CL", "DL", "BL", "AH", "CH", "DH", "BH"},
	{"AX", "CX", "DX", "BX", "SP", "BP", "SI", "DI"},
}

// groupIndex maps a group opcode to its row block in groupTable.
func groupIndex(opcode uint8) (int, bool) {
	switch opcode {
	case 0x80:
		return 0, true
	case 0x81:
		return 1, true
	case 0x82:
		return 2, true
	case 0x83:
		return 3, true
	case 0x8c:
		return 4, true
	case 0x8e:
		return 5, true
	case 0x8f:
		return 6, true
	case 0xc6:
		return 7, true
	case 0xc7:
		return 8, true
	case 0xd0:
		return 9, true
	case 0xd1:
		return 10, true
	case 0xd2:
		return 11, true
	case 0xd3:
		return 12, true
	case 0xf6:
		return 13, true
	case 0xf7:
		return 14, true
	case 0xfe:
		return 15, true
	case 0xff:
		return 16, true
	}
	return 0, false
}
