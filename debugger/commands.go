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

package debugger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MateusDuartee/i86emu/curated"
	"github.com/MateusDuartee/i86emu/debugger/terminal"
)

// UnknownCommandError is returned for input that isn't a recognised
// command.
const UnknownCommandError = "debugger: unknown command (%s)"

const helpText = `STEP [n]            execute n instructions (default 1)
RUN                 execute until breakpoint or HLT
REGS                print registers and flags
BREAK addr          toggle breakpoint at physical address
DISASM start end    disassemble a physical address range
MEM addr len        dump memory bytes
LOAD file addr      load a binary image at a physical address
QUIT                leave the debugger`

func (dbg *Debugger) parseCommand(input string) error {
	fields := strings.Fields(strings.ToUpper(input))
	if len(fields) == 0 {
		return nil
	}

	// the LOAD filename argument must keep its case
	rawFields := strings.Fields(input)

	switch fields[0] {
	case "STEP", "S":
		count := 1
		if len(fields) > 1 {
			n, err := parseNumber(fields[1])
			if err != nil {
				return err
			}
			count = int(n)
		}
		return dbg.step(count)

	case "RUN", "R":
		return dbg.step(runLimit)

	case "REGS":
		dbg.printRegisters()
		return nil

	case "BREAK", "B":
		if len(fields) < 2 {
			return curated.Errorf(UnknownCommandError, input)
		}
		addr, err := parseNumber(fields[1])
		if err != nil {
			return err
		}
		enabled := !dbg.mc.HasBreakpoint(addr)
		dbg.mc.SetBreakpoint(addr, enabled)
		if enabled {
			dbg.term.TermPrintLine(terminal.StyleFeedback, fmt.Sprintf("breakpoint set at %#05x", addr))
		} else {
			dbg.term.TermPrintLine(terminal.StyleFeedback, fmt.Sprintf("breakpoint cleared at %#05x", addr))
		}
		return nil

	case "DISASM", "D":
		if len(fields) < 3 {
			return curated.Errorf(UnknownCommandError, input)
		}
		start, err := parseNumber(fields[1])
		if err != nil {
			return err
		}
		end, err := parseNumber(fields[2])
		if err != nil {
			return err
		}
		return dbg.printDisassembly(start, end)

	case "MEM", "M":
		if len(fields) < 3 {
			return curated.Errorf(UnknownCommandError, input)
		}
		addr, err := parseNumber(fields[1])
		if err != nil {
			return err
		}
		length, err := parseNumber(fields[2])
		if err != nil {
			return err
		}
		return dbg.printMemory(addr, length)

	case "LOAD", "L":
		if len(rawFields) < 3 {
			return curated.Errorf(UnknownCommandError, input)
		}
		addr, err := parseNumber(strings.ToUpper(rawFields[2]))
		if err != nil {
			return err
		}
		return dbg.LoadBinary(rawFields[1], addr)

	case "HELP", "H", "?":
		dbg.term.TermPrintLine(terminal.StyleNormal, helpText)
		return nil

	case "QUIT", "Q":
		dbg.running = false
		return nil
	}

	return curated.Errorf(UnknownCommandError, input)
}

// parseNumber accepts decimal or 0x prefixed hexadecimal.
func parseNumber(s string) (uint32, error) {
	s = strings.ToLower(s)

	base := 10
	if strings.HasPrefix(s, "0x") {
		s = strings.TrimPrefix(s, "0x")
		base = 16
	}

	v, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return 0, curated.Errorf("debugger: bad number (%s)", s)
	}

	return uint32(v), nil
}

func (dbg *Debugger) printRegisters() {
	s := dbg.mc.Snapshot()

	dbg.term.TermPrintLine(terminal.StyleNormal,
		fmt.Sprintf("AX=%04x BX=%04x CX=%04x DX=%04x", s.A, s.B, s.C, s.D))
	dbg.term.TermPrintLine(terminal.StyleNormal,
		fmt.Sprintf("SP=%04x BP=%04x SI=%04x DI=%04x", s.SP, s.BP, s.SI, s.DI))
	dbg.term.TermPrintLine(terminal.StyleNormal,
		fmt.Sprintf("CS=%04x DS=%04x SS=%04x ES=%04x IP=%04x", s.CS, s.DS, s.SS, s.ES, s.IP))
	dbg.term.TermPrintLine(terminal.StyleNormal,
		fmt.Sprintf("FLAGS=%s", s.Flags))
}

func (dbg *Debugger) printDisassembly(start uint32, end uint32) error {
	if err := dbg.dsm.Disassemble(start, end); err != nil {
		return err
	}

	for i := 0; i < dbg.dsm.Count(); i++ {
		e := dbg.dsm.Entry(i)

		bytes := strings.Builder{}
		for _, v := range e.Bytes {
			bytes.WriteString(fmt.Sprintf("%02x ", v))
		}

		marker := " "
		if e.Breakpoint {
			marker = "*"
		}

		dbg.term.TermPrintLine(terminal.StyleNormal,
			fmt.Sprintf("%s %05x  %-*s %s", marker, e.Address, dbg.dsm.MaxByteCount()*3, bytes.String(), e.String()))
	}

	return nil
}

func (dbg *Debugger) printMemory(addr uint32, length uint32) error {
	img, err := dbg.mem.Dump()
	if err != nil {
		return err
	}

	for row := addr &^ 0x0f; row < addr+length; row += 16 {
		s := strings.Builder{}
		s.WriteString(fmt.Sprintf("%05x  ", row))

		for i := row; i < row+16; i++ {
			if i < uint32(len(img)) {
				s.WriteString(fmt.Sprintf("%02x ", img[i]))
			} else {
				s.WriteString("   ")
			}
		}

		dbg.term.TermPrintLine(terminal.StyleNormal, s.String())
	}

	return nil
}
