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

// Package debugger is a thin front-end driver over the emulation core.
// It steps the CPU, consults the breakpoint set, and prints register and
// memory panels through the terminal interface.
package debugger

import (
	"io"

	"github.com/MateusDuartee/i86emu/curated"
	"github.com/MateusDuartee/i86emu/debugger/terminal"
	"github.com/MateusDuartee/i86emu/disassembly"
	"github.com/MateusDuartee/i86emu/hardware/cpu"
	"github.com/MateusDuartee/i86emu/hardware/iobus"
	"github.com/MateusDuartee/i86emu/hardware/memory"
	"github.com/MateusDuartee/i86emu/hardware/memory/ram"
	"github.com/MateusDuartee/i86emu/loader"
	"github.com/MateusDuartee/i86emu/logger"
)

// the ceiling on instructions executed by a single RUN command; the
// front-end stays responsive even when the program never reaches a
// breakpoint or a HLT
const runLimit = 10000000

// Debugger is the interactive front-end.
type Debugger struct {
	mem *memory.Bus
	io  *iobus.Bus
	ram *ram.RAM
	mc  *cpu.CPU
	dsm *disassembly.Disassembly

	term terminal.Terminal

	running bool
}

// New is the preferred method of initialisation for the Debugger type.
// The RAM device covers the bottom of the physical address space.
func New(ramSize int, term terminal.Terminal) (*Debugger, error) {
	dbg := &Debugger{
		mem:  memory.NewBus(),
		io:   iobus.NewBus(),
		ram:  ram.NewRAM(ramSize),
		term: term,
	}

	if err := dbg.mem.AttachDevice(dbg.ram, 0, uint32(ramSize-1)); err != nil {
		return nil, err
	}

	dbg.mc = cpu.NewCPU(dbg.mem)
	dbg.dsm = disassembly.NewDisassembly(dbg.mem)
	dbg.dsm.Breakpoints = dbg.mc

	return dbg, nil
}

// LoadBinary copies a flat binary image into RAM at the base address.
func (dbg *Debugger) LoadBinary(filename string, base uint32) error {
	return loader.LoadFile(filename, base, dbg.ram)
}

// Start the input loop. Returns when the user quits or input is
// exhausted.
func (dbg *Debugger) Start() error {
	if err := dbg.term.Initialise(); err != nil {
		return err
	}
	defer dbg.term.CleanUp()

	dbg.running = true

	for dbg.running {
		input, err := dbg.term.TermRead("(i86) ")
		if err != nil {
			if err == io.EOF || curated.Is(err, terminal.UserInterrupt) {
				return nil
			}
			return err
		}

		if err := dbg.parseCommand(input); err != nil {
			dbg.term.TermPrintLine(terminal.StyleError, err.Error())
			logger.Log("debugger", err.Error())
		}
	}

	return nil
}

// step executes count instructions, stopping early at a breakpoint.
func (dbg *Debugger) step(count int) error {
	for i := 0; i < count; i++ {
		if err := dbg.mc.Cycles(1); err != nil {
			return err
		}

		if dbg.mc.Halted() {
			dbg.term.TermPrintLine(terminal.StyleFeedback, "halted")
			break
		}

		addr := memory.Physical(dbg.mc.IP.Value(), dbg.mc.CS.Value())
		if dbg.mc.HasBreakpoint(addr) {
			dbg.term.TermPrintLine(terminal.StyleFeedback, "breakpoint")
			break
		}
	}

	dbg.term.TermPrintLine(terminal.StyleCPUStep, dbg.mc.String())

	return nil
}
