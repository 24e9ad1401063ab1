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

package main

import (
	"fmt"
	"os"

	"github.com/MateusDuartee/i86emu/debugger"
	"github.com/MateusDuartee/i86emu/debugger/terminal"
	"github.com/MateusDuartee/i86emu/debugger/terminal/colorterm"
	"github.com/MateusDuartee/i86emu/debugger/terminal/plainterm"
	"github.com/MateusDuartee/i86emu/disassembly"
	"github.com/MateusDuartee/i86emu/hardware/cpu"
	"github.com/MateusDuartee/i86emu/hardware/memory"
	"github.com/MateusDuartee/i86emu/hardware/memory/ram"
	"github.com/MateusDuartee/i86emu/loader"
	"github.com/MateusDuartee/i86emu/logger"
	"github.com/MateusDuartee/i86emu/modalflag"
	"github.com/MateusDuartee/i86emu/statsview"
	"github.com/MateusDuartee/i86emu/version"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "DEBUG", "DISASM", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return
	case modalflag.ParseError:
		fmt.Fprintf(os.Stderr, "* %s\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = emulate(md)
	case "DEBUG":
		err = debug(md)
	case "DISASM":
		err = disasm(md)
	case "VERSION":
		fmt.Printf("i86emu %s\n", version.Version)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "* %s\n", err)
		os.Exit(10)
	}
}

// machine assembles the bus, RAM and CPU, loading a binary image at the
// org address.
func machine(ramSize int, filename string, org uint) (*cpu.CPU, *memory.Bus, *ram.RAM, error) {
	mem := memory.NewBus()
	rm := ram.NewRAM(ramSize)

	if err := mem.AttachDevice(rm, 0, uint32(ramSize-1)); err != nil {
		return nil, nil, nil, err
	}

	if filename != "" {
		if err := loader.LoadFile(filename, uint32(org), rm); err != nil {
			return nil, nil, nil, err
		}
	}

	return cpu.NewCPU(mem), mem, rm, nil
}

func emulate(md *modalflag.Modes) error {
	md.NewMode()

	ramSize := md.AddInt("ram", 0x100000, "RAM size in bytes")
	org := md.AddUint("org", 0, "load address of the binary image")
	cycles := md.AddInt("cycles", 10000000, "maximum number of instructions")
	stats := md.AddBool("stats", false, "run stats server")

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		return err
	}

	if md.GetArg(0) == "" {
		return fmt.Errorf("no binary image specified")
	}

	mc, _, _, err := machine(*ramSize, md.GetArg(0), *org)
	if err != nil {
		return err
	}

	if *stats {
		statsview.Launch(os.Stdout)
	}

	logger.SetEcho(os.Stderr)

	if err := mc.Cycles(*cycles); err != nil {
		return err
	}

	fmt.Println(mc.String())

	return nil
}

func debug(md *modalflag.Modes) error {
	md.NewMode()

	ramSize := md.AddInt("ram", 0x100000, "RAM size in bytes")
	org := md.AddUint("org", 0, "load address of the binary image")
	useColor := md.AddBool("color", true, "ANSI terminal")

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		return err
	}

	var term terminal.Terminal
	if *useColor {
		term = &colorterm.ColorTerminal{}
	} else {
		term = &plainterm.PlainTerminal{}
	}

	dbg, err := debugger.New(*ramSize, term)
	if err != nil {
		return err
	}

	if md.GetArg(0) != "" {
		if err := dbg.LoadBinary(md.GetArg(0), uint32(*org)); err != nil {
			return err
		}
	}

	return dbg.Start()
}

func disasm(md *modalflag.Modes) error {
	md.NewMode()

	ramSize := md.AddInt("ram", 0x100000, "RAM size in bytes")
	org := md.AddUint("org", 0, "load address of the binary image")

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		return err
	}

	if md.GetArg(0) == "" {
		return fmt.Errorf("no binary image specified")
	}

	data, err := os.ReadFile(md.GetArg(0))
	if err != nil {
		return err
	}

	mem := memory.NewBus()
	rm := ram.NewRAM(*ramSize)
	if err := mem.AttachDevice(rm, 0, uint32(*ramSize-1)); err != nil {
		return err
	}
	if err := loader.Load(data, uint32(*org), rm); err != nil {
		return err
	}

	dsm := disassembly.NewDisassembly(mem)
	if err := dsm.Disassemble(uint32(*org), uint32(*org)+uint32(len(data))); err != nil {
		return err
	}

	for i := 0; i < dsm.Count(); i++ {
		e := dsm.Entry(i)

		bytes := ""
		for _, v := range e.Bytes {
			bytes += fmt.Sprintf("%02x ", v)
		}

		fmt.Printf("%05x  %-*s %s\n", e.Address, dsm.MaxByteCount()*3, bytes, e.String())
	}

	return nil
}
