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

// push a word onto the stack at SS:SP.
func (mc *CPU) push(value uint16) error {
	mc.SP.Add(0xfffe) // SP -= 2
	return mc.mem.Write(mc.SP.Value(), value, mc.SS.Value(), 16, false)
}

// pop a word from the stack at SS:SP.
func (mc *CPU) pop() (uint16, error) {
	v, err := mc.mem.Read(mc.SP.Value(), mc.SS.Value(), 16, false)
	if err != nil {
		return 0, err
	}

	mc.SP.Add(2)

	return v, nil
}

// interrupt pushes flags and the CS:IP return address, loads the handler
// address from the interrupt vector table at physical vector*4 and clears
// the interrupt and trap flags. A halted CPU resumes running.
func (mc *CPU) interrupt(vector uint8) error {
	if err := mc.push(mc.Flags.Value()); err != nil {
		return err
	}
	if err := mc.push(mc.CS.Value()); err != nil {
		return err
	}
	if err := mc.push(mc.IP.Value()); err != nil {
		return err
	}

	// the vector table lives at the bottom of physical memory
	entry := uint16(vector) * 4

	ip, err := mc.mem.Read(entry, 0, 16, false)
	if err != nil {
		return err
	}

	cs, err := mc.mem.Read(entry+2, 0, 16, false)
	if err != nil {
		return err
	}

	mc.IP.Load(ip)
	mc.CS.Load(cs)

	mc.Flags.Interrupt = false
	mc.Flags.Trap = false

	mc.halted = false

	return nil
}
