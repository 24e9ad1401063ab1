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

import "sort"

// SetBreakpoint adds or removes a 20 bit physical address from the
// breakpoint set. The CPU itself never consults the set; stepping policy
// belongs to the front-end.
func (mc *CPU) SetBreakpoint(address uint32, enabled bool) {
	if enabled {
		mc.breakpoints[address] = struct{}{}
		return
	}
	delete(mc.breakpoints, address)
}

// HasBreakpoint returns true if the physical address is in the breakpoint
// set.
func (mc *CPU) HasBreakpoint(address uint32) bool {
	_, ok := mc.breakpoints[address]
	return ok
}

// Breakpoints returns the breakpoint set in ascending address order.
func (mc *CPU) Breakpoints() []uint32 {
	l := make([]uint32, 0, len(mc.breakpoints))
	for a := range mc.breakpoints {
		l = append(l, a)
	}
	sort.Slice(l, func(i, j int) bool { return l[i] < l[j] })
	return l
}
