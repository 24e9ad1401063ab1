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

// Package terminal defines the operations required of a debugger
// terminal. Implementations live in the plainterm and colorterm
// sub-packages.
package terminal

// UserInterrupt is the error pattern returned by TermRead when the user
// has asked to interrupt the session.
const UserInterrupt = "user interrupt"

// Style classifies a line of output so that terminals capable of styling
// can decorate it.
type Style int

// List of valid Style values.
const (
	StyleNormal Style = iota
	StyleFeedback
	StyleCPUStep
	StyleError
)

// Input defines the operations required of an interface that allows
// input.
type Input interface {
	// TermRead returns the next line of user input, without the line
	// terminator.
	TermRead(prompt string) (string, error)

	// IsRealTerminal returns true if the input is an interactive
	// terminal rather than a redirection.
	IsRealTerminal() bool
}

// Output defines the operations required of an interface that allows
// output.
type Output interface {
	TermPrintLine(style Style, s string)
}

// Terminal is the complete interface required by the debugger.
type Terminal interface {
	Initialise() error
	CleanUp()

	Input
	Output
}
