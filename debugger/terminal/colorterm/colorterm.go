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

// Package colorterm implements the Terminal interface for the i86emu
// debugger. It provides an ANSI-styled prompt with basic line editing,
// using cbreak mode through the easyterm package.
package colorterm

import (
	"fmt"
	"os"
	"strings"

	"github.com/MateusDuartee/i86emu/curated"
	"github.com/MateusDuartee/i86emu/debugger/terminal"
	"github.com/MateusDuartee/i86emu/debugger/terminal/colorterm/easyterm"
	"github.com/MateusDuartee/i86emu/debugger/terminal/colorterm/easyterm/ansi"
)

// ColorTerminal implements debugger UI interface with a basic ANSI
// terminal.
type ColorTerminal struct {
	easyterm.Terminal
}

// Initialise perfoms any setting up required for the terminal.
func (ct *ColorTerminal) Initialise() error {
	return ct.Terminal.Initialise(os.Stdin, os.Stdout)
}

// CleanUp perfoms any cleaning up required for the terminal.
func (ct *ColorTerminal) CleanUp() {
	ct.Print(ansi.NormalPen)
	ct.Terminal.CleanUp()
}

// IsRealTerminal implements the terminal.Input interface.
func (ct *ColorTerminal) IsRealTerminal() bool {
	return true
}

// TermRead implements the terminal.Input interface. Input is read one
// keypress at a time in cbreak mode; only backspace editing is offered.
func (ct *ColorTerminal) TermRead(prompt string) (string, error) {
	ct.CBreakMode()
	defer ct.CanonicalMode()

	ct.Print("%s%s%s", ansi.PenBold, prompt, ansi.NormalPen)

	input := strings.Builder{}
	buf := make([]byte, 1)

	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return "", err
		}
		if n == 0 {
			continue
		}

		switch buf[0] {
		case '\n', '\r':
			ct.Print("\n")
			return input.String(), nil

		case 0x03:
			// ctrl-c
			ct.Print("\n")
			return "", curated.Errorf(terminal.UserInterrupt)

		case 0x7f, 0x08:
			// backspace
			s := input.String()
			if len(s) > 0 {
				input.Reset()
				input.WriteString(s[:len(s)-1])
				ct.Print("\b \b")
			}

		default:
			if buf[0] >= 0x20 && buf[0] < 0x7f {
				input.WriteByte(buf[0])
				ct.Print("%c", buf[0])
			}
		}
	}
}

// TermPrintLine implements the terminal.Output interface.
func (ct *ColorTerminal) TermPrintLine(style terminal.Style, s string) {
	switch style {
	case terminal.StyleFeedback:
		ct.Print(ansi.PenGrey)
	case terminal.StyleCPUStep:
		ct.Print(ansi.PenCyan)
	case terminal.StyleError:
		ct.Print(ansi.PenRed)
		s = fmt.Sprintf("* %s", s)
	}

	ct.Print("%s%s\n", s, ansi.NormalPen)
}
