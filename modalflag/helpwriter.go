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

package modalflag

import (
	"fmt"
	"io"
	"strings"
)

// helpWriter captures the usage text written by the flag package so that
// it can be combined with sub-mode information.
type helpWriter struct {
	b strings.Builder
}

func (hw *helpWriter) Write(p []byte) (int, error) {
	return hw.b.Write(p)
}

func (hw *helpWriter) help(output io.Writer, path string, subModes []string) {
	if output == nil {
		return
	}

	if path != "" {
		fmt.Fprintf(output, "mode: %s\n", path)
	}

	if len(subModes) > 0 {
		fmt.Fprintf(output, "sub-modes: %s (default: %s)\n",
			strings.Join(subModes, ", "), subModes[0])
	}

	usage := hw.b.String()
	if usage != "" {
		io.WriteString(output, usage)
	}
}
