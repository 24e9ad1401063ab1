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

// Package themes defines the on-disk colour theme format consumed by view
// layers. The core never interprets the colours; it only guarantees the
// file format is stable.
package themes

import (
	"encoding/json"
	"os"

	"github.com/MateusDuartee/i86emu/curated"
	"github.com/MateusDuartee/i86emu/disassembly"
)

// IoError is the pattern for file problems during theme load/save.
const IoError = "themes: %v"

// Color is an RGBA tuple with components in the range 0 to 1.
type Color [4]float32

// Theme is the colour set of the disassembly and memory views. TokenColors
// maps token kind names to colours.
type Theme struct {
	AddressColor           Color            `json:"AddressColor"`
	BytesColor             Color            `json:"BytesColor"`
	BreakpointHoveredColor Color            `json:"BreakpointHoveredColor"`
	BreakpointClickedColor Color            `json:"BreakpointClickedColor"`
	TokenColors            map[string]Color `json:"TokenColors"`
}

// DefaultTheme returns a theme with an entry for every token kind.
func DefaultTheme() *Theme {
	return &Theme{
		AddressColor:           Color{0.55, 0.55, 0.55, 1},
		BytesColor:             Color{0.45, 0.45, 0.45, 1},
		BreakpointHoveredColor: Color{0.8, 0.2, 0.2, 0.5},
		BreakpointClickedColor: Color{0.8, 0.2, 0.2, 1},
		TokenColors: map[string]Color{
			disassembly.TokenKeyword.String():    {0.85, 0.60, 0.25, 1},
			disassembly.TokenIdentifier.String(): {0.85, 0.85, 0.85, 1},
			disassembly.TokenNumber.String():     {0.55, 0.75, 0.45, 1},
			disassembly.TokenRegister.String():   {0.45, 0.65, 0.85, 1},
			disassembly.TokenLBracket.String():   {0.7, 0.7, 0.7, 1},
			disassembly.TokenRBracket.String():   {0.7, 0.7, 0.7, 1},
			disassembly.TokenComma.String():      {0.7, 0.7, 0.7, 1},
			disassembly.TokenColon.String():      {0.7, 0.7, 0.7, 1},
			disassembly.TokenPlus.String():       {0.7, 0.7, 0.7, 1},
			disassembly.TokenMinus.String():      {0.7, 0.7, 0.7, 1},
			disassembly.TokenUnknown.String():    {0.85, 0.85, 0.85, 1},
		},
	}
}

// Load a theme from a JSON file.
func Load(filename string) (*Theme, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, curated.Errorf(IoError, err)
	}

	t := &Theme{}
	if err := json.Unmarshal(data, t); err != nil {
		return nil, curated.Errorf(IoError, err)
	}

	return t, nil
}

// Save a theme to a JSON file.
func (t *Theme) Save(filename string) error {
	data, err := json.MarshalIndent(t, "", "    ")
	if err != nil {
		return curated.Errorf(IoError, err)
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return curated.Errorf(IoError, err)
	}

	return nil
}
