// seehuhn.de/go/cff2 - a library for subsetting CFF2 font tables
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package cff2

import "seehuhn.de/go/sfnt/glyph"

// Subset returns a new CFF2 table which contains only the glyphs in the
// given list.  The position of a glyph in the list determines its glyph
// ID in the new table.  Charstrings are copied verbatim; the global
// subr INDEX is copied in full.
//
// The glyph list must not contain duplicates.  An empty list is valid
// and yields a table with no charstrings.
func (f *Font) Subset(glyphs []glyph.ID) ([]byte, error) {
	for _, gid := range glyphs {
		if int(gid) >= len(f.charStrings) {
			return nil, invalidSince("glyph ID out of range")
		}
	}

	plan, err := makeSubsetPlan(f, glyphs)
	if err != nil {
		return nil, err
	}
	return writeTable(plan, f, glyphs)
}

// Subset decodes the CFF2 font table stored in data and returns a new
// table containing only the given glyphs.
func Subset(data []byte, glyphs []glyph.ID) ([]byte, error) {
	f, err := Read(data)
	if err != nil {
		return nil, err
	}
	return f.Subset(glyphs)
}
