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

// Package cff2 implements support for reading and subsetting CFF2 font
// tables.
//
// CFF2 tables are found embedded in OpenType font files, in the "CFF2"
// table of variable and non-variable OpenType/CFF2 fonts.  They are not
// used as stand-alone font files.
//
// Subsetting copies the charstring programs of the retained glyphs
// verbatim and rebuilds the surrounding structure: the top dict, the
// font dict array, the glyph-to-font-dict selector, and the private
// dicts with their local subroutines.  Font dicts which no retained
// glyph uses are dropped.
package cff2
