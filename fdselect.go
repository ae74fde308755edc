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

import (
	"fmt"
	"sort"

	"seehuhn.de/go/sfnt/glyph"
)

// FdSelectFn maps glyphs to the font dict which applies to them.
type FdSelectFn func(glyph.ID) int

// readFDSelect decodes the FDSelect table starting at buf[pos].  It
// returns the lookup function and the encoded length of the table.
func readFDSelect(buf []byte, pos, nGlyphs, nFonts int) (FdSelectFn, int, error) {
	if pos < 0 || pos >= len(buf) {
		return nil, 0, invalidSince("FDSelect out of bounds")
	}
	format := buf[pos]

	switch format {
	case 0:
		if pos+1+nGlyphs > len(buf) {
			return nil, 0, invalidSince("FDSelect out of bounds")
		}
		fdIdx := buf[pos+1 : pos+1+nGlyphs]
		for _, fd := range fdIdx {
			if int(fd) >= nFonts {
				return nil, 0, invalidSince("FDSelect out of range")
			}
		}
		return func(gid glyph.ID) int {
			return int(fdIdx[gid])
		}, 1 + nGlyphs, nil

	case 3:
		if pos+3 > len(buf) {
			return nil, 0, invalidSince("FDSelect out of bounds")
		}
		nRanges := int(buf[pos+1])<<8 | int(buf[pos+2])
		if nGlyphs > 0 && nRanges == 0 {
			return nil, 0, invalidSince("no FDSelect data found")
		}
		length := 3 + 3*nRanges + 2
		if pos+length > len(buf) {
			return nil, 0, invalidSince("FDSelect out of bounds")
		}

		var end []glyph.ID
		var fdIdx []uint8

		prev := 0
		for i := 0; i < nRanges; i++ {
			first := int(buf[pos+3+3*i])<<8 | int(buf[pos+3+3*i+1])
			if i > 0 && first <= prev || i == 0 && first != 0 {
				return nil, 0, invalidSince("FDSelect is invalid")
			}
			fd := buf[pos+3+3*i+2]
			if int(fd) >= nFonts {
				return nil, 0, invalidSince("FDSelect out of range")
			}
			if i > 0 {
				end = append(end, glyph.ID(first))
			}
			fdIdx = append(fdIdx, fd)
			prev = first
		}
		sentinel := int(buf[pos+length-2])<<8 | int(buf[pos+length-1])
		if sentinel != nGlyphs {
			return nil, 0, invalidSince("wrong FDSelect sentinel")
		}
		end = append(end, glyph.ID(nGlyphs))

		return func(gid glyph.ID) int {
			idx := sort.Search(nRanges,
				func(i int) bool { return gid < end[i] })
			return int(fdIdx[idx])
		}, length, nil

	default:
		return nil, 0, notSupported(fmt.Sprintf("FDSelect format %d", format))
	}
}

// fdMap assigns new numbers to the font dicts retained in a subset.
// Font dicts which no retained glyph uses are excluded.
type fdMap []fdMapEntry

type fdMapEntry struct {
	newIdx   int
	retained bool
}

func (m fdMap) setIdentity() {
	for i := range m {
		m[i] = fdMapEntry{newIdx: i, retained: true}
	}
}

// fdSelectRange marks the start of a run of glyphs which share a font
// dict.  Glyph numbers and font dict numbers refer to the subset table.
type fdSelectRange struct {
	first glyph.ID
	fd    uint8
}

// fdSelectPlan describes the re-encoded FDSelect table of a subset.
type fdSelectPlan struct {
	format  byte
	size    int32
	ranges  []fdSelectRange
	fdCount int
	fdMap   fdMap
}

// planFDSelect decides how the glyph-to-font-dict assignment is
// re-encoded for the retained glyphs.  Retained font dicts are numbered
// in the order they are first used; if this keeps all font dicts, the
// original numbering is kept instead and the caller copies the original
// table.
func planFDSelect(fdSelect FdSelectFn, nFonts int, glyphs []glyph.ID) (*fdSelectPlan, error) {
	plan := &fdSelectPlan{
		fdMap: make(fdMap, nFonts),
	}

	prev := -1
	for i, gid := range glyphs {
		fd := fdSelect(gid)
		if fd < 0 || fd >= nFonts {
			return nil, invalidSince("FDSelect out of range")
		}
		e := &plan.fdMap[fd]
		if !e.retained {
			*e = fdMapEntry{newIdx: plan.fdCount, retained: true}
			plan.fdCount++
		}
		if e.newIdx != prev {
			plan.ranges = append(plan.ranges,
				fdSelectRange{first: glyph.ID(i), fd: uint8(e.newIdx)})
			prev = e.newIdx
		}
	}

	if plan.fdCount == nFonts {
		// No font dict is dropped, so no renumbering takes place.
		plan.fdMap.setIdentity()
	}

	plan.format = 0
	plan.size = int32(1 + len(glyphs))
	if size3 := int32(3 + 3*len(plan.ranges) + 2); size3 < plan.size {
		plan.format = 3
		plan.size = size3
	}

	return plan, nil
}

func writeFDSelect(s *sink, plan *fdSelectPlan, glyphs []glyph.ID, fdSelect FdSelectFn) {
	s.putUint8(plan.format)
	switch plan.format {
	case 0:
		for _, gid := range glyphs {
			s.putUint8(uint8(plan.fdMap[fdSelect(gid)].newIdx))
		}
	case 3:
		s.putUint16(uint16(len(plan.ranges)))
		for _, r := range plan.ranges {
			s.putUint16(uint16(r.first))
			s.putUint8(r.fd)
		}
		s.putUint16(uint16(len(glyphs)))
	}
}
