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

// sectionInfo records where a section lands in the subset table.
// Offsets are measured from the start of the table.
type sectionInfo struct {
	offset int32
	size   int32
}

// subsetPlan records the complete layout of the subset table before a
// single byte is written.  The table writer follows the plan section by
// section and must reach exactly the recorded offsets.
type subsetPlan struct {
	finalSize int32

	topDictSize        int32
	varStoreOffset     int32 // 0 if the font has no variation store
	fdSelectOffset     int32 // 0 if the font has no FDSelect table
	fdSelectSize       int32
	fdArrayOffset      int32
	fdArrayOffSize     byte
	charStringsOffset  int32
	charStringsOffSize byte
	privateDictsOffset int32

	origFDCount int
	fdCount     int
	fdMap       fdMap
	fdSelect    *fdSelectPlan // nil if the font has no FDSelect table

	// charStrings holds the retained charstrings, in new glyph order.
	charStrings [][]byte

	// privateDicts gives the placement of the private dict of each
	// original font dict.  Private dicts of excluded font dicts are
	// still written, so that the local subr offsets of the following
	// dicts do not change.
	privateDicts []sectionInfo
}

// isFDSubsetted reports whether the subset uses fewer font dicts than
// the original font.
func (plan *subsetPlan) isFDSubsetted() bool {
	return plan.fdCount < plan.origFDCount
}

// makeSubsetPlan walks the sections of the subset table in file order
// and records the size and offset of each.  No bytes are written here;
// all sizes come from the same transcoders the table writer uses.
func makeSubsetPlan(f *Font, glyphs []glyph.ID) (*subsetPlan, error) {
	plan := &subsetPlan{
		origFDCount: len(f.fontDicts),
	}

	size := int32(headerSize)

	// top dict
	topSzr := &topDictTranscoder{}
	plan.topDictSize = transcodedSize(f.topDict, topSzr)
	size += plan.topDictSize

	// global subrs
	size += int32(len(f.gsubrs))

	// variation store
	if f.varStore != nil {
		plan.varStoreOffset = size
		size += int32(len(f.varStore))
	}

	// FDSelect
	plan.fdCount = plan.origFDCount
	plan.fdMap = make(fdMap, plan.origFDCount)
	plan.fdMap.setIdentity()
	if f.fdSelect != nil {
		plan.fdSelectOffset = size
		sel, err := planFDSelect(f.fdSelect, plan.origFDCount, glyphs)
		if err != nil {
			return nil, err
		}
		plan.fdSelect = sel
		if sel.fdCount < plan.origFDCount {
			plan.fdCount = sel.fdCount
			plan.fdMap = sel.fdMap
			plan.fdSelectSize = sel.size
		} else {
			// All font dicts are still used; the original table is
			// copied unchanged, covering the original glyph count.
			plan.fdSelectSize = int32(len(f.fdSelectData))
		}
		size += plan.fdSelectSize
	}

	// FDArray
	plan.fdArrayOffset = size
	fdSzr := &fontDictTranscoder{}
	var fdDataSize int32
	for i := range f.fontDicts {
		if !plan.fdMap[i].retained {
			continue
		}
		fdDataSize += transcodedSize(f.fontDicts[i].dict, fdSzr)
	}
	plan.fdArrayOffSize = offsSize(fdDataSize + 1)
	size += indexSize(plan.fdArrayOffSize, plan.fdCount, int(fdDataSize))

	// charstrings
	plan.charStringsOffset = size
	dataSize := 0
	plan.charStrings = make([][]byte, 0, len(glyphs))
	for _, gid := range glyphs {
		str := f.charStrings[gid]
		plan.charStrings = append(plan.charStrings, str)
		dataSize += len(str)
	}
	plan.charStringsOffSize = offsSize(int32(dataSize) + 1)
	size += indexSize(plan.charStringsOffSize, len(glyphs), dataSize)

	// private dicts and local subrs
	plan.privateDictsOffset = size
	privSzr := &privateDictTranscoder{}
	for i := range f.fontDicts {
		pdSize := transcodedSize(f.fontDicts[i].private, privSzr)
		plan.privateDicts = append(plan.privateDicts,
			sectionInfo{offset: size, size: pdSize})
		size += pdSize + int32(len(f.fontDicts[i].subrs))
	}

	plan.finalSize = size
	return plan, nil
}
