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

	"seehuhn.de/go/sfnt/glyph"
)

// sink writes into a pre-allocated buffer of fixed size.  The first
// write past the end of the buffer puts the sink into a permanent error
// state which checkpoint reports.
type sink struct {
	buf []byte
	pos int
	err error
}

func newSink(buf []byte) *sink {
	return &sink{buf: buf}
}

func (s *sink) putBytes(b []byte) {
	if s.err != nil {
		return
	}
	if s.pos+len(b) > len(s.buf) {
		s.err = errOverrun
		return
	}
	copy(s.buf[s.pos:], b)
	s.pos += len(b)
}

func (s *sink) putUint8(x uint8) {
	if s.err != nil {
		return
	}
	if s.pos+1 > len(s.buf) {
		s.err = errOverrun
		return
	}
	s.buf[s.pos] = x
	s.pos++
}

// putFixed writes x as a big-endian integer of the given width.
func (s *sink) putFixed(width int, x uint32) {
	if s.err != nil {
		return
	}
	if s.pos+width > len(s.buf) {
		s.err = errOverrun
		return
	}
	for i := 0; i < width; i++ {
		s.buf[s.pos+i] = byte(x >> (8 * (width - i - 1)))
	}
	s.pos += width
}

func (s *sink) putUint16(x uint16) {
	s.putFixed(2, uint32(x))
}

func (s *sink) putUint32(x uint32) {
	s.putFixed(4, x)
}

// checkpoint verifies that the write position matches the offset the
// subset plan recorded for the next section.  A mismatch means the size
// calculation and the writer disagree.
func (s *sink) checkpoint(offset int32) error {
	if s.err != nil {
		return s.err
	}
	if int32(s.pos) != offset {
		return fmt.Errorf("cff2: section starts at %d, but %d was planned",
			s.pos, offset)
	}
	return nil
}

// writeTable serializes the subset table into a buffer of exactly
// plan.finalSize bytes.  Sections are written in the same order the
// plan builder measured them, and each section start is checked against
// the planned offset.
func writeTable(plan *subsetPlan, f *Font, glyphs []glyph.ID) ([]byte, error) {
	buf := make([]byte, plan.finalSize)
	s := newSink(buf)

	// header
	s.putUint8(2)
	s.putUint8(0)
	s.putUint8(headerSize)
	s.putUint16(uint16(plan.topDictSize))

	// top dict
	if err := s.checkpoint(headerSize); err != nil {
		return nil, err
	}
	topSzr := &topDictTranscoder{
		varStore:    plan.varStoreOffset,
		charStrings: plan.charStringsOffset,
		fdArray:     plan.fdArrayOffset,
		fdSelect:    plan.fdSelectOffset,
	}
	transcodeDict(s, f.topDict, topSzr)

	// global subrs
	if err := s.checkpoint(headerSize + plan.topDictSize); err != nil {
		return nil, err
	}
	s.putBytes(f.gsubrs)

	// variation store
	if f.varStore != nil {
		if err := s.checkpoint(plan.varStoreOffset); err != nil {
			return nil, err
		}
		s.putBytes(f.varStore)
	}

	// FDSelect
	if f.fdSelect != nil {
		if err := s.checkpoint(plan.fdSelectOffset); err != nil {
			return nil, err
		}
		if plan.isFDSubsetted() {
			writeFDSelect(s, plan.fdSelect, glyphs, f.fdSelect)
		} else {
			s.putBytes(f.fdSelectData)
		}
	}

	// FDArray
	if err := s.checkpoint(plan.fdArrayOffset); err != nil {
		return nil, err
	}
	writeFDArray(s, plan, f)

	// charstrings
	if err := s.checkpoint(plan.charStringsOffset); err != nil {
		return nil, err
	}
	writeIndex(s, plan.charStringsOffSize, plan.charStrings)

	// private dicts and local subrs
	if err := s.checkpoint(plan.privateDictsOffset); err != nil {
		return nil, err
	}
	for i := range f.fontDicts {
		info := plan.privateDicts[i]
		if err := s.checkpoint(info.offset); err != nil {
			return nil, err
		}
		privSzr := &privateDictTranscoder{subrs: info.size}
		transcodeDict(s, f.fontDicts[i].private, privSzr)
		s.putBytes(f.fontDicts[i].subrs)
	}

	if err := s.checkpoint(plan.finalSize); err != nil {
		return nil, err
	}
	return buf, nil
}

// writeFDArray serializes the INDEX of the retained font dicts, in
// their new order.
func writeFDArray(s *sink, plan *subsetPlan, f *Font) {
	// invert the font dict remap
	order := make([]int, plan.fdCount)
	for i, e := range plan.fdMap {
		if e.retained {
			order[e.newIdx] = i
		}
	}

	s.putUint32(uint32(plan.fdCount))
	if plan.fdCount == 0 {
		return
	}

	s.putUint8(plan.fdArrayOffSize)
	pos := uint32(1)
	szr := &fontDictTranscoder{}
	for k := 0; k <= plan.fdCount; k++ {
		s.putFixed(int(plan.fdArrayOffSize), pos)
		if k < plan.fdCount {
			pos += uint32(transcodedSize(f.fontDicts[order[k]].dict, szr))
		}
	}
	for _, i := range order {
		info := plan.privateDicts[i]
		fdSzr := &fontDictTranscoder{
			privSize:   info.size,
			privOffset: info.offset,
		}
		transcodeDict(s, f.fontDicts[i].dict, fdSzr)
	}
}
