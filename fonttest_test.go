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

// testFont describes a synthetic CFF2 table for use in tests.

type testFont struct {
	charStrings [][]byte
	gsubrs      [][]byte
	varStore    []byte // payload without the length prefix; nil = absent
	fds         []testFD
	fdRanges    []testFDRange // nil = no FDSelect table
	fdFormat    byte          // 0 or 3
}

type testFD struct {
	stemWidth int32    // written as a StdVW operator, to give the dict some bulk
	subrs     [][]byte // local subrs; nil means no Subrs operator
}

type testFDRange struct {
	first int
	fd    int
}

// fdOf returns the font dict of a glyph, per the fdRanges.
func (tf *testFont) fdOf(gid glyph.ID) int {
	fd := 0
	for _, r := range tf.fdRanges {
		if int(gid) >= r.first {
			fd = r.fd
		}
	}
	return fd
}

// encode serializes the test font as a CFF2 table.  The layout follows
// the canonical section order; all top dict offsets use the 5-byte
// integer encoding so that section sizes can be computed up front.
func (tf *testFont) encode() []byte {
	nGlyphs := len(tf.charStrings)
	n := len(tf.fds)

	privs := make([][]byte, n)
	subrs := make([][]byte, n)
	for i, fd := range tf.fds {
		var buf []byte
		buf = appendIntOperand(buf, fd.stemWidth)
		buf = append(buf, byte(opStdVW))
		if fd.subrs != nil {
			subrs[i] = encodeTestIndex(fd.subrs)
			offs := len(buf) + 4 // the local subrs follow the private dict
			buf = append(buf, 28, byte(offs>>8), byte(offs), byte(opSubrs))
		}
		privs[i] = buf
	}

	topDictLen := 6 + 7 // CharStrings, FDArray
	if tf.fdRanges != nil {
		topDictLen += 7
	}
	if tf.varStore != nil {
		topDictLen += 6
	}

	gsubrsBlob := encodeTestIndex(tf.gsubrs)

	pos := headerSize + topDictLen + len(gsubrsBlob)
	vstorePos := 0
	if tf.varStore != nil {
		vstorePos = pos
		pos += 2 + len(tf.varStore)
	}
	fdSelectPos := 0
	var fdSelectBlob []byte
	if tf.fdRanges != nil {
		fdSelectBlob = tf.encodeFDSelect(nGlyphs)
		fdSelectPos = pos
		pos += len(fdSelectBlob)
	}

	// every font dict is 9 bytes: Private size, offset and operator
	fdArrayPos := pos
	fdArrayOffSize := offsSize(int32(9*n) + 1)
	pos += int(indexSize(fdArrayOffSize, n, 9*n))

	charStringsPos := pos
	csBlob := encodeTestIndex(tf.charStrings)
	pos += len(csBlob)

	privPos := make([]int, n)
	for i := range tf.fds {
		privPos[i] = pos
		pos += len(privs[i]) + len(subrs[i])
	}

	buf := make([]byte, pos)
	s := newSink(buf)
	s.putUint8(2)
	s.putUint8(0)
	s.putUint8(headerSize)
	s.putUint16(uint16(topDictLen))

	putOffsetOp(s, opCharStrings, int32(charStringsPos))
	putOffsetOp(s, opFDArray, int32(fdArrayPos))
	if tf.fdRanges != nil {
		putOffsetOp(s, opFDSelect, int32(fdSelectPos))
	}
	if tf.varStore != nil {
		putOffsetOp(s, opVStore, int32(vstorePos))
	}

	s.putBytes(gsubrsBlob)
	if tf.varStore != nil {
		s.putUint16(uint16(len(tf.varStore)))
		s.putBytes(tf.varStore)
	}
	if tf.fdRanges != nil {
		s.putBytes(fdSelectBlob)
	}

	fontDicts := make([][]byte, n)
	for i := range tf.fds {
		d := []byte{28, byte(len(privs[i]) >> 8), byte(len(privs[i]))}
		d = append(d, 29,
			byte(privPos[i]>>24), byte(privPos[i]>>16),
			byte(privPos[i]>>8), byte(privPos[i]))
		fontDicts[i] = append(d, byte(opPrivate))
	}
	writeIndex(s, fdArrayOffSize, fontDicts)

	s.putBytes(csBlob)
	for i := range tf.fds {
		s.putBytes(privs[i])
		s.putBytes(subrs[i])
	}

	if s.err != nil || s.pos != len(buf) {
		panic("test font layout is inconsistent")
	}
	return buf
}

func (tf *testFont) encodeFDSelect(nGlyphs int) []byte {
	if tf.fdFormat == 0 {
		buf := make([]byte, 1+nGlyphs)
		for i := 0; i < nGlyphs; i++ {
			buf[1+i] = byte(tf.fdOf(glyph.ID(i)))
		}
		return buf
	}

	buf := []byte{3, byte(len(tf.fdRanges) >> 8), byte(len(tf.fdRanges))}
	for _, r := range tf.fdRanges {
		buf = append(buf, byte(r.first>>8), byte(r.first), byte(r.fd))
	}
	return append(buf, byte(nGlyphs>>8), byte(nGlyphs))
}

func encodeTestIndex(data [][]byte) []byte {
	dataSize := 0
	for _, blob := range data {
		dataSize += len(blob)
	}
	offSize := offsSize(int32(dataSize) + 1)
	buf := make([]byte, indexSize(offSize, len(data), dataSize))
	s := newSink(buf)
	writeIndex(s, offSize, data)
	if s.err != nil {
		panic("test INDEX layout is inconsistent")
	}
	return buf
}

func appendIntOperand(buf []byte, x int32) []byte {
	switch {
	case x >= -107 && x <= 107:
		return append(buf, byte(x+139))
	case x >= -32768 && x <= 32767:
		return append(buf, 28, byte(uint16(x)>>8), byte(uint16(x)))
	default:
		x32 := uint32(x)
		return append(buf, 29,
			byte(x32>>24), byte(x32>>16), byte(x32>>8), byte(x32))
	}
}

// tenGlyphFont is the standard fixture: ten glyphs spread over three
// font dicts.
func tenGlyphFont() *testFont {
	charStrings := make([][]byte, 10)
	for i := range charStrings {
		cs := []byte{byte(i + 1)}
		for j := 0; j < i; j++ {
			cs = append(cs, byte(j))
		}
		charStrings[i] = append(cs, 0x0e)
	}

	return &testFont{
		charStrings: charStrings,
		gsubrs:      [][]byte{{0x0b}},
		varStore:    []byte{0, 1, 2, 3, 4, 5},
		fds: []testFD{
			{stemWidth: 50, subrs: [][]byte{{0x0b}, {0x0b, 0x0b}}},
			{stemWidth: 51},
			{stemWidth: 52, subrs: [][]byte{{0x0e}}},
		},
		fdRanges: []testFDRange{{0, 0}, {4, 1}, {7, 2}},
		fdFormat: 3,
	}
}
