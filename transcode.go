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

// The dict transcoders rewrite DICT operator streams for the subset
// table.  Most operators are copied byte for byte.  Operators which
// carry an offset into the table are re-encoded with maximal-width
// operands, so that the size of a transcoded DICT is known before the
// offsets are.  For every transcoder, opSize must return exactly the
// number of bytes emitOp writes, independently of the operand values.

type dictTranscoder interface {
	opSize(tok dictToken) int32
	emitOp(s *sink, tok dictToken)
}

// transcodedSize is the measuring pass over a DICT.
func transcodedSize(d dictTokens, t dictTranscoder) int32 {
	var size int32
	for _, tok := range d {
		size += t.opSize(tok)
	}
	return size
}

// transcodeDict is the writing pass over a DICT.
func transcodeDict(s *sink, d dictTokens, t dictTranscoder) {
	for _, tok := range d {
		t.emitOp(s, tok)
	}
}

// topDictTranscoder rewrites the offsets to the variation store, the
// charstring INDEX, the font dict array and the FDSelect table.
type topDictTranscoder struct {
	varStore    int32
	charStrings int32
	fdArray     int32
	fdSelect    int32
}

func (t *topDictTranscoder) opSize(tok dictToken) int32 {
	switch tok.op {
	case opVStore, opCharStrings, opFDArray, opFDSelect:
		return 1 + 4 + opLen(tok.op)
	}
	return int32(len(tok.data))
}

func (t *topDictTranscoder) emitOp(s *sink, tok dictToken) {
	switch tok.op {
	case opVStore:
		putOffsetOp(s, tok.op, t.varStore)
	case opCharStrings:
		putOffsetOp(s, tok.op, t.charStrings)
	case opFDArray:
		putOffsetOp(s, tok.op, t.fdArray)
	case opFDSelect:
		putOffsetOp(s, tok.op, t.fdSelect)
	default:
		s.putBytes(tok.data)
	}
}

// fontDictTranscoder rewrites the size and offset of the private dict.
type fontDictTranscoder struct {
	privSize   int32
	privOffset int32
}

func (t *fontDictTranscoder) opSize(tok dictToken) int32 {
	if tok.op == opPrivate {
		return (1 + 2) + (1 + 4) + 1
	}
	return int32(len(tok.data))
}

func (t *fontDictTranscoder) emitOp(s *sink, tok dictToken) {
	if tok.op == opPrivate {
		putInt16Operand(s, t.privSize)
		putInt32Operand(s, t.privOffset)
		putOp(s, opPrivate)
		return
	}
	s.putBytes(tok.data)
}

// privateDictTranscoder rewrites the offset to the local subrs.  Local
// subrs are placed immediately after their private dict, so the offset
// equals the size of the transcoded private dict.
type privateDictTranscoder struct {
	subrs int32
}

func (t *privateDictTranscoder) opSize(tok dictToken) int32 {
	if tok.op == opSubrs {
		return 1 + 2 + 1
	}
	return int32(len(tok.data))
}

func (t *privateDictTranscoder) emitOp(s *sink, tok dictToken) {
	if tok.op == opSubrs {
		putInt16Operand(s, t.subrs)
		putOp(s, opSubrs)
		return
	}
	s.putBytes(tok.data)
}

// opLen returns the encoded length of a DICT operator code.
func opLen(op dictOp) int32 {
	if op > 255 {
		return 2
	}
	return 1
}

func putOp(s *sink, op dictOp) {
	if op > 255 {
		s.putUint8(12)
	}
	s.putUint8(byte(op))
}

// putInt16Operand writes x as a 3-byte integer operand (code 28).
func putInt16Operand(s *sink, x int32) {
	s.putUint8(28)
	s.putUint16(uint16(x))
}

// putInt32Operand writes x as a 5-byte integer operand (code 29).
func putInt32Operand(s *sink, x int32) {
	s.putUint8(29)
	s.putUint32(uint32(x))
}

func putOffsetOp(s *sink, op dictOp, offs int32) {
	putInt32Operand(s, offs)
	putOp(s, op)
}
