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
	"math"
	"strconv"
)

// dictToken is one operator of a DICT, together with the operands
// leading up to it.  The data field holds the complete original
// encoding, operand bytes followed by the operator bytes, so that
// tokens can be copied into a new DICT without renormalizing numbers.
type dictToken struct {
	op   dictOp
	args []int32
	data []byte
}

type dictTokens []dictToken

// decodeDictTokens splits a CFF2 DICT into its operators.  The returned
// tokens share storage with buf.
func decodeDictTokens(buf []byte) (dictTokens, error) {
	var res dictTokens
	var args []int32

	start := 0
	pos := 0
	flush := func(op dictOp) {
		res = append(res, dictToken{op: op, args: args, data: buf[start:pos]})
		args = nil
		start = pos
	}

	for pos < len(buf) {
		b0 := buf[pos]
		switch {
		case b0 == 12:
			if pos+2 > len(buf) {
				return nil, errCorruptDict
			}
			pos += 2
			flush(dictOp(12)<<8 + dictOp(buf[pos-1]))
		case b0 <= 24: // operators, including vsindex, blend and vstore
			pos++
			flush(dictOp(b0))
		case b0 <= 27: // values 25-27, 31, and 255 are reserved
			return nil, errCorruptDict
		case b0 == 28:
			if pos+3 > len(buf) {
				return nil, errCorruptDict
			}
			args = append(args,
				int32(int16(uint16(buf[pos+1])<<8|uint16(buf[pos+2]))))
			pos += 3
		case b0 == 29:
			if pos+5 > len(buf) {
				return nil, errCorruptDict
			}
			args = append(args, int32(uint32(buf[pos+1])<<24|
				uint32(buf[pos+2])<<16|
				uint32(buf[pos+3])<<8|
				uint32(buf[pos+4])))
			pos += 5
		case b0 == 30:
			k, x, err := decodeFloat(buf[pos+1:])
			if err != nil {
				return nil, err
			}
			args = append(args, int32(math.Round(x)))
			pos += 1 + k
		case b0 == 31: // values 25-27, 31, and 255 are reserved
			return nil, errCorruptDict
		case b0 <= 246:
			args = append(args, int32(b0)-139)
			pos++
		case b0 <= 250:
			if pos+2 > len(buf) {
				return nil, errCorruptDict
			}
			args = append(args, int32(b0)*256+int32(buf[pos+1])+(108-247*256))
			pos += 2
		case b0 <= 254:
			if pos+2 > len(buf) {
				return nil, errCorruptDict
			}
			args = append(args, -int32(b0)*256-int32(buf[pos+1])-(108-251*256))
			pos += 2
		default: // values 25-27, 31, and 255 are reserved
			return nil, errCorruptDict
		}
	}

	if len(args) > 0 {
		return nil, errCorruptDict
	}

	return res, nil
}

// decodes a float (without the leading 0x1e), returning the number of
// bytes consumed
func decodeFloat(buf []byte) (int, float64, error) {
	var s []byte

	used := 0
	first := true
	var next byte
	for {
		var nibble byte
		if first {
			if used >= len(buf) {
				return 0, 0, errCorruptDict
			}
			next = buf[used]
			used++
			nibble = next >> 4
			next = next & 15
			first = false
		} else {
			nibble = next
			first = true
		}

		switch nibble {
		case 0x0a:
			s = append(s, '.')
		case 0x0b:
			s = append(s, 'e')
		case 0x0c:
			s = append(s, 'e', '-')
		case 0x0d: // reserved
			return 0, 0, errCorruptDict
		case 0x0e:
			s = append(s, '-')
		case 0x0f:
			x, err := strconv.ParseFloat(string(s), 64)
			if err != nil {
				return 0, 0, errCorruptDict
			}
			return used, x, nil
		default:
			s = append(s, '0'+nibble)
		}
	}
}

func (d dictTokens) getInt(op dictOp) (int32, bool) {
	for _, tok := range d {
		if tok.op == op && len(tok.args) == 1 {
			return tok.args[0], true
		}
	}
	return 0, false
}

func (d dictTokens) getPair(op dictOp) (int32, int32, bool) {
	for _, tok := range d {
		if tok.op == op && len(tok.args) == 2 {
			return tok.args[0], tok.args[1], true
		}
	}
	return 0, 0, false
}

type dictOp uint16

func (d dictOp) String() string {
	switch d {
	case opBlueValues:
		return "BlueValues"
	case opOtherBlues:
		return "OtherBlues"
	case opFamilyBlues:
		return "FamilyBlues"
	case opFamilyOtherBlues:
		return "FamilyOtherBlues"
	case opStdHW:
		return "StdHW"
	case opStdVW:
		return "StdVW"
	case opCharStrings:
		return "CharStrings"
	case opPrivate:
		return "Private"
	case opSubrs:
		return "Subrs"
	case opVSIndex:
		return "vsindex"
	case opBlend:
		return "blend"
	case opVStore:
		return "vstore"
	case opFontMatrix:
		return "FontMatrix"
	case opFDArray:
		return "FDArray"
	case opFDSelect:
		return "FDSelect"
	default:
		if d < 256 {
			return fmt.Sprintf("%d", uint16(d))
		}
		return fmt.Sprintf("%d %d", uint16(d)>>8, uint16(d)&0xff)
	}
}

const (
	// top DICT operators
	opCharStrings dictOp = 0x0011
	opVStore      dictOp = 0x0018
	opFontMatrix  dictOp = 0x0C07
	opFDArray     dictOp = 0x0C24
	opFDSelect    dictOp = 0x0C25

	// font DICT operators
	opPrivate dictOp = 0x0012

	// private DICT operators
	opBlueValues       dictOp = 0x0006
	opOtherBlues       dictOp = 0x0007
	opFamilyBlues      dictOp = 0x0008
	opFamilyOtherBlues dictOp = 0x0009
	opStdHW            dictOp = 0x000A
	opStdVW            dictOp = 0x000B
	opSubrs            dictOp = 0x0013 // offset (self) to local subrs
	opVSIndex          dictOp = 0x0016
	opBlend            dictOp = 0x0017
	opBlueScale        dictOp = 0x0C09
	opBlueShift        dictOp = 0x0C0A
	opBlueFuzz         dictOp = 0x0C0B
	opStemSnapH        dictOp = 0x0C0C
	opStemSnapV        dictOp = 0x0C0D
	opLanguageGroup    dictOp = 0x0C11
	opExpansionFactor  dictOp = 0x0C12
)
