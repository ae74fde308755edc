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

const headerSize = 5

// Font provides access to the sections of a CFF2 font table.
// Use the Read function to decode a CFF2 table.
//
// The section views share storage with the byte slice given to Read.
type Font struct {
	topDict dictTokens

	// gsubrs is the global subr INDEX, unparsed.
	gsubrs []byte

	// varStore is the variation store, including the length prefix.
	// It is nil if the font has no variation data.
	varStore []byte

	fdSelect     FdSelectFn // nil if the font has no FDSelect table
	fdSelectData []byte

	fontDicts []fontDictInfo

	charStrings [][]byte
}

// fontDictInfo is one font dict together with its private dict and
// local subrs.
type fontDictInfo struct {
	dict    dictTokens
	private dictTokens

	// subrs is the local subr INDEX, unparsed.  It is nil if the
	// private dict has no Subrs operator.
	subrs []byte
}

// Read decodes the CFF2 font table stored in data.
func Read(data []byte) (*Font, error) {
	font := &Font{}

	if len(data) < headerSize {
		return nil, invalidSince("table too short")
	}
	major := data[0]
	if major == 1 {
		return nil, notSupported("CFF version 1")
	} else if major != 2 {
		return nil, invalidSince("not a CFF2 table")
	}
	hdrSize := int(data[2])
	topDictLength := int(data[3])<<8 | int(data[4])
	if hdrSize < headerSize || hdrSize+topDictLength > len(data) {
		return nil, invalidSince("invalid table header")
	}

	var err error
	font.topDict, err = decodeDictTokens(data[hdrSize : hdrSize+topDictLength])
	if err != nil {
		return nil, err
	}

	// The global subr INDEX follows the top dict.
	_, gsubrsLen, err := readIndex(data, hdrSize+topDictLength)
	if err != nil {
		return nil, err
	}
	font.gsubrs = data[hdrSize+topDictLength : hdrSize+topDictLength+gsubrsLen]

	charStringsOffs, ok := font.topDict.getInt(opCharStrings)
	if !ok {
		return nil, invalidSince("missing CharStrings operator")
	}
	font.charStrings, _, err = readIndex(data, int(charStringsOffs))
	if err != nil {
		return nil, err
	}

	if vstoreOffs, ok := font.topDict.getInt(opVStore); ok {
		pos := int(vstoreOffs)
		if pos < 0 || pos+2 > len(data) {
			return nil, invalidSince("variation store out of bounds")
		}
		length := 2 + int(data[pos])<<8 + int(data[pos+1])
		if pos+length > len(data) {
			return nil, invalidSince("variation store out of bounds")
		}
		font.varStore = data[pos : pos+length]
	}

	fdArrayOffs, ok := font.topDict.getInt(opFDArray)
	if !ok {
		return nil, invalidSince("missing FDArray operator")
	}
	fontDicts, _, err := readIndex(data, int(fdArrayOffs))
	if err != nil {
		return nil, err
	}
	for _, blob := range fontDicts {
		info, err := readFontDict(data, blob)
		if err != nil {
			return nil, err
		}
		font.fontDicts = append(font.fontDicts, info)
	}

	if fdSelectOffs, ok := font.topDict.getInt(opFDSelect); ok {
		var length int
		font.fdSelect, length, err = readFDSelect(data, int(fdSelectOffs),
			len(font.charStrings), len(font.fontDicts))
		if err != nil {
			return nil, err
		}
		font.fdSelectData = data[int(fdSelectOffs) : int(fdSelectOffs)+length]
	}

	return font, nil
}

func readFontDict(data, blob []byte) (fontDictInfo, error) {
	info := fontDictInfo{}

	var err error
	info.dict, err = decodeDictTokens(blob)
	if err != nil {
		return info, err
	}

	privSize, privOffs, ok := info.dict.getPair(opPrivate)
	if !ok {
		// A font dict without private data is unusual but not invalid.
		return info, nil
	}
	if privOffs < 0 || privSize < 0 || int(privOffs)+int(privSize) > len(data) {
		return info, invalidSince("private dict out of bounds")
	}
	info.private, err = decodeDictTokens(data[privOffs : privOffs+privSize])
	if err != nil {
		return info, err
	}

	if subrsOffs, ok := info.private.getInt(opSubrs); ok {
		// The Subrs offset is relative to the start of the private dict.
		pos := int(privOffs) + int(subrsOffs)
		_, length, err := readIndex(data, pos)
		if err != nil {
			return info, err
		}
		info.subrs = data[pos : pos+length]
	}

	return info, nil
}

// NumGlyphs returns the number of glyphs in the font.
func (f *Font) NumGlyphs() int {
	return len(f.charStrings)
}

// NumFontDicts returns the number of font dicts in the font.
func (f *Font) NumFontDicts() int {
	return len(f.fontDicts)
}
