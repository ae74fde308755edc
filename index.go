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

// readIndex decodes the CFF2 INDEX starting at buf[pos].  The entries
// are returned as sub-slices of buf, together with the total encoded
// length of the INDEX.
func readIndex(buf []byte, pos int) ([][]byte, int, error) {
	if pos < 0 || pos+4 > len(buf) {
		return nil, 0, invalidSince("INDEX out of bounds")
	}
	count := int(uint32(buf[pos])<<24 | uint32(buf[pos+1])<<16 |
		uint32(buf[pos+2])<<8 | uint32(buf[pos+3]))
	if count == 0 {
		return nil, 4, nil
	}

	if pos+5 > len(buf) {
		return nil, 0, invalidSince("INDEX out of bounds")
	}
	offSize := int(buf[pos+4])
	if offSize < 1 || offSize > 4 {
		return nil, 0, invalidSince("invalid INDEX offset size")
	}

	dataStart := pos + 5 + (count+1)*offSize
	if dataStart < 0 || dataStart > len(buf) {
		return nil, 0, invalidSince("INDEX out of bounds")
	}

	offsets := make([]int, count+1)
	prev := 1
	for i := 0; i <= count; i++ {
		offs := 0
		for _, x := range buf[pos+5+i*offSize : pos+5+(i+1)*offSize] {
			offs = offs<<8 + int(x)
		}
		if offs < prev || dataStart+offs-1 > len(buf) {
			return nil, 0, invalidSince("invalid INDEX")
		}
		offsets[i] = offs - 1
		prev = offs
	}

	res := make([][]byte, count)
	for i := 0; i < count; i++ {
		res[i] = buf[dataStart+offsets[i] : dataStart+offsets[i+1]]
	}

	return res, dataStart - pos + offsets[count], nil
}

// indexSize returns the number of bytes needed for a CFF2 INDEX with
// the given offset width, entry count and total data size.  It must
// agree exactly with what writeIndex emits.
func indexSize(offSize byte, count, dataSize int) int32 {
	if count == 0 {
		return 4
	}
	return int32(4 + 1 + (count+1)*int(offSize) + dataSize)
}

func writeIndex(s *sink, offSize byte, data [][]byte) {
	count := len(data)
	s.putUint32(uint32(count))
	if count == 0 {
		return
	}

	s.putUint8(offSize)
	pos := uint32(1)
	for i := 0; i <= count; i++ {
		s.putFixed(int(offSize), pos)
		if i < count {
			pos += uint32(len(data[i]))
		}
	}
	for i := 0; i < count; i++ {
		s.putBytes(data[i])
	}
}

// offsSize returns the width of the smallest unsigned integer encoding
// which can hold i.
func offsSize(i int32) byte {
	switch {
	case i < 1<<8:
		return 1
	case i < 1<<16:
		return 2
	case i < 1<<24:
		return 3
	default:
		return 4
	}
}
