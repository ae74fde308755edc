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

// Cff2-subset extracts the CFF2 table from an OpenType font file and
// writes a subset of it containing only the given glyphs.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"

	"golang.org/x/exp/maps"
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/header"

	"seehuhn.de/go/cff2"
)

func main() {
	outName := flag.String("o", "subset.cff2", "output file name")
	list := flag.Bool("list", false, "list the tables in the font and exit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [options] font.otf gid ...\n",
			os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}
	fileName := args[0]

	font, err := os.Open(fileName)
	if err != nil {
		log.Fatal(err)
	}
	defer font.Close()

	info, err := header.Read(font)
	if err != nil {
		log.Fatal(fileName+":", err)
	}

	if *list {
		names := maps.Keys(info.Toc)
		sort.Slice(names, func(i, j int) bool {
			return info.Toc[names[i]].Offset < info.Toc[names[j]].Offset
		})
		for _, name := range names {
			rec := info.Toc[name]
			fmt.Printf("%4s %8d %8d\n", name, rec.Offset, rec.Length)
		}
		return
	}

	rec, ok := info.Toc["CFF2"]
	if !ok {
		log.Fatalf("%s: no CFF2 table", fileName)
	}
	data := make([]byte, rec.Length)
	_, err = font.ReadAt(data, int64(rec.Offset))
	if err != nil {
		log.Fatal(fileName+":", err)
	}

	var glyphs []glyph.ID
	for _, arg := range args[1:] {
		gid, err := strconv.ParseUint(arg, 10, 16)
		if err != nil {
			log.Fatalf("invalid glyph ID %q", arg)
		}
		glyphs = append(glyphs, glyph.ID(gid))
	}

	subset, err := cff2.Subset(data, glyphs)
	if err != nil {
		log.Fatal(fileName+":", err)
	}

	err = os.WriteFile(*outName, subset, 0o644)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s: %d glyphs, %d bytes\n", *outName, len(glyphs), len(subset))
}
