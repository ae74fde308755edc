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

import "errors"

// NotSupportedError indicates that the font data seems valid but uses a
// CFF2 feature which is not supported by this library.
type NotSupportedError struct {
	Feature string
}

func (err *NotSupportedError) Error() string {
	return "cff2: " + err.Feature + " not supported"
}

func notSupported(feature string) error {
	return &NotSupportedError{feature}
}

// InvalidTableError indicates a problem with the font data.
type InvalidTableError struct {
	Reason string
}

func (err *InvalidTableError) Error() string {
	return "cff2: " + err.Reason
}

func invalidSince(reason string) error {
	return &InvalidTableError{reason}
}

var (
	errCorruptDict = &InvalidTableError{Reason: "invalid DICT"}

	// errOverrun indicates that the table writer tried to write past the
	// size computed by the subset plan.  This cannot happen unless the
	// size calculation disagrees with the writer.
	errOverrun = errors.New("cff2: write past planned table size")
)
