/*
   FluxDisk - floppy track codec
   Copyright (c) 2021, Alexander Vollschwitz

   This file is part of FluxDisk.

   FluxDisk is free software: you can redistribute it and/or modify
   it under the terms of the GNU General Public License as published by
   the Free Software Foundation, either version 3 of the License, or
   (at your option) any later version.

   FluxDisk is distributed in the hope that it will be useful,
   but WITHOUT ANY WARRANTY; without even the implied warranty of
   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
   GNU General Public License for more details.

   You should have received a copy of the GNU General Public License
   along with FluxDisk. If not, see <http://www.gnu.org/licenses/>.
*/

package base

import (
	"strings"
)

//
type TrackType int

const (
	UNKNOWN TrackType = iota
	LEMMINGS
)

//
func GetTrackType(t string) TrackType {

	switch strings.ToLower(strings.TrimSpace(t)) {

	case "lemmings":
		return LEMMINGS

	default:
		return UNKNOWN
	}
}

//
func (t TrackType) String() string {

	switch t {

	case LEMMINGS:
		return "lemmings"

	default:
		return "<unknown>"
	}
}

//
func (t TrackType) DefaultFormat() string {

	switch t {

	case LEMMINGS:
		return "trk"

	default:
		return ""
	}
}

// TrackTypes lists all supported track types
func TrackTypes() []TrackType {
	return []TrackType{LEMMINGS}
}
