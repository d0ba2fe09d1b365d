// SteamFlow Backend
// Copyright (c) 2026 The SteamFlow Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of SteamFlow Backend.
//
// SteamFlow Backend is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// SteamFlow Backend is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with SteamFlow Backend.  If not, see <http://www.gnu.org/licenses/>.

package results

import (
	"sort"
	"strings"
)

// localMatch is an installed game whose name contains the search term.
type localMatch struct {
	appID string
	name  string
	pos   int
}

// matchInstalled finds installed games whose names contain term as a
// case-insensitive substring, ranked by earliest match position, then
// by name length so tighter matches come first, then by name for a
// stable order. At most limit matches are returned.
func matchInstalled(games map[string]string, term string, limit int) []localMatch {
	needle := strings.ToLower(term)

	matches := make([]localMatch, 0, len(games))
	for appID, name := range games {
		pos := strings.Index(strings.ToLower(name), needle)
		if pos < 0 {
			continue
		}
		matches = append(matches, localMatch{appID: appID, name: name, pos: pos})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].pos != matches[j].pos {
			return matches[i].pos < matches[j].pos
		}
		if len(matches[i].name) != len(matches[j].name) {
			return len(matches[i].name) < len(matches[j].name)
		}
		return matches[i].name < matches[j].name
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
