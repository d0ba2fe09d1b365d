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

// Package icons resolves result icons: per-app artwork from Steam's
// local library cache for installed games, and cached square-padded
// thumbnails fetched from the store for remote listings.
package icons

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FallbackIcon is returned whenever no usable icon can be resolved.
// The launcher host resolves it relative to the plugin directory.
const FallbackIcon = "steam.png"

// excludedPrefixes are artwork variants in the library cache that are
// banners or logos rather than icons.
var excludedPrefixes = []string{"header", "library", "logo"}

// LocalIcon finds an icon for an installed game in Steam's library
// cache (<steam>/appcache/librarycache/<appID>). Candidates are the
// .jpg files not named like banner artwork, taken in lexicographic
// order so selection is deterministic. Returns FallbackIcon when the
// directory is absent, unreadable, or empty after filtering.
func LocalIcon(libraryCacheDir, appID string) string {
	if libraryCacheDir == "" || appID == "" {
		return FallbackIcon
	}

	dir := filepath.Join(libraryCacheDir, appID)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return FallbackIcon
	}

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := strings.ToLower(entry.Name())
		if filepath.Ext(name) != ".jpg" {
			continue
		}
		if hasExcludedPrefix(name) {
			continue
		}
		candidates = append(candidates, entry.Name())
	}
	if len(candidates) == 0 {
		return FallbackIcon
	}

	sort.Strings(candidates)
	return filepath.Join(dir, candidates[0])
}

func hasExcludedPrefix(name string) bool {
	for _, prefix := range excludedPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
