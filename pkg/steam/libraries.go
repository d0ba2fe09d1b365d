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

package steam

import (
	"os"
	"path/filepath"

	"github.com/andygrunwald/vdf"
	"github.com/rs/zerolog/log"
)

// LibraryDirs enumerates all steamapps directories for a Steam
// install: the primary one under installDir plus every additional
// library declared in libraryfolders.vdf, deduplicated by path. A
// missing or malformed descriptor file only drops the extra
// libraries, never the primary one.
func LibraryDirs(installDir string) []string {
	var dirs []string
	if installDir == "" {
		return dirs
	}

	seen := make(map[string]bool)
	primary := filepath.Join(installDir, "steamapps")
	if _, err := os.Stat(primary); err == nil {
		dirs = append(dirs, primary)
		seen[primary] = true
	}

	for _, extra := range descriptorLibraryDirs(filepath.Join(primary, "libraryfolders.vdf")) {
		if seen[extra] {
			continue
		}
		if _, err := os.Stat(extra); err != nil {
			continue
		}
		dirs = append(dirs, extra)
		seen[extra] = true
	}

	return dirs
}

// descriptorLibraryDirs parses libraryfolders.vdf and returns the
// steamapps directory of every numbered library entry that declares a
// path. Any failure returns an empty list.
func descriptorLibraryDirs(descriptorPath string) []string {
	var dirs []string

	//nolint:gosec // Safe: reads Steam config files for library scanning
	f, err := os.Open(descriptorPath)
	if err != nil {
		log.Debug().Err(err).Msg("no libraryfolders.vdf")
		return dirs
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing libraryfolders.vdf")
		}
	}()

	p := vdf.NewParser(f)
	m, err := p.Parse()
	if err != nil {
		log.Warn().Err(err).Msg("error parsing libraryfolders.vdf")
		return dirs
	}
	m = normalizeVDFKeys(m)

	lfs, ok := m["libraryfolders"].(map[string]any)
	if !ok {
		log.Warn().Msg("libraryfolders is not a map")
		return dirs
	}

	for key, v := range lfs {
		if !isDigits(key) {
			continue
		}
		folder, ok := v.(map[string]any)
		if !ok {
			log.Warn().Msgf("library %s is not a map", key)
			continue
		}
		path, ok := folder["path"].(string)
		if !ok {
			continue
		}
		dirs = append(dirs, filepath.Join(path, "steamapps"))
	}

	return dirs
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
