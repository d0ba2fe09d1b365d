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

//go:build !windows

package steam

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// FindInstallDir locates the Steam installation directory by probing
// conventional install locations. Returns "" when Steam cannot be
// found; callers treat that as "not installed".
func FindInstallDir(override string, opts Options) string {
	if override != "" {
		if _, err := os.Stat(override); err == nil {
			log.Debug().Msgf("using user-configured Steam directory: %s", override)
			return override
		}
		log.Warn().Msgf("user-configured Steam directory not found: %s", override)
	}

	candidates := make([]string, 0, len(opts.ExtraPaths)+1)
	candidates = append(candidates, opts.ExtraPaths...)
	if opts.FallbackPath != "" {
		candidates = append(candidates, opts.FallbackPath)
	}

	for _, candidate := range candidates {
		path := expandHome(candidate)
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			log.Debug().Msgf("found Steam installation: %s", path)
			return path
		}
	}

	log.Debug().Msg("Steam installation not found")
	return ""
}

// expandHome resolves a leading "~/" against the current user's home
// directory. Returns "" when the home directory cannot be determined.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, path[2:])
}
