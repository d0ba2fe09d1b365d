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

	"github.com/rs/zerolog/log"
	"golang.org/x/sys/windows/registry"
)

// FindInstallDir locates the Steam installation directory on Windows
// using the Registry. Returns "" when Steam cannot be found; callers
// treat that as "not installed".
func FindInstallDir(override string, opts Options) string {
	if override != "" {
		if _, err := os.Stat(override); err == nil {
			log.Debug().Msgf("using user-configured Steam directory: %s", override)
			return override
		}
		log.Warn().Msgf("user-configured Steam directory not found: %s", override)
	}

	keys := []struct {
		root registry.Key
		path string
	}{
		{registry.LOCAL_MACHINE, `SOFTWARE\Wow6432Node\Valve\Steam`},
		{registry.LOCAL_MACHINE, `SOFTWARE\Valve\Steam`},
		{registry.CURRENT_USER, `SOFTWARE\Valve\Steam`},
	}

	for _, k := range keys {
		key, err := registry.OpenKey(k.root, k.path, registry.QUERY_VALUE)
		if err != nil {
			continue
		}

		installPath, _, err := key.GetStringValue("InstallPath")
		if closeErr := key.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing registry key")
		}
		if err != nil {
			continue
		}

		if _, statErr := os.Stat(installPath); statErr == nil {
			log.Debug().Msgf("found Steam installation via registry: %s", installPath)
			return installPath
		}
	}

	if opts.FallbackPath != "" {
		if _, err := os.Stat(opts.FallbackPath); err == nil {
			log.Debug().Msgf("Steam registry detection failed, using fallback: %s", opts.FallbackPath)
			return opts.FallbackPath
		}
	}

	log.Debug().Msg("Steam installation not found")
	return ""
}
