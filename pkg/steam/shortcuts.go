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
	"bytes"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/steamflowproject/steamflow/internal/vdfbinary"
)

// ScanShortcuts collects non-Steam game shortcuts from every user's
// shortcuts.vdf under the install directory. Hidden shortcuts and
// entries without a name are skipped. Failures are logged and skipped
// so one broken user profile never hides the rest.
func ScanShortcuts(installDir string) []AppInfo {
	var apps []AppInfo

	userdataDir := filepath.Join(installDir, "userdata")
	userDirs, err := os.ReadDir(userdataDir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", userdataDir).Msg("error reading userdata directory")
		}
		return apps
	}

	for _, userDir := range userDirs {
		if !userDir.IsDir() {
			continue
		}

		path := filepath.Join(userdataDir, userDir.Name(), "config", "shortcuts.vdf")
		//nolint:gosec // Path is built from Steam's own directory layout
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				log.Warn().Err(err).Str("path", path).Msg("error reading shortcuts.vdf")
			}
			continue
		}

		shortcuts, err := vdfbinary.ParseShortcuts(bytes.NewReader(data))
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("error parsing shortcuts.vdf")
			continue
		}

		for _, shortcut := range shortcuts {
			if shortcut.AppName == "" || shortcut.IsHidden {
				continue
			}
			apps = append(apps, AppInfo{
				AppID: strconv.FormatUint(shortcutLaunchID(shortcut.AppID), 10),
				Name:  shortcut.AppName,
			})
		}
	}

	return apps
}

// shortcutLaunchID converts a 32-bit shortcut app ID into the 64-bit
// ID the steam://rungameid/ scheme expects for non-Steam games.
func shortcutLaunchID(appID uint32) uint64 {
	return (uint64(appID) << 32) | 0x02000000
}
