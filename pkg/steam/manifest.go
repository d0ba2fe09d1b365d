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
	"strings"

	"github.com/andygrunwald/vdf"
	"github.com/rs/zerolog/log"
)

// manifestPrefix matches per-app manifest files in a steamapps dir.
const manifestPrefix = "appmanifest_"

// AppInfo is the identifying metadata read from one app manifest.
type AppInfo struct {
	AppID string
	Name  string
}

// ScanManifests parses every appmanifest_*.acf file in a steamapps
// directory. Per-file failures are skipped; one bad manifest never
// aborts the scan.
func ScanManifests(steamAppsDir string) []AppInfo {
	var apps []AppInfo

	entries, err := os.ReadDir(steamAppsDir)
	if err != nil {
		log.Warn().Err(err).Msgf("error listing steamapps folder: %s", steamAppsDir)
		return apps
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, manifestPrefix) || !strings.HasSuffix(name, ".acf") {
			continue
		}

		info, ok := readManifest(filepath.Join(steamAppsDir, name))
		if !ok {
			continue
		}
		apps = append(apps, info)
	}

	return apps
}

// readManifest extracts the app ID and display name from one manifest
// file. Returns false for any unreadable or malformed manifest.
func readManifest(path string) (AppInfo, bool) {
	//nolint:gosec // Safe: reads Steam manifest files for library scanning
	f, err := os.Open(path)
	if err != nil {
		log.Debug().Err(err).Msgf("error opening manifest: %s", path)
		return AppInfo{}, false
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing manifest file")
		}
	}()

	p := vdf.NewParser(f)
	m, err := p.Parse()
	if err != nil {
		log.Debug().Err(err).Msgf("error parsing manifest: %s", path)
		return AppInfo{}, false
	}
	m = normalizeVDFKeys(m)

	appState, ok := m["appstate"].(map[string]any)
	if !ok {
		log.Debug().Msgf("appstate is not a map in manifest: %s", path)
		return AppInfo{}, false
	}

	appID, ok := appState["appid"].(string)
	if !ok || appID == "" {
		return AppInfo{}, false
	}
	name, ok := appState["name"].(string)
	if !ok || name == "" {
		return AppInfo{}, false
	}

	return AppInfo{AppID: appID, Name: name}, true
}
