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

// Package steam locates the Steam installation, indexes installed
// games from app manifests, and opens steam:// actions.
package steam

import "runtime"

// Options configures Steam install directory detection.
type Options struct {
	// FallbackPath is used if Steam directory detection fails.
	FallbackPath string

	// ExtraPaths are additional paths to check for Steam installation.
	// Only used on non-Windows platforms.
	ExtraPaths []string
}

// DefaultOptions returns detection defaults for the current platform.
func DefaultOptions() Options {
	switch runtime.GOOS {
	case "windows":
		return Options{FallbackPath: `C:\Program Files (x86)\Steam`}
	case "darwin":
		return Options{FallbackPath: "~/Library/Application Support/Steam"}
	default:
		return Options{
			FallbackPath: "/usr/games/steam",
			ExtraPaths:   []string{"~/.steam/steam", "~/.local/share/Steam"},
		}
	}
}
