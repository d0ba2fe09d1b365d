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

package helpers

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// MaxURLLength is the maximum allowed URL length for browser opening.
// This prevents resource exhaustion from extremely long URLs.
const MaxURLLength = 8192

// ValidateBrowserURL checks if the URL has a valid scheme for browser
// opening. Only http:// and https:// URLs are accepted for security.
func ValidateBrowserURL(url string) error {
	if len(url) > MaxURLLength {
		return fmt.Errorf("URL too long: %d bytes (max %d)", len(url), MaxURLLength)
	}
	lower := strings.ToLower(url)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return errors.New("invalid URL scheme: must be http:// or https://")
	}
	return nil
}

// OpenCommand returns the platform command and arguments that hand a
// URI to the desktop environment. The returned process is meant to be
// started fire-and-forget.
func OpenCommand(uri string) (name string, args []string) {
	switch runtime.GOOS {
	case "windows":
		return "cmd", []string{"/c", "start", uri}
	case "darwin":
		return "open", []string{uri}
	default:
		return "xdg-open", []string{uri}
	}
}
