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
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/steamflowproject/steamflow/pkg/helpers"
	"github.com/steamflowproject/steamflow/pkg/helpers/command"
)

// Launcher opens steam:// actions, falling back to a web browser or
// the Steam binary when the URI scheme handler is unavailable.
type Launcher struct {
	cmd     command.Executor
	findDir func() string
}

// NewLauncher creates a launcher. findDir supplies the Steam install
// directory for the OpenSteam binary fallback.
func NewLauncher(findDir func() string) *Launcher {
	return &Launcher{cmd: &command.RealExecutor{}, findDir: findDir}
}

// NewLauncherWithExecutor creates a launcher with a custom command
// executor. This is useful for testing.
func NewLauncherWithExecutor(findDir func() string, cmd command.Executor) *Launcher {
	return &Launcher{cmd: cmd, findDir: findDir}
}

// validateAppID checks that an app ID is a plain unsigned number
// before it is spliced into a URI.
func validateAppID(appID string) error {
	if _, err := strconv.ParseUint(appID, 10, 64); err != nil {
		return fmt.Errorf("invalid app ID: %s", appID)
	}
	return nil
}

// openURI hands a URI to the platform's default scheme handler,
// fire-and-forget.
func (l *Launcher) openURI(ctx context.Context, uri string) error {
	name, args := helpers.OpenCommand(uri)
	//nolint:wrapcheck // Thin wrapper, error context added by caller
	return l.cmd.Start(ctx, name, args...)
}

// LaunchGame starts an installed game through the steam:// scheme and
// returns a short status string for the launcher host.
func (l *Launcher) LaunchGame(ctx context.Context, appID string) string {
	if err := validateAppID(appID); err != nil {
		return fmt.Sprintf("Failed to launch game: %s", err)
	}
	if err := l.openURI(ctx, "steam://rungameid/"+appID); err != nil {
		log.Warn().Err(err).Str("appID", appID).Msg("failed to launch game")
		return fmt.Sprintf("Failed to launch game: %s", err)
	}
	return "Game launched"
}

// OpenStorePage opens a game's store page in the Steam client, or in
// the default browser when the Steam client cannot be started.
func (l *Launcher) OpenStorePage(ctx context.Context, appID string) string {
	if err := validateAppID(appID); err != nil {
		return fmt.Sprintf("Failed to open Steam store page: %s", err)
	}

	if err := l.openURI(ctx, "steam://store/"+appID); err == nil {
		return fmt.Sprintf("Steam store page opened for App ID: %s", appID)
	}

	storeURL := fmt.Sprintf("https://store.steampowered.com/app/%s/", appID)
	if err := helpers.ValidateBrowserURL(storeURL); err != nil {
		return fmt.Sprintf("Failed to open Steam store page: %s", err)
	}
	name, args := helpers.OpenCommand(storeURL)
	if err := l.cmd.Start(ctx, name, args...); err != nil {
		log.Warn().Err(err).Str("appID", appID).Msg("failed to open store page in browser")
		return fmt.Sprintf("Failed to open Steam store page: %s", err)
	}
	return fmt.Sprintf("Steam store page opened in browser for App ID: %s", appID)
}

// OpenSteam brings up the Steam client main window, falling back to
// running the Steam binary from the install directory.
func (l *Launcher) OpenSteam(ctx context.Context) string {
	if err := l.openURI(ctx, "steam://open/main"); err == nil {
		return "Steam opened"
	}

	installDir := l.findDir()
	if installDir != "" {
		bin := filepath.Join(installDir, "steam")
		if runtime.GOOS == "windows" {
			bin = filepath.Join(installDir, "steam.exe")
		}
		if err := l.cmd.Start(ctx, bin); err == nil {
			return "Steam opened"
		}
	}

	return "Failed to open Steam"
}
