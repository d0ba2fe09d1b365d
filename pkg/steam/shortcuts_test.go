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
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shortcutFixture struct {
	name   string
	appID  uint32
	hidden bool
}

// encodeShortcuts renders fixtures in the binary shortcuts.vdf layout.
func encodeShortcuts(shortcuts ...shortcutFixture) []byte {
	var buf bytes.Buffer

	writeStr := func(key, value string) {
		buf.WriteByte(0x01)
		buf.WriteString(key)
		buf.WriteByte(0x00)
		buf.WriteString(value)
		buf.WriteByte(0x00)
	}
	writeNum := func(key string, value uint32) {
		buf.WriteByte(0x02)
		buf.WriteString(key)
		buf.WriteByte(0x00)
		buf.Write([]byte{
			byte(value), byte(value >> 8), byte(value >> 16), byte(value >> 24),
		})
	}

	buf.WriteByte(0x00)
	buf.WriteString("shortcuts")
	buf.WriteByte(0x00)
	for i, s := range shortcuts {
		buf.WriteByte(0x00)
		buf.WriteString(string(rune('0' + i)))
		buf.WriteByte(0x00)
		writeNum("appid", s.appID)
		writeStr("AppName", s.name)
		writeStr("Exe", "/games/"+s.name)
		writeStr("StartDir", "/games")
		if s.hidden {
			writeNum("IsHidden", 1)
		}
		buf.WriteByte(0x08)
	}
	buf.WriteByte(0x08)
	buf.WriteByte(0x08)

	return buf.Bytes()
}

func writeShortcutsFile(t *testing.T, installDir, userID string, data []byte) {
	t.Helper()
	configDir := filepath.Join(installDir, "userdata", userID, "config")
	require.NoError(t, os.MkdirAll(configDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "shortcuts.vdf"), data, 0o600))
}

func TestScanShortcuts(t *testing.T) {
	t.Parallel()

	t.Run("collects_shortcuts_across_users", func(t *testing.T) {
		t.Parallel()

		install := t.TempDir()
		writeShortcutsFile(t, install, "101", encodeShortcuts(
			shortcutFixture{name: "Control", appID: 1},
		))
		writeShortcutsFile(t, install, "202", encodeShortcuts(
			shortcutFixture{name: "Celeste", appID: 2},
		))

		apps := ScanShortcuts(install)
		require.Len(t, apps, 2)
		names := []string{apps[0].Name, apps[1].Name}
		assert.ElementsMatch(t, []string{"Control", "Celeste"}, names)
	})

	t.Run("app_id_is_the_64_bit_launch_id", func(t *testing.T) {
		t.Parallel()

		install := t.TempDir()
		writeShortcutsFile(t, install, "101", encodeShortcuts(
			shortcutFixture{name: "Control", appID: 1},
		))

		apps := ScanShortcuts(install)
		require.Len(t, apps, 1)
		// (1 << 32) | 0x02000000
		assert.Equal(t, "4328521728", apps[0].AppID)
	})

	t.Run("hidden_and_nameless_shortcuts_are_skipped", func(t *testing.T) {
		t.Parallel()

		install := t.TempDir()
		writeShortcutsFile(t, install, "101", encodeShortcuts(
			shortcutFixture{name: "Visible", appID: 1},
			shortcutFixture{name: "Secret", appID: 2, hidden: true},
			shortcutFixture{name: "", appID: 3},
		))

		apps := ScanShortcuts(install)
		require.Len(t, apps, 1)
		assert.Equal(t, "Visible", apps[0].Name)
	})

	t.Run("corrupt_file_skips_only_that_user", func(t *testing.T) {
		t.Parallel()

		install := t.TempDir()
		writeShortcutsFile(t, install, "101", []byte("not binary vdf"))
		writeShortcutsFile(t, install, "202", encodeShortcuts(
			shortcutFixture{name: "Celeste", appID: 2},
		))

		apps := ScanShortcuts(install)
		require.Len(t, apps, 1)
		assert.Equal(t, "Celeste", apps[0].Name)
	})

	t.Run("missing_userdata_yields_nothing", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, ScanShortcuts(t.TempDir()))
	})
}

func TestIndexIncludesShortcuts(t *testing.T) {
	t.Parallel()

	install := t.TempDir()
	steamapps := filepath.Join(install, "steamapps")
	require.NoError(t, os.MkdirAll(steamapps, 0o750))
	writeManifest(t, steamapps, "620", "Portal 2")
	writeShortcutsFile(t, install, "101", encodeShortcuts(
		shortcutFixture{name: "Celeste Classic", appID: 7},
	))

	idx := NewIndex(func() string { return install }, clockwork.NewFakeClock())
	idx.Refresh()

	games := idx.Games()
	assert.Equal(t, "Portal 2", games["620"])
	assert.Equal(t, "Celeste Classic", games["30098325504"])
}
