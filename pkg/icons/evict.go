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

package icons

import (
	"io/fs"
	"os"
	"time"

	"github.com/charlievieth/fastwalk"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// EvictAge is how old a cached icon file must be before the sweep
// removes it.
const EvictAge = 3 * 24 * time.Hour

// Sweep removes cached icon files older than EvictAge. Directories
// are never removed. The sweep is safe to run concurrently with cache
// writers: a file just written is never old enough to evict.
func Sweep(dir string, clock clockwork.Clock) {
	if _, err := os.Stat(dir); err != nil {
		return
	}

	now := clock.Now()
	removed := 0
	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if now.Sub(info.ModTime()) > EvictAge {
			if removeErr := os.Remove(path); removeErr != nil {
				log.Debug().Err(removeErr).Str("path", path).Msg("error evicting cached icon")
			} else {
				removed++
			}
		}
		return nil
	})
	if err != nil {
		log.Debug().Err(err).Str("dir", dir).Msg("icon cache sweep failed")
		return
	}
	if removed > 0 {
		log.Debug().Int("removed", removed).Msg("icon cache sweep complete")
	}
}
