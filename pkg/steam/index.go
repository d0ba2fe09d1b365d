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
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// RefreshTTL is the minimum wall time between full library rescans.
const RefreshTTL = 300 * time.Second

// Index maintains the app ID to display name mapping for installed
// games. The map is rebuilt wholesale and swapped in atomically;
// readers never observe a partially-populated map.
type Index struct {
	clock       clockwork.Clock
	findDir     func() string
	games       map[string]string
	lastRefresh time.Time
	scanCount   int
	mu          sync.RWMutex
}

// NewIndex creates an index over the install directory returned by
// findDir. The clock is injected so refresh rate limiting is testable.
func NewIndex(findDir func() string, clock clockwork.Clock) *Index {
	return &Index{
		clock:   clock,
		findDir: findDir,
		games:   map[string]string{},
	}
}

// Refresh rebuilds the installed-game map unless one was built less
// than RefreshTTL ago. A missing Steam install yields an empty map,
// not an error.
func (idx *Index) Refresh() {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if !idx.lastRefresh.IsZero() && idx.clock.Since(idx.lastRefresh) < RefreshTTL {
		return
	}

	games := make(map[string]string)
	installDir := idx.findDir()
	for _, dir := range LibraryDirs(installDir) {
		for _, app := range ScanManifests(dir) {
			games[app.AppID] = app.Name
		}
	}
	if installDir != "" {
		for _, app := range ScanShortcuts(installDir) {
			games[app.AppID] = app.Name
		}
	}

	idx.games = games
	idx.lastRefresh = idx.clock.Now()
	idx.scanCount++
	log.Debug().Int("games", len(games)).Msg("installed game index refreshed")
}

// Games returns the current app ID to name snapshot. The returned map
// is never mutated after the swap and must be treated as read-only.
func (idx *Index) Games() map[string]string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.games
}

// Count returns the number of installed games in the current snapshot.
func (idx *Index) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.games)
}

// ScanCount reports how many full scans have run, for tests asserting
// the refresh rate limit.
func (idx *Index) ScanCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.scanCount
}
