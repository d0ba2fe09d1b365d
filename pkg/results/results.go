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

// Package results merges installed-game matches and enriched store
// listings into the single ranked result list the launcher host
// renders.
package results

// JSON-RPC method names understood by the plugin.
const (
	MethodQuery         = "query"
	MethodLaunchGame    = "launch_game"
	MethodOpenStorePage = "open_steam_store_page"
	MethodOpenSteam     = "open_steam"
)

// Action is the follow-up JSON-RPC call attached to a result.
type Action struct {
	Method     string   `json:"method"`
	Parameters []string `json:"parameters"`
}

// Result is one user-visible entry in the launcher's result list.
// Field names follow the launcher host's JSON-RPC result schema.
type Result struct {
	Title    string  `json:"Title"`
	SubTitle string  `json:"SubTitle"`
	IcoPath  string  `json:"IcoPath"`
	Action   *Action `json:"JsonRPCAction,omitempty"`
}
