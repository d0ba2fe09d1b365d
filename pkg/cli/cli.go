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

// Package cli reads one JSON-RPC request from the launcher host,
// dispatches it, and writes the result envelope to stdout. The process
// handles exactly one request per invocation.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/steamflowproject/steamflow/pkg/results"
)

// Request is the JSON-RPC call the launcher host sends on stdin or as
// the first program argument.
type Request struct {
	Method     string   `json:"method"`
	Parameters []string `json:"parameters"`
}

// ReadRequest parses the incoming request. The first argv entry wins
// when present; otherwise the stdin body is parsed. With no input at
// all the request defaults to an empty query, which renders the
// status entry.
func ReadRequest(args []string, stdin io.Reader) Request {
	raw := ""
	switch {
	case len(args) > 0 && strings.TrimSpace(args[0]) != "":
		raw = args[0]
	case stdin != nil:
		if data, err := io.ReadAll(stdin); err == nil {
			raw = string(data)
		}
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Request{Method: results.MethodQuery, Parameters: []string{""}}
	}

	var req Request
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		log.Debug().Err(err).Msg("malformed request, treating as query term")
		return Request{Method: results.MethodQuery, Parameters: []string{raw}}
	}
	if req.Method == "" {
		req.Method = results.MethodQuery
	}
	return req
}

// Launcher starts Steam, games, and store pages on the host. Methods
// report outcome as a status string, success or not.
type Launcher interface {
	LaunchGame(ctx context.Context, appID string) string
	OpenStorePage(ctx context.Context, appID string) string
	OpenSteam(ctx context.Context) string
}

// Querier answers search queries with a ranked result list.
type Querier interface {
	Query(ctx context.Context, term string) []results.Result
}

// Dispatcher routes one request to the engine or the launcher.
type Dispatcher struct {
	engine   Querier
	launcher Launcher
}

// NewDispatcher creates a dispatcher over the given engine and
// launcher.
func NewDispatcher(engine Querier, launcher Launcher) *Dispatcher {
	return &Dispatcher{engine: engine, launcher: launcher}
}

// Dispatch executes a request and returns the result list to render.
// Action methods return a single informational entry; failures are
// reported in the entry, never as an error.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) []results.Result {
	param := ""
	if len(req.Parameters) > 0 {
		param = req.Parameters[0]
	}

	switch req.Method {
	case results.MethodQuery:
		return d.engine.Query(ctx, param)
	case results.MethodLaunchGame:
		return []results.Result{{Title: d.launcher.LaunchGame(ctx, param)}}
	case results.MethodOpenStorePage:
		return []results.Result{{Title: d.launcher.OpenStorePage(ctx, param)}}
	case results.MethodOpenSteam:
		return []results.Result{{Title: d.launcher.OpenSteam(ctx)}}
	default:
		log.Warn().Str("method", req.Method).Msg("unknown request method")
		return []results.Result{{
			Title:    fmt.Sprintf("Unknown method: %s", req.Method),
			SubTitle: "This request is not supported",
		}}
	}
}

// WriteResult writes the {"result": [...]} envelope with all
// non-ASCII characters escaped, which is the only form every launcher
// host build decodes reliably.
func WriteResult(w io.Writer, list []results.Result) error {
	if list == nil {
		list = []results.Result{}
	}
	data, err := json.Marshal(map[string][]results.Result{"result": list})
	if err != nil {
		// A fixed fallback keeps the host's pipe protocol intact.
		_, writeErr := io.WriteString(w, `{"result": []}`)
		if writeErr != nil {
			return fmt.Errorf("failed to write fallback result: %w", writeErr)
		}
		return fmt.Errorf("failed to encode result: %w", err)
	}

	if _, err := w.Write(escapeASCII(data)); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}

// escapeASCII rewrites every rune above 0x7F as a \uXXXX escape,
// using surrogate pairs for runes beyond the basic multilingual
// plane. Input must already be valid JSON so no structural characters
// need re-escaping.
func escapeASCII(data []byte) []byte {
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		i += size
		if r < utf8.RuneSelf {
			out = append(out, byte(r))
			continue
		}
		if r > 0xFFFF {
			pair := utf16.Encode([]rune{r})
			out = fmt.Appendf(out, `\u%04x\u%04x`, pair[0], pair[1])
			continue
		}
		out = fmt.Appendf(out, `\u%04x`, r)
	}
	return out
}
