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

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steamflowproject/steamflow/pkg/results"
)

type fakeEngine struct {
	lastTerm string
	out      []results.Result
}

func (f *fakeEngine) Query(_ context.Context, term string) []results.Result {
	f.lastTerm = term
	return f.out
}

type fakeLauncher struct {
	calls []string
}

func (f *fakeLauncher) LaunchGame(_ context.Context, appID string) string {
	f.calls = append(f.calls, "launch:"+appID)
	return "Game launched"
}

func (f *fakeLauncher) OpenStorePage(_ context.Context, appID string) string {
	f.calls = append(f.calls, "store:"+appID)
	return "Steam store page opened for App ID: " + appID
}

func (f *fakeLauncher) OpenSteam(_ context.Context) string {
	f.calls = append(f.calls, "open")
	return "Steam opened"
}

func TestReadRequest(t *testing.T) {
	t.Parallel()

	t.Run("argv_takes_priority_over_stdin", func(t *testing.T) {
		t.Parallel()

		req := ReadRequest(
			[]string{`{"method":"query","parameters":["portal"]}`},
			strings.NewReader(`{"method":"open_steam","parameters":[]}`),
		)
		assert.Equal(t, results.MethodQuery, req.Method)
		assert.Equal(t, []string{"portal"}, req.Parameters)
	})

	t.Run("stdin_is_parsed_when_argv_is_empty", func(t *testing.T) {
		t.Parallel()

		req := ReadRequest(nil, strings.NewReader(`{"method":"launch_game","parameters":["620"]}`))
		assert.Equal(t, results.MethodLaunchGame, req.Method)
		assert.Equal(t, []string{"620"}, req.Parameters)
	})

	t.Run("no_input_defaults_to_empty_query", func(t *testing.T) {
		t.Parallel()

		req := ReadRequest(nil, strings.NewReader(""))
		assert.Equal(t, results.MethodQuery, req.Method)
		assert.Equal(t, []string{""}, req.Parameters)
	})

	t.Run("non_json_input_becomes_a_query_term", func(t *testing.T) {
		t.Parallel()

		req := ReadRequest([]string{"half-life"}, nil)
		assert.Equal(t, results.MethodQuery, req.Method)
		assert.Equal(t, []string{"half-life"}, req.Parameters)
	})

	t.Run("missing_method_defaults_to_query", func(t *testing.T) {
		t.Parallel()

		req := ReadRequest([]string{`{"parameters":["portal"]}`}, nil)
		assert.Equal(t, results.MethodQuery, req.Method)
	})
}

func TestDispatch(t *testing.T) {
	t.Parallel()

	t.Run("query_reaches_the_engine", func(t *testing.T) {
		t.Parallel()

		engine := &fakeEngine{out: []results.Result{{Title: "🎮 Portal 2"}}}
		d := NewDispatcher(engine, &fakeLauncher{})

		got := d.Dispatch(context.Background(),
			Request{Method: results.MethodQuery, Parameters: []string{"portal"}})

		assert.Equal(t, "portal", engine.lastTerm)
		require.Len(t, got, 1)
		assert.Equal(t, "🎮 Portal 2", got[0].Title)
	})

	t.Run("launch_game_forwards_the_app_id", func(t *testing.T) {
		t.Parallel()

		launcher := &fakeLauncher{}
		d := NewDispatcher(&fakeEngine{}, launcher)

		got := d.Dispatch(context.Background(),
			Request{Method: results.MethodLaunchGame, Parameters: []string{"620"}})

		assert.Equal(t, []string{"launch:620"}, launcher.calls)
		require.Len(t, got, 1)
		assert.Equal(t, "Game launched", got[0].Title)
	})

	t.Run("open_store_page_forwards_the_app_id", func(t *testing.T) {
		t.Parallel()

		launcher := &fakeLauncher{}
		d := NewDispatcher(&fakeEngine{}, launcher)

		got := d.Dispatch(context.Background(),
			Request{Method: results.MethodOpenStorePage, Parameters: []string{"620"}})

		assert.Equal(t, []string{"store:620"}, launcher.calls)
		require.Len(t, got, 1)
		assert.Equal(t, "Steam store page opened for App ID: 620", got[0].Title)
	})

	t.Run("open_steam_takes_no_parameters", func(t *testing.T) {
		t.Parallel()

		launcher := &fakeLauncher{}
		d := NewDispatcher(&fakeEngine{}, launcher)

		got := d.Dispatch(context.Background(), Request{Method: results.MethodOpenSteam})

		assert.Equal(t, []string{"open"}, launcher.calls)
		require.Len(t, got, 1)
		assert.Equal(t, "Steam opened", got[0].Title)
	})

	t.Run("unknown_method_yields_informational_entry", func(t *testing.T) {
		t.Parallel()

		d := NewDispatcher(&fakeEngine{}, &fakeLauncher{})

		got := d.Dispatch(context.Background(), Request{Method: "self_destruct"})

		require.Len(t, got, 1)
		assert.Equal(t, "Unknown method: self_destruct", got[0].Title)
	})
}

func TestWriteResult(t *testing.T) {
	t.Parallel()

	t.Run("wraps_list_in_result_envelope", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, WriteResult(&buf, []results.Result{{
			Title:    "Portal 2",
			SubTitle: "Launch installed game (ID: 620)",
			IcoPath:  "620.jpg",
			Action:   &results.Action{Method: results.MethodLaunchGame, Parameters: []string{"620"}},
		}}))

		var envelope struct {
			Result []results.Result `json:"result"`
		}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &envelope))
		require.Len(t, envelope.Result, 1)
		assert.Equal(t, "Portal 2", envelope.Result[0].Title)
		require.NotNil(t, envelope.Result[0].Action)
		assert.Equal(t, results.MethodLaunchGame, envelope.Result[0].Action.Method)
	})

	t.Run("non_ascii_runes_are_escaped", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, WriteResult(&buf, []results.Result{{
			Title:    "🎮 Café",
			SubTitle: "12.345,67 €",
		}}))

		out := buf.String()
		for _, r := range out {
			assert.Less(t, int(r), 128, "output must be pure ASCII")
		}
		// Astral runes use surrogate pairs, BMP runes a single escape.
		assert.Contains(t, out, `\ud83c\udfae`)
		assert.Contains(t, out, `Caf\u00e9`)
		assert.Contains(t, out, `\u20ac`)

		var envelope struct {
			Result []results.Result `json:"result"`
		}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &envelope))
		assert.Equal(t, "🎮 Café", envelope.Result[0].Title)
	})

	t.Run("empty_list_still_writes_an_envelope", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, WriteResult(&buf, nil))
		assert.JSONEq(t, `{"result": []}`, buf.String())
	})
}
