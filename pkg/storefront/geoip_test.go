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

package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCountryCache(t *testing.T, path, code string, ts int64) {
	t.Helper()
	data, err := json.Marshal(countryCache{CountryCode: code, Timestamp: ts})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))
}

func TestLocator(t *testing.T) {
	t.Parallel()

	t.Run("missing_cache_defaults_to_us_and_stale", func(t *testing.T) {
		t.Parallel()

		l := NewLocator(filepath.Join(t.TempDir(), "country_cache.json"), clockwork.NewFakeClock())

		assert.Equal(t, "us", l.CountryCode())
		assert.True(t, l.Stale())
	})

	t.Run("fresh_cache_is_used", func(t *testing.T) {
		t.Parallel()

		clock := clockwork.NewFakeClock()
		cacheFile := filepath.Join(t.TempDir(), "country_cache.json")
		writeCountryCache(t, cacheFile, "uk", clock.Now().Add(-time.Hour).Unix())

		l := NewLocator(cacheFile, clock)

		assert.Equal(t, "uk", l.CountryCode())
		assert.False(t, l.Stale())
	})

	t.Run("expired_cache_is_ignored", func(t *testing.T) {
		t.Parallel()

		clock := clockwork.NewFakeClock()
		cacheFile := filepath.Join(t.TempDir(), "country_cache.json")
		writeCountryCache(t, cacheFile, "uk", clock.Now().Add(-CountryCacheTTL-time.Hour).Unix())

		l := NewLocator(cacheFile, clock)

		assert.Equal(t, "us", l.CountryCode())
		assert.True(t, l.Stale())
	})

	t.Run("cache_with_unknown_country_is_ignored", func(t *testing.T) {
		t.Parallel()

		clock := clockwork.NewFakeClock()
		cacheFile := filepath.Join(t.TempDir(), "country_cache.json")
		writeCountryCache(t, cacheFile, "zz", clock.Now().Unix())

		l := NewLocator(cacheFile, clock)

		assert.Equal(t, "us", l.CountryCode())
	})

	t.Run("malformed_cache_is_ignored", func(t *testing.T) {
		t.Parallel()

		cacheFile := filepath.Join(t.TempDir(), "country_cache.json")
		require.NoError(t, os.WriteFile(cacheFile, []byte("{"), 0o600))

		l := NewLocator(cacheFile, clockwork.NewFakeClock())

		assert.Equal(t, "us", l.CountryCode())
	})

	t.Run("refresh_updates_code_and_persists_cache", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"countryCode":"BR"}`))
		}))
		defer srv.Close()

		clock := clockwork.NewFakeClock()
		cacheFile := filepath.Join(t.TempDir(), "country_cache.json")
		l := NewLocatorWithGeoURL(cacheFile, srv.URL, clock)

		l.Refresh(context.Background())

		assert.Equal(t, "br", l.CountryCode())
		assert.False(t, l.Stale())

		data, err := os.ReadFile(cacheFile)
		require.NoError(t, err)
		var cache countryCache
		require.NoError(t, json.Unmarshal(data, &cache))
		assert.Equal(t, "br", cache.CountryCode)
		assert.Equal(t, clock.Now().Unix(), cache.Timestamp)
	})

	t.Run("refresh_rejects_unsupported_country", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"countryCode":"ZZ"}`))
		}))
		defer srv.Close()

		l := NewLocatorWithGeoURL(filepath.Join(t.TempDir(), "cc.json"), srv.URL, clockwork.NewFakeClock())
		l.Refresh(context.Background())

		assert.Equal(t, "us", l.CountryCode())
		assert.True(t, l.Stale())
	})

	t.Run("refresh_failure_keeps_previous_code", func(t *testing.T) {
		t.Parallel()

		clock := clockwork.NewFakeClock()
		cacheFile := filepath.Join(t.TempDir(), "country_cache.json")
		writeCountryCache(t, cacheFile, "eu", clock.Now().Unix())

		l := NewLocatorWithGeoURL(cacheFile, "http://127.0.0.1:1", clock)
		l.Refresh(context.Background())

		assert.Equal(t, "eu", l.CountryCode())
	})
}
