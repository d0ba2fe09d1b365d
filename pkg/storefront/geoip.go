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
	"os"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/steamflowproject/steamflow/pkg/currency"
	"github.com/steamflowproject/steamflow/pkg/shared/httpclient"
)

const (
	defaultGeoURL = "http://ip-api.com/json/?fields=countryCode"

	geoTimeout = 2 * time.Second

	// CountryCacheTTL is how long a cached country code stays valid.
	CountryCacheTTL = 7 * 24 * time.Hour
)

type countryCache struct {
	CountryCode string `json:"country_code"`
	Timestamp   int64  `json:"timestamp"`
}

type geoResponse struct {
	CountryCode string `json:"countryCode"`
}

// Locator resolves the caller's storefront country code. The code is
// cached in a JSON file for CountryCacheTTL; a stale or missing cache
// means queries run on the default code until an async Refresh lands.
type Locator struct {
	clock     clockwork.Clock
	http      *httpclient.Client
	geoURL    string
	cacheFile string
	code      string
	stale     bool
	mu        sync.RWMutex
}

// NewLocator loads the cached country code from cacheFile. It never
// blocks on the network; call Refresh from a background goroutine
// when Stale reports true.
func NewLocator(cacheFile string, clock clockwork.Clock) *Locator {
	l := &Locator{
		clock:     clock,
		http:      httpclient.NewClient(),
		geoURL:    defaultGeoURL,
		cacheFile: cacheFile,
		code:      currency.DefaultCountry,
		stale:     true,
	}
	l.loadCache()
	return l
}

// NewLocatorWithGeoURL creates a locator against a custom geolocation
// endpoint. This is useful for testing.
func NewLocatorWithGeoURL(cacheFile, geoURL string, clock clockwork.Clock) *Locator {
	l := NewLocator(cacheFile, clock)
	l.geoURL = geoURL
	return l
}

func (l *Locator) loadCache() {
	data, err := os.ReadFile(l.cacheFile)
	if err != nil {
		return
	}

	var cache countryCache
	if err := json.Unmarshal(data, &cache); err != nil {
		log.Debug().Err(err).Msg("malformed country cache")
		return
	}

	age := l.clock.Now().Unix() - cache.Timestamp
	if age < 0 || age > int64(CountryCacheTTL.Seconds()) {
		return
	}
	if !currency.Known(cache.CountryCode) {
		return
	}

	l.code = strings.ToLower(cache.CountryCode)
	l.stale = false
}

// CountryCode returns the current storefront country code. Before the
// first successful probe this is the default "us".
func (l *Locator) CountryCode() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.code
}

// Stale reports whether the cached code is missing or expired and a
// Refresh should be scheduled.
func (l *Locator) Stale() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.stale
}

// Refresh probes the geolocation endpoint and persists the result.
// Only codes with a storefront currency profile are accepted. Safe to
// run concurrently with CountryCode readers.
func (l *Locator) Refresh(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, geoTimeout)
	defer cancel()

	resp, err := l.http.Get(ctx, l.geoURL)
	if err != nil {
		log.Debug().Err(err).Msg("geolocation probe failed")
		return
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing response body")
		}
	}()

	var body geoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		log.Debug().Err(err).Msg("geolocation decode failed")
		return
	}

	code := strings.ToLower(body.CountryCode)
	if !currency.Known(code) {
		log.Debug().Str("code", code).Msg("geolocation returned unsupported country")
		return
	}

	l.mu.Lock()
	l.code = code
	l.stale = false
	l.mu.Unlock()

	cache := countryCache{CountryCode: code, Timestamp: l.clock.Now().Unix()}
	data, err := json.Marshal(cache)
	if err != nil {
		return
	}
	if err := os.WriteFile(l.cacheFile, data, 0o600); err != nil {
		log.Debug().Err(err).Msg("error writing country cache")
	}
}
