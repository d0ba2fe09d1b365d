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

// Package storefront queries the Steam store search and player-count
// APIs. Every call is bounded by its own timeout and fails soft: any
// transport, status, or decode failure yields an empty result, never
// an error for the caller.
package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/steamflowproject/steamflow/pkg/shared/httpclient"
)

const (
	defaultSearchURL  = "https://store.steampowered.com/api/storesearch/"
	defaultPlayersURL = "https://api.steampowered.com/ISteamUserStats/GetNumberOfCurrentPlayers/v1/"

	searchTimeout  = 4 * time.Second
	playersTimeout = 1500 * time.Millisecond

	// MaxListings caps how many search results are kept, in the order
	// the store returns them.
	MaxListings = 5
)

// Platforms flags which operating systems a listing supports.
type Platforms struct {
	Windows bool `json:"windows"`
	Mac     bool `json:"mac"`
	Linux   bool `json:"linux"`
}

// Price is the storefront price block for a listing, in minor units.
type Price struct {
	Currency string `json:"currency"`
	Initial  int    `json:"initial"`
	Final    int    `json:"final"`
}

// Listing is one store search result prior to enrichment.
type Listing struct {
	Name      string    `json:"name"`
	TinyImage string    `json:"tiny_image"`
	Price     *Price    `json:"price"`
	ID        int64     `json:"id"`
	Platforms Platforms `json:"platforms"`
}

type searchResponse struct {
	Items []Listing `json:"items"`
}

type playersResponse struct {
	Response struct {
		Result      int `json:"result"`
		PlayerCount int `json:"player_count"`
	} `json:"response"`
}

// Client talks to the Steam store search and player-count endpoints.
type Client struct {
	http       *httpclient.Client
	searchURL  string
	playersURL string
}

// NewClient creates a client against the production Steam endpoints.
func NewClient() *Client {
	return &Client{
		http:       httpclient.NewClient(),
		searchURL:  defaultSearchURL,
		playersURL: defaultPlayersURL,
	}
}

// NewClientWithBaseURLs creates a client against custom endpoints.
// This is useful for testing.
func NewClientWithBaseURLs(searchURL, playersURL string) *Client {
	return &Client{
		http:       httpclient.NewClient(),
		searchURL:  searchURL,
		playersURL: playersURL,
	}
}

// Search queries the store search API for a term in a storefront
// country. Results are truncated to MaxListings in remote order; no
// local re-ranking. An empty or whitespace-only term returns nothing
// without making a call.
func (c *Client) Search(ctx context.Context, term, countryCode string) []Listing {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	q := url.Values{}
	q.Set("term", term)
	q.Set("cc", countryCode)
	q.Set("l", "en")

	var body searchResponse
	if !c.getJSON(ctx, c.searchURL+"?"+q.Encode(), &body) {
		return nil
	}

	items := body.Items
	if len(items) > MaxListings {
		items = items[:MaxListings]
	}
	return items
}

// CurrentPlayers fetches the live player count for an app. The second
// return value is false when the count is unavailable for any reason.
func (c *Client) CurrentPlayers(ctx context.Context, appID string) (int, bool) {
	if appID == "" {
		return 0, false
	}

	ctx, cancel := context.WithTimeout(ctx, playersTimeout)
	defer cancel()

	q := url.Values{}
	q.Set("appid", appID)

	var body playersResponse
	if !c.getJSON(ctx, c.playersURL+"?"+q.Encode(), &body) {
		return 0, false
	}
	if body.Response.Result != 1 {
		return 0, false
	}
	return body.Response.PlayerCount, true
}

// getJSON performs a GET and decodes a JSON body. Returns false on
// any failure; callers treat that as an absent result.
func (c *Client) getJSON(ctx context.Context, reqURL string, out any) bool {
	resp, err := c.http.Get(ctx, reqURL)
	if err != nil {
		log.Debug().Err(err).Str("url", reqURL).Msg("storefront request failed")
		return false
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		log.Debug().Int("status", resp.StatusCode).Str("url", reqURL).Msg("storefront non-OK status")
		return false
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Debug().Err(err).Str("url", reqURL).Msg("storefront decode failed")
		return false
	}
	return true
}
