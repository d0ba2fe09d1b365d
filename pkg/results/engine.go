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

package results

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/steamflowproject/steamflow/pkg/currency"
	"github.com/steamflowproject/steamflow/pkg/icons"
	"github.com/steamflowproject/steamflow/pkg/steam"
	"github.com/steamflowproject/steamflow/pkg/storefront"
)

// Deps are the collaborators the engine coordinates.
type Deps struct {
	Index   *steam.Index
	Store   *storefront.Client
	Locator *storefront.Locator
	Icons   *icons.Cache

	// LibraryCacheDir supplies Steam's librarycache directory for
	// installed-game icons; "" when Steam is not installed.
	LibraryCacheDir func() string

	// MaxResults caps each result category (installed, store).
	MaxResults int
}

// Engine answers one search query by merging installed-game matches
// with concurrently enriched store listings. It never returns an
// error: every external failure degrades to an absent field and the
// result list is always non-empty and ordered deterministically.
type Engine struct {
	deps Deps
}

// NewEngine creates a merge engine over the given collaborators.
func NewEngine(deps Deps) *Engine {
	if deps.MaxResults <= 0 {
		deps.MaxResults = storefront.MaxListings
	}
	return &Engine{deps: deps}
}

// Query runs the full pipeline for one search term. An empty term is
// a status probe reporting the installed-game count, not a search.
func (e *Engine) Query(ctx context.Context, term string) []Result {
	e.deps.Index.Refresh()

	if term == "" {
		return []Result{{
			Title:    "SteamFlow",
			SubTitle: fmt.Sprintf("Found %d installed games. Type to search...", e.deps.Index.Count()),
			IcoPath:  icons.FallbackIcon,
		}}
	}

	results := e.installedResults(term)
	results = append(results, e.storeResults(ctx, term)...)

	if len(results) == 0 {
		return []Result{{
			Title:    fmt.Sprintf("No games found for '%s'", term),
			SubTitle: "Try a different search term",
			IcoPath:  icons.FallbackIcon,
		}}
	}
	return results
}

// installedResults builds launch entries for installed games matching
// the term, in rank order.
func (e *Engine) installedResults(term string) []Result {
	matches := matchInstalled(e.deps.Index.Games(), term, e.deps.MaxResults)

	results := make([]Result, 0, len(matches))
	for _, m := range matches {
		results = append(results, Result{
			Title:    "🎮 " + m.name,
			SubTitle: fmt.Sprintf("Launch installed game (ID: %s)", m.appID),
			IcoPath:  icons.LocalIcon(e.deps.LibraryCacheDir(), m.appID),
			Action:   &Action{Method: MethodLaunchGame, Parameters: []string{m.appID}},
		})
	}
	return results
}

// storeResults searches the store and enriches each listing
// concurrently. Each enrichment task writes into its listing's slot,
// so output order always matches the store's listing order no matter
// which task finishes first.
func (e *Engine) storeResults(ctx context.Context, term string) []Result {
	countryCode := e.deps.Locator.CountryCode()
	listings := e.deps.Store.Search(ctx, term, countryCode)
	if len(listings) == 0 {
		return nil
	}

	enriched := make([]Result, len(listings))
	var g errgroup.Group
	g.SetLimit(storefront.MaxListings)
	for i := range listings {
		g.Go(func() error {
			enriched[i] = e.enrich(ctx, &listings[i], countryCode)
			return nil
		})
	}
	// Tasks never return errors; failures degrade to absent fields.
	_ = g.Wait()

	return enriched
}

// enrich decorates one listing with its icon, live player count, and
// formatted price. Each sub-call fails independently: a failure only
// omits its own segment.
func (e *Engine) enrich(ctx context.Context, listing *storefront.Listing, countryCode string) Result {
	appID := strconv.FormatInt(listing.ID, 10)

	var sub strings.Builder
	sub.WriteString("Open in Steam store")
	if tags := platformTags(listing.Platforms); tags != "" {
		sub.WriteString(" (" + tags + ")")
	}
	if count, ok := e.deps.Store.CurrentPlayers(ctx, appID); ok {
		sub.WriteString(" | 👥 " + currency.FormatCount(count))
	}
	if listing.Price != nil {
		sub.WriteString(" | " + currency.FormatPrice(listing.Price.Final, countryCode))
	}

	return Result{
		Title:    "🛒 " + listing.Name,
		SubTitle: sub.String(),
		IcoPath:  e.deps.Icons.Resolve(ctx, listing.TinyImage, appID),
		Action:   &Action{Method: MethodOpenStorePage, Parameters: []string{appID}},
	}
}

// platformTags renders supported platforms as "Win/Mac/Linux" in that
// fixed order, or "" when none are flagged.
func platformTags(p storefront.Platforms) string {
	var tags []string
	if p.Windows {
		tags = append(tags, "Win")
	}
	if p.Mac {
		tags = append(tags, "Mac")
	}
	if p.Linux {
		tags = append(tags, "Linux")
	}
	return strings.Join(tags, "/")
}
