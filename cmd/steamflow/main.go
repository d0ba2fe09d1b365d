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

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/steamflowproject/steamflow/pkg/cli"
	"github.com/steamflowproject/steamflow/pkg/config"
	"github.com/steamflowproject/steamflow/pkg/helpers"
	"github.com/steamflowproject/steamflow/pkg/icons"
	"github.com/steamflowproject/steamflow/pkg/results"
	"github.com/steamflowproject/steamflow/pkg/steam"
	"github.com/steamflowproject/steamflow/pkg/storefront"
)

const appName = "steamflow"

// requestTimeout is the hard deadline for one request end to end. The
// launcher host drops answers that arrive later anyway.
const requestTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	configDir := filepath.Join(xdg.ConfigHome, appName)
	stateDir := filepath.Join(xdg.StateHome, appName)
	cacheDir := filepath.Join(xdg.CacheHome, appName)
	for _, dir := range []string{configDir, stateDir, cacheDir} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	cfg, err := config.NewConfig(configDir, config.BaseDefaults)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	helpers.SetupLogging(stateDir, cfg.DebugLogging())

	clock := clockwork.NewRealClock()
	findDir := func() string {
		return steam.FindInstallDir(cfg.SteamDir(), steam.DefaultOptions())
	}

	locator := storefront.NewLocator(filepath.Join(cacheDir, "country_cache.json"), clock)
	iconDir := filepath.Join(cacheDir, "icons")

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	// Background housekeeping runs alongside the request; neither task
	// blocks the answer.
	var housekeeping sync.WaitGroup
	if locator.Stale() {
		housekeeping.Add(1)
		go func() {
			defer housekeeping.Done()
			locator.Refresh(ctx)
		}()
	}
	housekeeping.Add(1)
	go func() {
		defer housekeeping.Done()
		icons.Sweep(iconDir, clock)
	}()

	engine := results.NewEngine(results.Deps{
		Index:   steam.NewIndex(findDir, clock),
		Store:   storefront.NewClient(),
		Locator: locator,
		Icons:   icons.NewCache(iconDir),
		LibraryCacheDir: func() string {
			dir := findDir()
			if dir == "" {
				return ""
			}
			return filepath.Join(dir, "appcache", "librarycache")
		},
		MaxResults: cfg.MaxResults(),
	})
	dispatcher := cli.NewDispatcher(engine, steam.NewLauncher(findDir))

	req := cli.ReadRequest(os.Args[1:], stdinIfPiped())
	log.Debug().Str("method", req.Method).Msg("handling request")

	list := dispatcher.Dispatch(ctx, req)
	if err := cli.WriteResult(os.Stdout, list); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}

	housekeeping.Wait()
	return nil
}

// stdinIfPiped returns stdin only when something is piped in, so an
// interactive invocation does not block on a read.
func stdinIfPiped() io.Reader {
	info, err := os.Stdin.Stat()
	if err != nil || info.Mode()&os.ModeCharDevice != 0 {
		return nil
	}
	return os.Stdin
}
