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

// Package config manages the plugin's TOML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
)

const (
	SchemaVersion = 1

	// CfgEnv overrides the config file location.
	CfgEnv = "STEAMFLOW_CFG"

	// CfgFile is the config filename under the config directory.
	CfgFile = "config.toml"
)

// Values is the on-disk TOML schema.
type Values struct {
	// SteamDir overrides Steam install directory detection.
	SteamDir string `toml:"steam_dir,omitempty"`

	ConfigSchema int  `toml:"config_schema"`
	MaxResults   int  `toml:"max_results"`
	DebugLogging bool `toml:"debug_logging"`
}

// BaseDefaults are the values written when no config file exists yet.
var BaseDefaults = Values{
	ConfigSchema: SchemaVersion,
	MaxResults:   5,
}

// Instance is a thread-safe view over the loaded config values.
type Instance struct {
	cfgPath string
	vals    Values
	mu      sync.RWMutex
}

//nolint:gocritic // config struct copied for immutability
func NewConfig(configDir string, defaults Values) (*Instance, error) {
	cfgPath := os.Getenv(CfgEnv)
	if cfgPath == "" {
		cfgPath = filepath.Join(configDir, CfgFile)
	}

	cfg := Instance{
		cfgPath: cfgPath,
		vals:    defaults,
	}

	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		log.Info().Msg("saving new default config to disk")
		if saveErr := cfg.Save(); saveErr != nil {
			return nil, saveErr
		}
		return &cfg, nil
	}

	if err := cfg.Load(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Load reads and parses the config file from disk.
func (c *Instance) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	data, err := os.ReadFile(c.cfgPath)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	var vals Values
	if err := toml.Unmarshal(data, &vals); err != nil {
		return fmt.Errorf("error parsing config file: %w", err)
	}

	if vals.MaxResults <= 0 {
		vals.MaxResults = BaseDefaults.MaxResults
	}

	c.vals = vals
	return nil
}

// Save writes the current values to the config file.
func (c *Instance) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	if err := os.MkdirAll(filepath.Dir(c.cfgPath), 0o750); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := toml.Marshal(&c.vals)
	if err != nil {
		return fmt.Errorf("error marshalling config: %w", err)
	}

	if err := os.WriteFile(c.cfgPath, data, 0o600); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// SteamDir returns the user-configured Steam install directory, or ""
// when detection should be used.
func (c *Instance) SteamDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.SteamDir
}

// MaxResults returns the per-category result cap.
func (c *Instance) MaxResults() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.MaxResults
}

// DebugLogging reports whether debug-level logging is enabled.
func (c *Instance) DebugLogging() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.DebugLogging
}
