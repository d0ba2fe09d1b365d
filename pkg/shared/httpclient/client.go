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

// Package httpclient provides a pooled HTTP client with sensible
// defaults for the short-deadline storefront calls the plugin makes.
package httpclient

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

const (
	// DefaultTimeout bounds any request made without a tighter
	// per-call deadline.
	DefaultTimeout = 10 * time.Second

	// userAgent is sent on every request. The storefront search API
	// rejects requests without a browser-like agent.
	userAgent = "Mozilla/5.0"
)

// agentTransport sets the User-Agent header on every request.
type agentTransport struct {
	base http.RoundTripper
}

func (t *agentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.base == nil {
		t.base = http.DefaultTransport
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", userAgent)
	}
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform HTTP round trip: %w", err)
	}
	return resp, nil
}

// DefaultTransport provides a configured transport with connection
// pooling and reasonable timeouts.
var DefaultTransport = &http.Transport{
	DialContext: (&net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	ResponseHeaderTimeout: 10 * time.Second,
	TLSHandshakeTimeout:   5 * time.Second,
	MaxIdleConns:          20,
	MaxIdleConnsPerHost:   5,
	IdleConnTimeout:       30 * time.Second,
}

// Client wraps http.Client with the plugin's transport defaults.
type Client struct {
	*http.Client
}

// NewClient creates a new HTTP client with the default timeout.
func NewClient() *Client {
	return NewClientWithTimeout(DefaultTimeout)
}

// NewClientWithTimeout creates a new HTTP client with a custom timeout.
func NewClientWithTimeout(timeout time.Duration) *Client {
	return &Client{
		Client: &http.Client{
			Transport: &agentTransport{base: DefaultTransport},
			Timeout:   timeout,
		},
	}
}

// Get performs a GET request bound to the given context.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error performing GET request: %w", err)
	}

	return resp, nil
}
