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

package icons

import (
	"context"
	"image"
	"image/draw"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/steamflowproject/steamflow/pkg/shared/httpclient"

	// Register decoders for the thumbnail formats the store serves.
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

const fetchTimeout = 2 * time.Second

// Cache fetches remote thumbnails and stores them as square-padded
// PNGs, one file per app ID. Entries are content-addressed by app ID:
// a changed remote image under the same ID is not refetched until the
// cache entry ages out.
type Cache struct {
	http *httpclient.Client
	dir  string
}

// NewCache creates an icon cache rooted at dir, creating it if needed.
func NewCache(dir string) *Cache {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("error creating icon cache directory")
	}
	return &Cache{http: httpclient.NewClient(), dir: dir}
}

// Resolve returns the cached icon path for an app, fetching and
// normalizing the image on a cache miss. Any failure returns
// FallbackIcon without persisting a partial file.
func (c *Cache) Resolve(ctx context.Context, imageURL, appID string) string {
	if appID == "" {
		return FallbackIcon
	}

	cached := filepath.Join(c.dir, appID+".png")
	if _, err := os.Stat(cached); err == nil {
		return cached
	}
	if imageURL == "" {
		return FallbackIcon
	}

	src, ok := c.fetchImage(ctx, imageURL)
	if !ok {
		return FallbackIcon
	}

	if !writePNG(cached, squarePad(src)) {
		return FallbackIcon
	}
	return cached
}

// fetchImage downloads and decodes a thumbnail.
func (c *Cache) fetchImage(ctx context.Context, imageURL string) (image.Image, bool) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	resp, err := c.http.Get(ctx, imageURL)
	if err != nil {
		log.Debug().Err(err).Str("url", imageURL).Msg("icon fetch failed")
		return nil, false
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		log.Debug().Int("status", resp.StatusCode).Str("url", imageURL).Msg("icon fetch non-OK status")
		return nil, false
	}

	src, _, err := image.Decode(resp.Body)
	if err != nil {
		log.Debug().Err(err).Str("url", imageURL).Msg("icon decode failed")
		return nil, false
	}
	return src, true
}

// squarePad composites an image centered on a transparent square
// canvas sized to the larger of its dimensions, preserving alpha.
func squarePad(src image.Image) *image.RGBA {
	b := src.Bounds()
	size := b.Dx()
	if b.Dy() > size {
		size = b.Dy()
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	offset := image.Pt((size-b.Dx())/2, (size-b.Dy())/2)
	target := image.Rectangle{Min: offset, Max: offset.Add(b.Size())}
	draw.Draw(dst, target, src, b.Min, draw.Src)
	return dst
}

// writePNG encodes to a temp file in the cache directory and renames
// it into place, so readers never see a partial file.
func writePNG(path string, img image.Image) bool {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		log.Debug().Err(err).Msg("error creating icon temp file")
		return false
	}

	if err := png.Encode(tmp, img); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		log.Debug().Err(err).Msg("error encoding icon")
		return false
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return false
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		log.Debug().Err(err).Msg("error placing icon in cache")
		return false
	}
	return true
}
