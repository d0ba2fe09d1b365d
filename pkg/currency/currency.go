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

// Package currency formats Steam minor-unit prices into display strings
// using the per-country profiles the Steam storefront uses.
package currency

import (
	"fmt"
	"strconv"
	"strings"
)

// Profile describes how one storefront country renders a price.
type Profile struct {
	Symbol             string
	DecimalSeparator   string
	ThousandsSeparator string
	DecimalDigits      int
	IsPrefixed         bool
}

// DefaultCountry is used for unknown or malformed country codes.
const DefaultCountry = "us"

// profiles is keyed by lowercase two-letter storefront country code.
var profiles = map[string]Profile{
	"ae": {Symbol: "AED", IsPrefixed: true, DecimalDigits: 2, DecimalSeparator: ".", ThousandsSeparator: ","},
	"ar": {Symbol: "$", IsPrefixed: true, DecimalDigits: 2, DecimalSeparator: ".", ThousandsSeparator: ","},
	"au": {Symbol: "$", IsPrefixed: true, DecimalDigits: 2, DecimalSeparator: ".", ThousandsSeparator: ","},
	"az": {Symbol: "$", IsPrefixed: true, DecimalDigits: 2, DecimalSeparator: ".", ThousandsSeparator: ","},
	"br": {Symbol: "R$", IsPrefixed: true, DecimalDigits: 2, DecimalSeparator: ",", ThousandsSeparator: "."},
	"ca": {Symbol: "$", IsPrefixed: true, DecimalDigits: 2, DecimalSeparator: ".", ThousandsSeparator: ","},
	"ch": {Symbol: "CHF", IsPrefixed: true, DecimalDigits: 2, DecimalSeparator: ".", ThousandsSeparator: "'"},
	"cl": {Symbol: "$", IsPrefixed: true, DecimalDigits: 0, DecimalSeparator: ",", ThousandsSeparator: "."},
	"cn": {Symbol: "¥", IsPrefixed: true, DecimalDigits: 2, DecimalSeparator: ".", ThousandsSeparator: ","},
	"co": {Symbol: "$", IsPrefixed: true, DecimalDigits: 0, DecimalSeparator: ",", ThousandsSeparator: "."},
	"cr": {Symbol: "₡", IsPrefixed: true, DecimalDigits: 2, DecimalSeparator: ",", ThousandsSeparator: "."},
	"eu": {Symbol: "€", IsPrefixed: false, DecimalDigits: 2, DecimalSeparator: ",", ThousandsSeparator: "."},
	"hk": {Symbol: "HK$", IsPrefixed: true, DecimalDigits: 2, DecimalSeparator: ".", ThousandsSeparator: ","},
	"id": {Symbol: "Rp", IsPrefixed: true, DecimalDigits: 0, DecimalSeparator: ",", ThousandsSeparator: "."},
	"il": {Symbol: "₪", IsPrefixed: true, DecimalDigits: 2, DecimalSeparator: ".", ThousandsSeparator: ","},
	"in": {Symbol: "₹", IsPrefixed: true, DecimalDigits: 2, DecimalSeparator: ".", ThousandsSeparator: ","},
	"jp": {Symbol: "¥", IsPrefixed: true, DecimalDigits: 0, DecimalSeparator: ".", ThousandsSeparator: ","},
	"kr": {Symbol: "₩", IsPrefixed: true, DecimalDigits: 0, DecimalSeparator: ".", ThousandsSeparator: ","},
	"kw": {Symbol: "KD", IsPrefixed: true, DecimalDigits: 3, DecimalSeparator: ".", ThousandsSeparator: ","},
	"kz": {Symbol: "₸", IsPrefixed: false, DecimalDigits: 2, DecimalSeparator: ",", ThousandsSeparator: " "},
	"mx": {Symbol: "$", IsPrefixed: true, DecimalDigits: 2, DecimalSeparator: ".", ThousandsSeparator: ","},
	"my": {Symbol: "RM", IsPrefixed: true, DecimalDigits: 2, DecimalSeparator: ".", ThousandsSeparator: ","},
	"no": {Symbol: "kr", IsPrefixed: false, DecimalDigits: 2, DecimalSeparator: ",", ThousandsSeparator: " "},
	"nz": {Symbol: "$", IsPrefixed: true, DecimalDigits: 2, DecimalSeparator: ".", ThousandsSeparator: ","},
	"pe": {Symbol: "S/.", IsPrefixed: true, DecimalDigits: 2, DecimalSeparator: ",", ThousandsSeparator: "."},
	"ph": {Symbol: "₱", IsPrefixed: true, DecimalDigits: 2, DecimalSeparator: ".", ThousandsSeparator: ","},
	"pk": {Symbol: "$", IsPrefixed: true, DecimalDigits: 2, DecimalSeparator: ".", ThousandsSeparator: ","},
	"pl": {Symbol: "zł", IsPrefixed: false, DecimalDigits: 2, DecimalSeparator: ",", ThousandsSeparator: " "},
	"qa": {Symbol: "QR", IsPrefixed: true, DecimalDigits: 2, DecimalSeparator: ".", ThousandsSeparator: ","},
	"ru": {Symbol: "₽", IsPrefixed: false, DecimalDigits: 2, DecimalSeparator: ",", ThousandsSeparator: " "},
	"sa": {Symbol: "SR", IsPrefixed: true, DecimalDigits: 2, DecimalSeparator: ".", ThousandsSeparator: ","},
	"sg": {Symbol: "$", IsPrefixed: true, DecimalDigits: 2, DecimalSeparator: ".", ThousandsSeparator: ","},
	"th": {Symbol: "฿", IsPrefixed: true, DecimalDigits: 2, DecimalSeparator: ".", ThousandsSeparator: ","},
	"tr": {Symbol: "₺", IsPrefixed: false, DecimalDigits: 2, DecimalSeparator: ",", ThousandsSeparator: "."},
	"tw": {Symbol: "NT$", IsPrefixed: true, DecimalDigits: 2, DecimalSeparator: ".", ThousandsSeparator: ","},
	"ua": {Symbol: "₴", IsPrefixed: false, DecimalDigits: 2, DecimalSeparator: ",", ThousandsSeparator: " "},
	"uk": {Symbol: "£", IsPrefixed: true, DecimalDigits: 2, DecimalSeparator: ".", ThousandsSeparator: ","},
	"us": {Symbol: "$", IsPrefixed: true, DecimalDigits: 2, DecimalSeparator: ".", ThousandsSeparator: ","},
	"uy": {Symbol: "$U", IsPrefixed: true, DecimalDigits: 2, DecimalSeparator: ",", ThousandsSeparator: "."},
	"vn": {Symbol: "₫", IsPrefixed: false, DecimalDigits: 0, DecimalSeparator: ".", ThousandsSeparator: "."},
	"za": {Symbol: "R", IsPrefixed: true, DecimalDigits: 2, DecimalSeparator: ".", ThousandsSeparator: ","},
}

// Known reports whether a country code has a storefront profile.
// Codes are matched lowercase.
func Known(countryCode string) bool {
	_, ok := profiles[strings.ToLower(countryCode)]
	return ok
}

// Lookup returns the profile for a country code, falling back to the
// "us" profile for unknown codes.
func Lookup(countryCode string) Profile {
	if p, ok := profiles[strings.ToLower(countryCode)]; ok {
		return p
	}
	return profiles[DefaultCountry]
}

// FormatPrice renders a minor-unit price amount for a storefront
// country. Zero is always rendered as "Free". Negative amounts are
// undefined input and are clamped to zero, so they also render as
// "Free". Unknown country codes use the "us" profile.
func FormatPrice(amountMinor int, countryCode string) string {
	if amountMinor <= 0 {
		return "Free"
	}

	p := Lookup(countryCode)

	scale := 1
	for range p.DecimalDigits {
		scale *= 10
	}
	units := amountMinor / scale
	frac := amountMinor % scale

	// Render with default separators first: "," grouping and "."
	// decimal, then remap below.
	num := groupThousands(strconv.Itoa(units))
	if p.DecimalDigits > 0 {
		num += "." + fmt.Sprintf("%0*d", p.DecimalDigits, frac)
	}
	num = remapSeparators(num, p)

	if p.IsPrefixed {
		return p.Symbol + num
	}
	return num + " " + p.Symbol
}

// remapSeparators replaces the default "," grouping and "." decimal
// marks with the profile's separators. Only the two policies the
// profile table encodes are handled: a full swap for period-grouping
// comma-decimal profiles, and a grouping-only replacement when both
// separators differ from the defaults. Profiles outside those two
// branches keep the default marks, matching storefront behavior.
func remapSeparators(num string, p Profile) string {
	switch {
	case p.ThousandsSeparator == "." && p.DecimalSeparator == ",":
		// Two-pass swap through a placeholder so the first
		// substitution cannot collide with the second.
		num = strings.ReplaceAll(num, ",", "\x00")
		num = strings.ReplaceAll(num, ".", p.DecimalSeparator)
		num = strings.ReplaceAll(num, "\x00", p.ThousandsSeparator)
	case p.ThousandsSeparator != "," && p.DecimalSeparator != ".":
		num = strings.ReplaceAll(num, ",", p.ThousandsSeparator)
	}
	return num
}

// groupThousands inserts "," between every group of three digits,
// counting from the right.
func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatCount renders a non-negative integer with "," grouping, used
// for live player counts.
func FormatCount(n int) string {
	if n < 0 {
		return strconv.Itoa(n)
	}
	return groupThousands(strconv.Itoa(n))
}
