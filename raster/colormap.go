// This file is part of spicebox.
//
// Copyright (C) 2019-2025  Rawser Spicer
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package raster

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"
	"strings"
)

// ErrUnknownColormap - No colormap with that name.
var ErrUnknownColormap = errors.New("unknown colormap")

// Colormap - Maps t in [0, 1] to a color.
type Colormap func(t float64) color.NRGBA

var colormaps = map[string][]color.NRGBA{
	"viridis": {
		{0x44, 0x01, 0x54, 0xff},
		{0x3b, 0x52, 0x8b, 0xff},
		{0x21, 0x91, 0x8c, 0xff},
		{0x5e, 0xc9, 0x62, 0xff},
		{0xfd, 0xe7, 0x25, 0xff},
	},
	"greys": {
		{0xff, 0xff, 0xff, 0xff},
		{0x96, 0x96, 0x96, 0xff},
		{0x00, 0x00, 0x00, 0xff},
	},
	"greens": {
		{0xf7, 0xfc, 0xf5, 0xff},
		{0x74, 0xc4, 0x76, 0xff},
		{0x00, 0x44, 0x1b, 0xff},
	},
}

// Colormaps - Names accepted by LookupColormap.
func Colormaps() []string {
	names := make([]string, 0, len(colormaps))
	for name := range colormaps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupColormap - Returns the named colormap, ignoring case.
func LookupColormap(name string) (Colormap, error) {
	anchors, ok := colormaps[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q, use one of %v", ErrUnknownColormap, name, Colormaps())
	}
	return linear(anchors), nil
}

// clamp - Limits t to [0, 1]; NaN maps to 0.
func clamp(t float64) float64 {
	if math.IsNaN(t) {
		return 0
	}
	return math.Min(math.Max(t, 0), 1)
}

func linear(anchors []color.NRGBA) Colormap {
	return func(t float64) color.NRGBA {
		t = clamp(t)
		pos := t * float64(len(anchors)-1)
		i := int(pos)
		if i >= len(anchors)-1 {
			return anchors[len(anchors)-1]
		}
		f := pos - float64(i)
		a, b := anchors[i], anchors[i+1]
		mix := func(x, y uint8) uint8 {
			return uint8(math.Round(float64(x) + f*(float64(y)-float64(x))))
		}
		return color.NRGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), 0xff}
	}
}

// Discrete - Samples n evenly spaced colors, cmap(i/(n-1)), into a stepped colormap.
func (cmap Colormap) Discrete(n int) Colormap {
	if n < 2 {
		c := cmap(0)
		return func(float64) color.NRGBA { return c }
	}
	return func(t float64) color.NRGBA {
		t = clamp(t)
		i := min(int(t*float64(n)), n-1)
		return cmap(float64(i) / float64(n-1))
	}
}
