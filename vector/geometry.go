// This file is part of spicebox.
//
// Copyright (C) 2019-2025  Rawser Spicer
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package vector

import (
	"cmp"
	"encoding/csv"
	"io"
	"slices"
	"sort"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// Centroids - Centroid of every feature, keyed like the input.
// Features without geometry are left out.
func Centroids(features map[string]map[string]*geojson.Feature) map[string]map[string]orb.Point {
	out := make(map[string]map[string]orb.Point, len(features))
	for layer, fs := range features {
		points := make(map[string]orb.Point, len(fs))
		for name, f := range fs {
			if f == nil || f.Geometry == nil {
				continue
			}
			c, _ := planar.CentroidArea(f.Geometry)
			points[name] = c
		}
		out[layer] = points
	}
	return out
}

// CentroidTable - Writes the centroids as CSV with the columns site
// (layer), location (feature), lat and long, sorted by site and location.
func CentroidTable(w io.Writer, centroids map[string]map[string]orb.Point) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"site", "location", "lat", "long"}); err != nil {
		return err
	}
	sites := make([]string, 0, len(centroids))
	for site := range centroids {
		sites = append(sites, site)
	}
	sort.Strings(sites)
	ff := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	for _, site := range sites {
		locations := make([]string, 0, len(centroids[site]))
		for loc := range centroids[site] {
			locations = append(locations, loc)
		}
		sort.Strings(locations)
		for _, loc := range locations {
			p := centroids[site][loc]
			if err := cw.Write([]string{site, loc, ff(p.Lat()), ff(p.Lon())}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// ConvexHull - Smallest convex polygon holding every point of the geometries.
// The ring is counter clockwise and closed. Fewer than three distinct points
// give a degenerate ring; no points give nil.
func ConvexHull(geoms ...orb.Geometry) orb.Polygon {
	var points []orb.Point
	for _, g := range geoms {
		points = appendPoints(points, g)
	}
	if len(points) == 0 {
		return nil
	}
	slices.SortFunc(points, func(a, b orb.Point) int {
		if a[0] != b[0] {
			return cmp.Compare(a[0], b[0])
		}
		return cmp.Compare(a[1], b[1])
	})
	points = slices.Compact(points)

	cross := func(o, a, b orb.Point) float64 {
		return (a[0]-o[0])*(b[1]-o[1]) - (a[1]-o[1])*(b[0]-o[0])
	}
	hull := make(orb.Ring, 0, 2*len(points))
	for _, p := range points {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(points) - 2; i >= 0; i-- {
		p := points[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	if len(points) == 1 {
		hull = append(hull, points[0])
	}
	return orb.Polygon{hull}
}

func appendPoints(out []orb.Point, g orb.Geometry) []orb.Point {
	switch g := g.(type) {
	case orb.Point:
		return append(out, g)
	case orb.MultiPoint:
		return append(out, g...)
	case orb.LineString:
		return append(out, g...)
	case orb.Ring:
		return append(out, g...)
	case orb.MultiLineString:
		for _, ls := range g {
			out = append(out, ls...)
		}
	case orb.Polygon:
		if len(g) > 0 {
			out = append(out, g[0]...)
		}
	case orb.MultiPolygon:
		for _, p := range g {
			out = appendPoints(out, p)
		}
	case orb.Collection:
		for _, c := range g {
			out = appendPoints(out, c)
		}
	case orb.Bound:
		out = appendPoints(out, g.ToPolygon())
	}
	return out
}
