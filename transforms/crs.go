// This file is part of spicebox.
//
// Copyright (C) 2019-2025  Rawser Spicer
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package transforms

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

var (
	// ErrInvalidCRS - The value can't be turned into a coordinate reference system.
	ErrInvalidCRS = errors.New("CRS could not be created from provided reference")

	// ErrUnsupportedTransform - There is no projection between the two systems.
	ErrUnsupportedTransform = errors.New("unsupported coordinate transformation")
)

const (
	// EPSGWGS84 - Geographic WGS 84, (longitude, latitude) in degrees.
	EPSGWGS84 = 4326
	// EPSGWebMercator - WGS 84 / Pseudo-Mercator, meters.
	EPSGWebMercator = 3857
)

// CRS - Coordinate reference system, identified by EPSG code, WKT or both.
// Code is 0 when the WKT has no EPSG authority.
type CRS struct {
	Code int
	WKT  string
}

// WGS84 - EPSG:4326.
func WGS84() CRS { return CRS{Code: EPSGWGS84} }

func (c CRS) String() string {
	if c.Code != 0 {
		return fmt.Sprintf("EPSG:%d", c.Code)
	}
	return c.WKT
}

// Equal - Two systems are equal when they share an EPSG code or, lacking codes, the same WKT.
func (c CRS) Equal(o CRS) bool {
	if c.Code != 0 || o.Code != 0 {
		return c.Code == o.Code
	}
	return strings.TrimSpace(c.WKT) == strings.TrimSpace(o.WKT)
}

var (
	epsgRe      = regexp.MustCompile(`(?i)^epsg:(\d+)$`)
	wktRootRe   = regexp.MustCompile(`(?i)^(PROJCS|GEOGCS|GEOCCS|COMPD_CS|PROJCRS|GEOGCRS|GEODCRS|COMPOUNDCRS)\s*\[`)
	authorityRe = regexp.MustCompile(`(?i)(?:AUTHORITY|ID)\s*\[\s*"EPSG"\s*,\s*"?(\d+)"?\s*\]`)
)

// FormatCRS - Builds a CRS from a CRS, *CRS, an int EPSG code or a string
// holding either "EPSG:<code>" or WKT.
// The EPSG code of a WKT comes from its root AUTHORITY (the last one in the text).
func FormatCRS(v any) (CRS, error) {
	switch c := v.(type) {
	case CRS:
		return c, nil
	case *CRS:
		if c == nil {
			return CRS{}, ErrInvalidCRS
		}
		return *c, nil
	case int:
		if c <= 0 {
			return CRS{}, fmt.Errorf("%w: EPSG code %d", ErrInvalidCRS, c)
		}
		return CRS{Code: c}, nil
	case string:
		s := strings.TrimSpace(c)
		if m := epsgRe.FindStringSubmatch(s); m != nil {
			code, err := strconv.Atoi(m[1])
			if err != nil || code <= 0 {
				return CRS{}, fmt.Errorf("%w: %q", ErrInvalidCRS, c)
			}
			return CRS{Code: code}, nil
		}
		if !wktRootRe.MatchString(s) || strings.Count(s, "[") != strings.Count(s, "]") {
			return CRS{}, fmt.Errorf("%w: %q", ErrInvalidCRS, c)
		}
		crs := CRS{WKT: s}
		if all := authorityRe.FindAllStringSubmatch(s, -1); len(all) > 0 {
			crs.Code, _ = strconv.Atoi(all[len(all)-1][1])
		}
		return crs, nil
	}
	return CRS{}, fmt.Errorf("%w: %T", ErrInvalidCRS, v)
}

var projections = map[[2]int]orb.Projection{
	{EPSGWGS84, EPSGWebMercator}: project.WGS84.ToMercator,
	{EPSGWebMercator, EPSGWGS84}: project.Mercator.ToWGS84,
}

// ConvertProjections - Converts points from the in system to the out system.
// in and out are passed through FormatCRS. Geographic points are (longitude, latitude).
// The input slice is not modified.
func ConvertProjections(points []orb.Point, in, out any) ([]orb.Point, error) {
	inCRS, err := FormatCRS(in)
	if err != nil {
		return nil, err
	}
	outCRS, err := FormatCRS(out)
	if err != nil {
		return nil, err
	}
	res := make([]orb.Point, len(points))
	if inCRS.Equal(outCRS) {
		copy(res, points)
		return res, nil
	}
	proj, ok := projections[[2]int{inCRS.Code, outCRS.Code}]
	if !ok {
		return nil, fmt.Errorf("%w: %s to %s", ErrUnsupportedTransform, inCRS, outCRS)
	}
	for i, p := range points {
		res[i] = proj(p)
	}
	return res, nil
}

// ToWGS84 - Converts points from the in system to EPSG:4326.
func ToWGS84(points []orb.Point, in any) ([]orb.Point, error) {
	return ConvertProjections(points, in, EPSGWGS84)
}

// FromWGS84 - Converts EPSG:4326 points to the out system.
func FromWGS84(points []orb.Point, out any) ([]orb.Point, error) {
	return ConvertProjections(points, EPSGWGS84, out)
}
