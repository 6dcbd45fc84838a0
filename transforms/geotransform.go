// This file is part of spicebox.
//
// Copyright (C) 2019-2025  Rawser Spicer
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

/*
Package transforms - Coordinate transforms between pixel space, map space and
coordinate reference systems.
*/
package transforms

import (
	"errors"

	"github.com/paulmach/orb"
)

// ErrSingularTransform - The geotransform has no inverse.
var ErrSingularTransform = errors.New("geotransform is not invertible")

// GeoTransform - Affine raster transform in GDAL order:
//
//	(originX, pixelWidth, xRotation, originY, yRotation, pixelHeight)
//
// Xgeo = gt[0] + col*gt[1] + row*gt[2]
// Ygeo = gt[3] + col*gt[4] + row*gt[5]
type GeoTransform [6]float64

// NorthUp - Builds a transform without rotation.
func NorthUp(originX, originY, pixelWidth, pixelHeight float64) GeoTransform {
	return GeoTransform{originX, pixelWidth, 0, originY, 0, pixelHeight}
}

// Rotated - Whether the transform has rotation terms.
func (gt GeoTransform) Rotated() bool {
	return gt[2] != 0 || gt[4] != 0
}

// Invert - Returns the transform going from map to pixel space.
func (gt GeoTransform) Invert() (GeoTransform, error) {
	if !gt.Rotated() {
		if gt[1] == 0 || gt[5] == 0 {
			return GeoTransform{}, ErrSingularTransform
		}
		return GeoTransform{
			-gt[0] / gt[1], 1 / gt[1], 0,
			-gt[3] / gt[5], 0, 1 / gt[5],
		}, nil
	}
	det := gt[1]*gt[5] - gt[2]*gt[4]
	if det == 0 {
		return GeoTransform{}, ErrSingularTransform
	}
	inv := 1 / det
	return GeoTransform{
		(gt[2]*gt[3] - gt[0]*gt[5]) * inv,
		gt[5] * inv,
		-gt[2] * inv,
		(-gt[1]*gt[3] + gt[0]*gt[4]) * inv,
		-gt[4] * inv,
		gt[1] * inv,
	}, nil
}

// apply - Maps (a, b) through the transform: a is the column (x) term and b the row (y) term.
func (gt GeoTransform) apply(a, b float64) (float64, float64) {
	return gt[0] + a*gt[1] + b*gt[2], gt[3] + a*gt[4] + b*gt[5]
}

// ToPixel - Converts map coordinates (x, y) to fractional pixel coordinates (row, col).
func ToPixel(gt GeoTransform, points ...orb.Point) ([][2]float64, error) {
	inv, err := gt.Invert()
	if err != nil {
		return nil, err
	}
	out := make([][2]float64, len(points))
	for i, p := range points {
		col, row := inv.apply(p.X(), p.Y())
		out[i] = [2]float64{row, col}
	}
	return out, nil
}

// ToGeo - Converts pixel coordinates (row, col) to map coordinates (x, y).
func ToGeo(gt GeoTransform, pixels ...[2]float64) []orb.Point {
	out := make([]orb.Point, len(pixels))
	for i, px := range pixels {
		x, y := gt.apply(px[1], px[0])
		out[i] = orb.Point{x, y}
	}
	return out
}
