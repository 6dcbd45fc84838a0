// This file is part of spicebox.
//
// Copyright (C) 2019-2025  Rawser Spicer
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package raster

import (
	"fmt"
	"math"

	"github.com/spicebox-go/spicebox/transforms"
)

// zoomOrigin - Top left corner of a zoom window, clamped at 0.
func zoomOrigin(pixel Pixel, radius int) Pixel {
	return Pixel{max(pixel[0]-radius, 0), max(pixel[1]-radius, 0)}
}

// ZoomTo - Copies the window of the given radius around pixel.
// The window is [pixel-radius, pixel+radius) clamped to the grid, with a
// radius of 0 returning the single pixel.
func ZoomTo(g *Grid, pixel Pixel, radius int) *Grid {
	if radius == 0 {
		return g.Sub(pixel[0], pixel[1], pixel[0]+1, pixel[1]+1)
	}
	origin := zoomOrigin(pixel, radius)
	return g.Sub(origin[0], origin[1], pixel[0]+radius, pixel[1]+radius)
}

// ZoomGeoTransform - Transform of the grid returned by ZoomTo.
func ZoomGeoTransform(md Metadata, pixel Pixel, radius int) transforms.GeoTransform {
	origin := zoomOrigin(pixel, radius)
	p := transforms.ToGeo(md.Transform, [2]float64{float64(origin[0]), float64(origin[1])})[0]
	gt := md.Transform
	gt[0], gt[3] = p.X(), p.Y()
	return gt
}

// Mask - Sets every cell where mask is true to value, in place.
func Mask(g *Grid, mask []bool, value float64) error {
	if len(mask) != len(g.Data) {
		return fmt.Errorf("%w: mask has %d cells, grid %d", ErrShapeMismatch, len(mask), len(g.Data))
	}
	for i, m := range mask {
		if m {
			g.Data[i] = value
		}
	}
	return nil
}

// Extent - Projection window as (minX, maxY, maxX, minY), upper left then lower right.
type Extent [4]float64

// Clip - Copies the part of the grid inside extent.
// The window snaps to the grid: the offset rounds down and the size to the
// nearest cell. Cells of the window outside the grid are NaN.
func Clip(g *Grid, md Metadata, extent Extent) (*Grid, transforms.GeoTransform, error) {
	gt := md.Transform
	if gt.Rotated() {
		return nil, gt, ErrRotatedTransform
	}
	if gt[1] == 0 || gt[5] == 0 {
		return nil, gt, fmt.Errorf("%w: zero pixel size", ErrInvalidExtent)
	}
	ulx, uly, lrx, lry := extent[0], extent[1], extent[2], extent[3]

	colOff := math.Floor((ulx-gt[0])/gt[1] + 0.001)
	rowOff := math.Floor((uly-gt[3])/gt[5] + 0.001)
	cols := int(math.Round((lrx - ulx) / gt[1]))
	rows := int(math.Round((lry - uly) / gt[5]))
	if cols <= 0 || rows <= 0 {
		return nil, gt, fmt.Errorf("%w: %v gives a %dx%d window", ErrInvalidExtent, extent, rows, cols)
	}
	r0, c0 := int(rowOff), int(colOff)
	if r0 >= g.Rows || c0 >= g.Cols || r0+rows <= 0 || c0+cols <= 0 {
		return nil, gt, fmt.Errorf("%w: %v is outside the raster", ErrInvalidExtent, extent)
	}

	out := NewGrid(rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			sr, sc := r0+r, c0+c
			v := math.NaN()
			if sr >= 0 && sr < g.Rows && sc >= 0 && sc < g.Cols {
				v = g.At(sr, sc)
			}
			out.Set(r, c, v)
		}
	}
	clipped := transforms.NorthUp(gt[0]+colOff*gt[1], gt[3]+rowOff*gt[5], gt[1], gt[5])
	Logger.Printf("clip %v: offset (%d, %d) size %dx%d\n", extent, r0, c0, rows, cols)
	return out, clipped, nil
}

// ClipFile - Clips the raster at in to extent and saves it to out.
func ClipFile(in, out string, extent Extent) error {
	g, md, err := Load(in)
	if err != nil {
		return err
	}
	clipped, gt, err := Clip(g, md, extent)
	if err != nil {
		return fmt.Errorf("failed to clip %s: %w", in, err)
	}
	noData := md.NoData
	if math.IsNaN(noData) {
		noData = DefaultNoData
	}
	return SaveWithNoData(out, clipped, gt, md.Projection, noData)
}
