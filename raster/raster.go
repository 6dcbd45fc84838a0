// This file is part of spicebox.
//
// Copyright (C) 2019-2025  Rawser Spicer
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

/*
Package raster - Single band raster I/O, zooming, masking, clipping and figures.

Rasters are stored as ESRI ASCII grids (.asc) with the projection WKT in a
.prj sidecar file. No data cells are NaN in memory.
*/
package raster

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"

	"github.com/spicebox-go/spicebox/transforms"
)

// Logger instance set to `io.Discard` by default.
// Enable debug logging by setting: `Logger.SetOutput(os.Stderr)`.
var Logger = log.New(io.Discard, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)

var (
	// ErrShapeMismatch - Two arrays that must line up don't.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrRotatedTransform - The operation only supports north up transforms.
	ErrRotatedTransform = errors.New("rotated geotransforms are not supported")

	// ErrInvalidExtent - The extent is empty or doesn't overlap the raster.
	ErrInvalidExtent = errors.New("invalid extent")

	// ErrFormat - The file is not a valid ASCII grid.
	ErrFormat = errors.New("invalid ASCII grid")
)

// DefaultNoData - Written for NaN cells when the metadata has no other value.
const DefaultNoData = -9999

// Grid - Row major 2D array of cells.
type Grid struct {
	Rows, Cols int
	Data       []float64
}

// NewGrid - Returns a zero filled grid.
func NewGrid(rows, cols int) *Grid {
	if rows < 0 || cols < 0 {
		rows, cols = 0, 0
	}
	return &Grid{Rows: rows, Cols: cols, Data: make([]float64, rows*cols)}
}

// FromRows - Builds a grid from equal length rows.
func FromRows(rows [][]float64) (*Grid, error) {
	if len(rows) == 0 {
		return NewGrid(0, 0), nil
	}
	g := NewGrid(len(rows), len(rows[0]))
	for r, row := range rows {
		if len(row) != g.Cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrShapeMismatch, r, len(row), g.Cols)
		}
		copy(g.Data[r*g.Cols:], row)
	}
	return g, nil
}

func (g *Grid) At(row, col int) float64 {
	return g.Data[row*g.Cols+col]
}

func (g *Grid) Set(row, col int, v float64) {
	g.Data[row*g.Cols+col] = v
}

// Row - Returns a view of the row.
func (g *Grid) Row(row int) []float64 {
	return g.Data[row*g.Cols : (row+1)*g.Cols]
}

// Sub - Copies the [r0, r1) x [c0, c1) window.
// Bounds are clamped to the grid; an inverted window is empty.
func (g *Grid) Sub(r0, c0, r1, c1 int) *Grid {
	r0, r1 = clampRange(r0, r1, g.Rows)
	c0, c1 = clampRange(c0, c1, g.Cols)
	out := NewGrid(r1-r0, c1-c0)
	for r := r0; r < r1; r++ {
		copy(out.Row(r-r0), g.Data[r*g.Cols+c0:r*g.Cols+c1])
	}
	return out
}

func clampRange(lo, hi, n int) (int, int) {
	lo = min(max(lo, 0), n)
	hi = min(max(hi, lo), n)
	return lo, hi
}

// MinMax - Smallest and largest finite cell; ok is false when no cell is finite.
func (g *Grid) MinMax() (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range g.Data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		ok = true
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi, ok
}

// Metadata - Georeferencing of a raster.
// XSize is the number of columns and YSize the number of rows.
type Metadata struct {
	Transform  transforms.GeoTransform
	Projection string
	XSize      int
	YSize      int
	NoData     float64
}

// Pixel - (row, col) index.
type Pixel [2]int
