// This file is part of spicebox.
//
// Copyright (C) 2019-2025  Rawser Spicer
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package raster

import (
	"cmp"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"strconv"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Figure layout in output pixels.
const (
	figureMargin   = 10
	colorbarWidth  = 15
	tickLength     = 4
	defaultMapSize = 256
)

// FigureOptions - Rendering options for Figure.
//
// With TickLabels the figure is categorical: the colormap is split into
// len(TickLabels) colors, the value range becomes [-0.5, n-0.5] and the
// ticks default to 0..n-1.
type FigureOptions struct {
	Title      string
	Colormap   string // viridis when empty
	VMin, VMax *float64
	Ticks      []float64
	TickLabels []string
	// Scale is the number of output pixels per cell; 0 picks one that
	// makes the longest side at least 256 pixels.
	Scale int
}

// Float - Pointer helper for VMin and VMax.
func Float(v float64) *float64 { return &v }

type figureLayout struct {
	scale, titleHeight int
	mapRect, barRect   image.Rectangle
	width, height      int
}

func layout(g *Grid, opts FigureOptions, labelWidth int) figureLayout {
	l := figureLayout{scale: opts.Scale, titleHeight: figureMargin}
	if l.scale <= 0 {
		l.scale = max(1, defaultMapSize/max(g.Rows, g.Cols, 1))
	}
	face := basicfont.Face7x13
	if opts.Title != "" {
		l.titleHeight = face.Height + 2*figureMargin
	}
	w, h := g.Cols*l.scale, max(g.Rows*l.scale, face.Height)
	l.mapRect = image.Rect(figureMargin, l.titleHeight, figureMargin+g.Cols*l.scale, l.titleHeight+g.Rows*l.scale)
	barX := figureMargin + w + figureMargin
	l.barRect = image.Rect(barX, l.titleHeight, barX+colorbarWidth, l.titleHeight+h)
	l.width = l.barRect.Max.X + tickLength + 2 + labelWidth + figureMargin
	l.height = l.titleHeight + h + figureMargin
	return l
}

// Figure - Renders grid as a PNG with a colorbar and title.
// NaN cells are transparent.
func Figure(w io.Writer, g *Grid, opts FigureOptions) error {
	cmap, err := LookupColormap(cmp.Or(opts.Colormap, "viridis"))
	if err != nil {
		return err
	}

	vmin, vmax, ok := g.MinMax()
	if !ok {
		vmin, vmax = 0, 1
	}
	ticks := opts.Ticks
	if n := len(opts.TickLabels); n > 0 {
		cmap = cmap.Discrete(n)
		vmin, vmax = -0.5, float64(n)-0.5
		if ticks == nil {
			for i := 0; i < n; i++ {
				ticks = append(ticks, float64(i))
			}
		}
	}
	if opts.VMin != nil {
		vmin = *opts.VMin
	}
	if opts.VMax != nil {
		vmax = *opts.VMax
	}
	if vmax < vmin {
		return fmt.Errorf("vmax %g is less than vmin %g", vmax, vmin)
	}
	if ticks == nil {
		ticks = linspace(vmin, vmax, 5)
	}
	norm := func(v float64) float64 {
		if vmax == vmin {
			return 0
		}
		return (v - vmin) / (vmax - vmin)
	}

	labels := make([]string, len(ticks))
	labelWidth := 0
	face := basicfont.Face7x13
	for i, t := range ticks {
		if i < len(opts.TickLabels) {
			labels[i] = opts.TickLabels[i]
		} else {
			labels[i] = strconv.FormatFloat(t, 'g', 4, 64)
		}
		labelWidth = max(labelWidth, font.MeasureString(face, labels[i]).Ceil())
	}

	l := layout(g, opts, labelWidth)
	img := image.NewNRGBA(image.Rect(0, 0, l.width, l.height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	cells := image.NewNRGBA(image.Rect(0, 0, g.Cols, g.Rows))
	for r := 0; r < g.Rows; r++ {
		for c, v := range g.Row(r) {
			if math.IsNaN(v) {
				cells.SetNRGBA(c, r, color.NRGBA{})
				continue
			}
			cells.SetNRGBA(c, r, cmap(norm(v)))
		}
	}
	draw.NearestNeighbor.Scale(img, l.mapRect, cells, cells.Bounds(), draw.Src, nil)

	bar := l.barRect
	for y := bar.Min.Y; y < bar.Max.Y; y++ {
		t := 1 - float64(y-bar.Min.Y)/float64(max(bar.Dy()-1, 1))
		draw.Draw(img, image.Rect(bar.Min.X, y, bar.Max.X, y+1), image.NewUniform(cmap(t)), image.Point{}, draw.Src)
	}

	d := &font.Drawer{Dst: img, Src: image.Black, Face: face}
	for i, t := range ticks {
		n := norm(t)
		if n < 0 || n > 1 {
			continue
		}
		y := bar.Max.Y - 1 - int(math.Round(n*float64(bar.Dy()-1)))
		draw.Draw(img, image.Rect(bar.Max.X, y, bar.Max.X+tickLength, y+1), image.Black, image.Point{}, draw.Src)
		d.Dot = fixed.P(bar.Max.X+tickLength+2, y+face.Ascent/2)
		d.DrawString(labels[i])
	}

	if opts.Title != "" {
		tw := font.MeasureString(face, opts.Title).Ceil()
		d.Dot = fixed.P(max((l.width-tw)/2, 0), figureMargin+face.Ascent)
		d.DrawString(opts.Title)
	}

	return png.Encode(w, img)
}

// FigureFile - Renders the raster at rasterPath to a PNG at figurePath.
func FigureFile(rasterPath, figurePath string, opts FigureOptions) error {
	g, _, err := Load(rasterPath)
	if err != nil {
		return err
	}
	f, err := os.Create(figurePath)
	if err != nil {
		return fmt.Errorf("failed to create figure: %w", err)
	}
	err = Figure(f, g, opts)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(figurePath)
		return fmt.Errorf("failed to render %s: %w", figurePath, err)
	}
	Logger.Printf("figure %s written\n", figurePath)
	return nil
}

func linspace(lo, hi float64, n int) []float64 {
	if lo == hi {
		return []float64{lo}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return out
}
