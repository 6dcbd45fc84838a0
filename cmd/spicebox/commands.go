// This file is part of spicebox.
//
// Copyright (C) 2019-2025  Rawser Spicer
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/spicebox-go/spicebox/filetools"
	"github.com/spicebox-go/spicebox/internal/ctxlog"
	"github.com/spicebox-go/spicebox/radiometry"
	"github.com/spicebox-go/spicebox/raster"
	"github.com/spicebox-go/spicebox/transforms"
	"github.com/spicebox-go/spicebox/vector"
)

func runTOA(ctx context.Context, f *flags, stdout io.Writer) error {
	in, out, date := f.str("--in"), f.str("--out"), f.str("--date")
	band := radiometry.Band{
		Gain:               f.float("--gain"),
		Offset:             f.float("--offset"),
		AbsCalFactor:       f.float("--abscal"),
		EffectiveBandwidth: f.float("--bandwidth"),
		Irradiance:         f.float("--irradiance"),
	}
	elevation := f.float("--sun-elevation")
	if f.err != nil {
		return f.err
	}
	acquired, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return fmt.Errorf("%w: --date: %w", errUsage, err)
	}

	g, md, err := raster.Load(in)
	if err != nil {
		return err
	}
	reflectance, err := band.Reflectance(g.Data, acquired, elevation)
	if err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("reflectance computed",
		"julian_day", radiometry.JulianDay(acquired),
		"earth_sun_distance", radiometry.EarthSunDistance(radiometry.JulianDay(acquired)))
	result := &raster.Grid{Rows: g.Rows, Cols: g.Cols, Data: reflectance}
	return raster.SaveWithNoData(out, result, md.Transform, md.Projection, noDataOrDefault(md.NoData))
}

func noDataOrDefault(v float64) float64 {
	if math.IsNaN(v) {
		return raster.DefaultNoData
	}
	return v
}

func parseExtent(s string) (raster.Extent, error) {
	var e raster.Extent
	parts := strings.Split(s, ",")
	if len(parts) != len(e) {
		return e, fmt.Errorf("%w: --extent needs 4 comma separated numbers, got %q", errUsage, s)
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return e, fmt.Errorf("%w: --extent: %w", errUsage, err)
		}
		e[i] = v
	}
	return e, nil
}

func runClip(ctx context.Context, f *flags, stdout io.Writer) error {
	in, out, ext := f.str("--in"), f.str("--out"), f.str("--extent")
	if f.err != nil {
		return f.err
	}
	extent, err := parseExtent(ext)
	if err != nil {
		return err
	}
	if err := raster.ClipFile(in, out, extent); err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Info("raster clipped", "in", in, "out", out)
	return nil
}

func runFigure(ctx context.Context, f *flags, stdout io.Writer) error {
	in, out := f.str("--in"), f.str("--out")
	opts := raster.FigureOptions{
		Title:    f.str("--title"),
		Colormap: f.str("--cmap"),
		Scale:    f.integer("--scale"),
	}
	if f.isSet("--vmin") {
		opts.VMin = raster.Float(f.float("--vmin"))
	}
	if f.isSet("--vmax") {
		opts.VMax = raster.Float(f.float("--vmax"))
	}
	if labels := f.str("--tick-labels"); labels != "" {
		opts.TickLabels = strings.Split(labels, ",")
	}
	if f.err != nil {
		return f.err
	}
	if err := raster.FigureFile(in, out, opts); err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Info("figure written", "in", in, "out", out)
	return nil
}

// parseCRS - EPSG codes may be given bare.
func parseCRS(s string) (transforms.CRS, error) {
	var v any = s
	if code, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		v = code
	}
	crs, err := transforms.FormatCRS(v)
	if err != nil {
		return crs, fmt.Errorf("%w: --crs: %w", errUsage, err)
	}
	return crs, nil
}

func runCentroids(ctx context.Context, f *flags, stdout io.Writer) error {
	in, nameField, out := f.str("--in"), f.str("--name-field"), f.str("--out")
	crsStr := f.str("--crs")
	if f.err != nil {
		return f.err
	}
	var crs *transforms.CRS
	if crsStr != "" {
		c, err := parseCRS(crsStr)
		if err != nil {
			return err
		}
		crs = &c
	}

	ds, err := vector.Load(in)
	if err != nil {
		return err
	}
	centroids := vector.Centroids(ds.Features(nameField))
	if crs != nil {
		for _, points := range centroids {
			for name, p := range points {
				wgs, err := transforms.ToWGS84([]orb.Point{p}, *crs)
				if err != nil {
					return err
				}
				points[name] = wgs[0]
			}
		}
	}

	if out == "-" {
		return vector.CentroidTable(stdout, centroids)
	}
	file, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	if err := vector.CentroidTable(file, centroids); err != nil {
		file.Close()
		return fmt.Errorf("failed to write table: %w", err)
	}
	return file.Close()
}

func runHull(ctx context.Context, f *flags, stdout io.Writer) error {
	in, out, name := f.str("--in"), f.str("--out"), f.str("--name")
	if f.err != nil {
		return f.err
	}
	ds, err := vector.Load(in)
	if err != nil {
		return err
	}
	var geoms []orb.Geometry
	for _, l := range ds.Layers {
		for _, feat := range l.Features.Features {
			if feat.Geometry != nil {
				geoms = append(geoms, feat.Geometry)
			}
		}
	}
	hull := vector.ConvexHull(geoms...)
	if hull == nil {
		return errors.New("no geometries to build a hull from")
	}
	feat := geojson.NewFeature(hull)
	feat.Properties["name"] = name
	if err := vector.Save(out, geojson.NewFeatureCollection().Append(feat)); err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Info("hull written", "in", in, "out", out, "geometries", len(geoms))
	return nil
}

func runArchive(ctx context.Context, f *flags, stdout io.Writer) error {
	src, out := f.str("--src"), f.str("--out")
	compression, children := f.str("--compression"), f.boolean("--children")
	if f.err != nil {
		return f.err
	}
	c, err := filetools.ParseCompression(compression)
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	if children {
		archives, err := filetools.CompressChildren(ctx, src, cmp.Or(out, "."), c)
		if err != nil {
			return err
		}
		for _, a := range archives {
			fmt.Fprintln(stdout, a)
		}
		return nil
	}
	archive := out
	if archive == "" {
		if archive, err = filetools.ArchiveName(src, c); err != nil {
			return err
		}
	}
	if err := filetools.CompressTar(ctx, src, archive, c); err != nil {
		return err
	}
	fmt.Fprintln(stdout, archive)
	return nil
}
