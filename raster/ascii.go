// This file is part of spicebox.
//
// Copyright (C) 2019-2025  Rawser Spicer
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package raster

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spicebox-go/spicebox/transforms"
)

// PrjPath - Path of the projection sidecar for a raster file.
func PrjPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".prj"
}

// Load - Reads an ASCII grid and its .prj sidecar, if present.
func Load(path string) (*Grid, Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Metadata{}, fmt.Errorf("failed to open raster: %w", err)
	}
	defer f.Close()

	g, md, err := Decode(f)
	if err != nil {
		return nil, Metadata{}, fmt.Errorf("failed to read raster %s: %w", path, err)
	}

	prj, err := os.ReadFile(PrjPath(path))
	switch {
	case err == nil:
		md.Projection = strings.TrimSpace(string(prj))
	case !errors.Is(err, fs.ErrNotExist):
		return nil, Metadata{}, fmt.Errorf("failed to read projection: %w", err)
	}
	Logger.Printf("loaded %s: %dx%d\n", path, md.YSize, md.XSize)
	return g, md, nil
}

// Save - Writes grid as an ASCII grid and the projection, when not empty, to the .prj sidecar.
func Save(path string, g *Grid, gt transforms.GeoTransform, projection string) error {
	return SaveWithNoData(path, g, gt, projection, DefaultNoData)
}

// SaveWithNoData - Save using the given value for NaN cells.
func SaveWithNoData(path string, g *Grid, gt transforms.GeoTransform, projection string, noData float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create raster: %w", err)
	}
	bw := bufio.NewWriter(f)
	err = Encode(bw, g, gt, noData)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to write raster %s: %w", path, err)
	}
	if projection != "" {
		if err := os.WriteFile(PrjPath(path), []byte(projection+"\n"), 0o644); err != nil {
			return fmt.Errorf("failed to write projection: %w", err)
		}
	}
	Logger.Printf("saved %s: %dx%d\n", path, g.Rows, g.Cols)
	return nil
}

// Encode - Writes the ASCII grid header and cells.
// Non square cells use the dx/dy header pair.
func Encode(w io.Writer, g *Grid, gt transforms.GeoTransform, noData float64) error {
	if gt.Rotated() {
		return ErrRotatedTransform
	}
	if gt[1] <= 0 || gt[5] >= 0 {
		return fmt.Errorf("%w: pixel size (%g, %g) is not north up", ErrRotatedTransform, gt[1], gt[5])
	}
	if len(g.Data) != g.Rows*g.Cols {
		return fmt.Errorf("%w: %d cells for %dx%d", ErrShapeMismatch, len(g.Data), g.Rows, g.Cols)
	}
	ff := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

	header := fmt.Sprintf("ncols %d\nnrows %d\nxllcorner %s\nyllcorner %s\n",
		g.Cols, g.Rows, ff(gt[0]), ff(gt[3]+float64(g.Rows)*gt[5]))
	if gt[1] == -gt[5] {
		header += fmt.Sprintf("cellsize %s\n", ff(gt[1]))
	} else {
		header += fmt.Sprintf("dx %s\ndy %s\n", ff(gt[1]), ff(-gt[5]))
	}
	header += fmt.Sprintf("NODATA_value %s\n", ff(noData))
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}

	line := make([]string, g.Cols)
	for r := 0; r < g.Rows; r++ {
		for c, v := range g.Row(r) {
			if math.IsNaN(v) {
				v = noData
			}
			line[c] = ff(v)
		}
		if _, err := io.WriteString(w, strings.Join(line, " ")+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// Decode - Reads an ASCII grid. Cells equal to NODATA_value become NaN.
func Decode(r io.Reader) (*Grid, Metadata, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)

	header := map[string]float64{}
	var first string
	for sc.Scan() {
		key := strings.ToLower(sc.Text())
		if _, err := strconv.ParseFloat(key, 64); err == nil {
			first = key
			break
		}
		if !sc.Scan() {
			return nil, Metadata{}, fmt.Errorf("%w: missing value for %s", ErrFormat, key)
		}
		v, err := strconv.ParseFloat(sc.Text(), 64)
		if err != nil {
			return nil, Metadata{}, fmt.Errorf("%w: header %s: %w", ErrFormat, key, err)
		}
		header[key] = v
	}
	if err := sc.Err(); err != nil {
		return nil, Metadata{}, err
	}

	md, err := headerMetadata(header)
	if err != nil {
		return nil, Metadata{}, err
	}
	g := NewGrid(md.YSize, md.XSize)
	_, hasNoData := header["nodata_value"]

	i := 0
	store := func(tok string) error {
		if i >= len(g.Data) {
			return fmt.Errorf("%w: more than %d cells", ErrFormat, len(g.Data))
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return fmt.Errorf("%w: cell %d: %w", ErrFormat, i, err)
		}
		if hasNoData && v == md.NoData {
			v = math.NaN()
		}
		g.Data[i] = v
		i++
		return nil
	}
	if first != "" {
		if err := store(first); err != nil {
			return nil, Metadata{}, err
		}
	}
	for sc.Scan() {
		if err := store(sc.Text()); err != nil {
			return nil, Metadata{}, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, Metadata{}, err
	}
	if i != len(g.Data) {
		return nil, Metadata{}, fmt.Errorf("%w: %d cells for %dx%d", ErrFormat, i, g.Rows, g.Cols)
	}
	return g, md, nil
}

// MaxCells - Largest grid Decode allocates.
var MaxCells = 1 << 28

func headerMetadata(h map[string]float64) (Metadata, error) {
	for _, key := range []string{"ncols", "nrows"} {
		if v, ok := h[key]; !ok || v < 0 || math.IsInf(v, 0) || v != math.Trunc(v) {
			return Metadata{}, fmt.Errorf("%w: bad or missing %s", ErrFormat, key)
		}
	}
	if cells := h["ncols"] * h["nrows"]; cells > float64(MaxCells) {
		return Metadata{}, fmt.Errorf("%w: %g cells exceeds the limit of %d", ErrFormat, cells, MaxCells)
	}
	md := Metadata{
		XSize:  int(h["ncols"]),
		YSize:  int(h["nrows"]),
		NoData: math.NaN(),
	}
	if v, ok := h["nodata_value"]; ok {
		md.NoData = v
	}

	dx, okX := h["dx"]
	dy, okY := h["dy"]
	if cs, ok := h["cellsize"]; ok {
		dx, dy, okX, okY = cs, cs, true, true
	}
	if !okX || !okY || dx <= 0 || dy <= 0 {
		return Metadata{}, fmt.Errorf("%w: bad or missing cell size", ErrFormat)
	}

	var x, y float64
	switch {
	case has(h, "xllcorner") && has(h, "yllcorner"):
		x, y = h["xllcorner"], h["yllcorner"]
	case has(h, "xllcenter") && has(h, "yllcenter"):
		x, y = h["xllcenter"]-dx/2, h["yllcenter"]-dy/2
	default:
		return Metadata{}, fmt.Errorf("%w: missing lower left corner", ErrFormat)
	}
	md.Transform = transforms.NorthUp(x, y+float64(md.YSize)*dy, dx, -dy)
	return md, nil
}

func has(h map[string]float64, key string) bool {
	_, ok := h[key]
	return ok
}
