// This file is part of spicebox.
//
// Copyright (C) 2019-2025  Rawser Spicer
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

/*
Package vector - GeoJSON vector data sets, feature lookup, centroids and hulls.
*/
package vector

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/paulmach/orb/geojson"
)

// ErrUnsupportedType - The GeoJSON object can't be read as features.
var ErrUnsupportedType = errors.New("unsupported GeoJSON type")

// Layer - Named collection of features.
type Layer struct {
	Name     string
	Features *geojson.FeatureCollection
}

// Dataset - Vector data source made of layers.
type Dataset struct {
	Path   string
	Layers []*Layer
}

// Load - Opens a GeoJSON file as a data set with a single layer named after
// the file. A bare Feature or geometry becomes a one feature layer.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open vector: %w", err)
	}
	fc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to read vector %s: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &Dataset{Path: path, Layers: []*Layer{{Name: name, Features: fc}}}, nil
}

// Decode - Parses a FeatureCollection, Feature or geometry object.
func Decode(data []byte) (*geojson.FeatureCollection, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	switch head.Type {
	case "FeatureCollection":
		return geojson.UnmarshalFeatureCollection(data)
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, err
		}
		return geojson.NewFeatureCollection().Append(f), nil
	case "Point", "MultiPoint", "LineString", "MultiLineString", "Polygon", "MultiPolygon", "GeometryCollection":
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, err
		}
		return geojson.NewFeatureCollection().Append(geojson.NewFeature(g.Geometry())), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, head.Type)
}

// Layer - Returns the named layer.
func (ds *Dataset) Layer(name string) (*Layer, bool) {
	for _, l := range ds.Layers {
		if l.Name == name {
			return l, true
		}
	}
	return nil, false
}

// Features - Features of every layer keyed by layer name and then feature name.
// The feature name is the nameField property; without it the feature id is
// used, and without an id its 1 based position in the layer.
// Later features replace earlier ones with the same name.
func (ds *Dataset) Features(nameField string) map[string]map[string]*geojson.Feature {
	out := make(map[string]map[string]*geojson.Feature, len(ds.Layers))
	for _, l := range ds.Layers {
		features := map[string]*geojson.Feature{}
		for i, f := range l.Features.Features {
			features[featureName(f, nameField, i+1)] = f
		}
		out[l.Name] = features
	}
	return out
}

func featureName(f *geojson.Feature, nameField string, position int) string {
	if v, ok := f.Properties[nameField]; ok && v != nil {
		return fmt.Sprint(v)
	}
	if f.ID != nil {
		return fmt.Sprint(f.ID)
	}
	return strconv.Itoa(position)
}

// Save - Writes the collection as a new GeoJSON file, replacing any existing one.
func Save(path string, fc *geojson.FeatureCollection) error {
	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode features: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write vector: %w", err)
	}
	return nil
}
