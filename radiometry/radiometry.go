// This file is part of spicebox.
//
// Copyright (C) 2019-2025  Rawser Spicer
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

/*
Package radiometry - Radiometric calibration of DigitalGlobe (Maxar) imagery.

The formulas follow the "Radiometric Use of WorldView-3 Imagery" technical note
(section 4.1.2) and the "Absolute Radiometric Calibration" fleet document:

	radiance    = gain * DN * (absCalFactor / effectiveBandwidth) + offset
	reflectance = radiance * dES² * π / (irradiance * cos(θs))

NaN values pass through every function so masked pixels stay masked.
*/
package radiometry

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// J2000 - Julian day of 2000-01-01 12:00 UT.
const J2000 = 2451545.0

// ErrZeroBandwidth - The effective bandwidth can't be zero.
var ErrZeroBandwidth = errors.New("effective bandwidth must not be zero")

// ErrInvalidGeometry - The solar irradiance or zenith angle make the reflectance undefined.
var ErrInvalidGeometry = errors.New("invalid solar geometry")

// JulianDay - Returns the Julian day for the given time (converted to UT).
//
// Meeus, Jean. "Astronomical Algorithms, 2nd Ed." Richmond, VA: Willmann-Bell (1998). Pg 61.
func JulianDay(t time.Time) float64 {
	t = t.UTC()
	year, month, day := t.Year(), int(t.Month()), t.Day()
	if month <= 2 {
		year--
		month += 12
	}
	ut := float64(t.Hour()) +
		float64(t.Minute())/60 +
		(float64(t.Second())+float64(t.Nanosecond())/1e9)/3600

	a := year / 100
	b := 2 - a + a/4
	return math.Floor(365.25*float64(year+4716)) +
		math.Floor(30.6001*float64(month+1)) +
		float64(day) + ut/24 + float64(b) - 1524.5
}

// EarthSunDistance - Earth-Sun distance in astronomical units for a Julian day.
func EarthSunDistance(jd float64) float64 {
	d := jd - J2000
	g := degToRad(357.529 + 0.98560028*d)
	return 1.00014 - 0.01671*math.Cos(g) - 0.00014*math.Cos(2*g)
}

// SolarZenith - Solar zenith angle in radians from the mean sun elevation in degrees.
func SolarZenith(sunElevationDeg float64) float64 {
	return degToRad(90 - sunElevationDeg)
}

func degToRad(d float64) float64 {
	return d * math.Pi / 180
}

// AbsoluteRadiance - Top-of-atmosphere spectral radiance from raw digital numbers.
// The input slice is not modified.
func AbsoluteRadiance(data []float64, gain, offset, absCalFactor, effectiveBandwidth float64) ([]float64, error) {
	if effectiveBandwidth == 0 {
		return nil, ErrZeroBandwidth
	}
	factor := gain * (absCalFactor / effectiveBandwidth)
	out := make([]float64, len(data))
	for i, dn := range data {
		out[i] = dn*factor + offset
	}
	return out, nil
}

// TOAReflectance - Top-of-atmosphere reflectance from radiance.
// dES is the Earth-Sun distance in AU, irradiance the band solar irradiance
// and theta the solar zenith angle in radians.
func TOAReflectance(radiance []float64, dES, irradiance, theta float64) ([]float64, error) {
	cos := math.Cos(theta)
	if irradiance == 0 || cos <= 0 {
		return nil, fmt.Errorf("%w: irradiance %g, zenith %g rad", ErrInvalidGeometry, irradiance, theta)
	}
	factor := dES * dES * math.Pi / (irradiance * cos)
	out := make([]float64, len(radiance))
	for i, l := range radiance {
		out[i] = l * factor
	}
	return out, nil
}

// Band - Calibration values for one band.
// Gain and Offset come from the fleet calibration tables, AbsCalFactor and
// EffectiveBandwidth from the image metadata (IMD) and Irradiance from the
// solar irradiance table.
type Band struct {
	Gain               float64
	Offset             float64
	AbsCalFactor       float64
	EffectiveBandwidth float64
	Irradiance         float64
}

// Reflectance - Converts digital numbers straight to TOA reflectance.
func (b Band) Reflectance(data []float64, acquired time.Time, sunElevationDeg float64) ([]float64, error) {
	radiance, err := AbsoluteRadiance(data, b.Gain, b.Offset, b.AbsCalFactor, b.EffectiveBandwidth)
	if err != nil {
		return nil, err
	}
	dES := EarthSunDistance(JulianDay(acquired))
	return TOAReflectance(radiance, dES, b.Irradiance, SolarZenith(sunElevationDeg))
}
