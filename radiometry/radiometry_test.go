package radiometry

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJulianDay(t *testing.T) {
	testCases := []struct {
		name     string
		in       time.Time
		expected float64
	}{
		{"J2000", time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC), J2000},
		{"Sputnik", time.Date(1957, 10, 4, 19, 26, 24, 0, time.UTC), 2436116.31},
		{"midnight", time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), J2000 - 0.5},
		{"march", time.Date(2016, 3, 1, 0, 0, 0, 0, time.UTC), 2457448.5},
		{"non UTC zone", time.Date(2000, 1, 1, 14, 0, 0, 0, time.FixedZone("X", 2*3600)), J2000},
		{"sub second", time.Date(2000, 1, 1, 12, 0, 0, 500_000_000, time.UTC), J2000 + 0.5/86400},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, JulianDay(tc.in), 1e-6)
		})
	}
}

func TestEarthSunDistance(t *testing.T) {
	assert.InDelta(t, 0.983306, EarthSunDistance(J2000), 1e-6)
	assert.InDelta(t, 1.016693, EarthSunDistance(J2000+182.5), 1e-6)
}

func TestSolarZenith(t *testing.T) {
	assert.InDelta(t, 0, SolarZenith(90), 1e-12)
	assert.InDelta(t, math.Pi/6, SolarZenith(60), 1e-12)
}

func TestAbsoluteRadiance(t *testing.T) {
	in := []float64{1000, 0, math.NaN()}
	out, err := AbsoluteRadiance(in, 0.5, 1, 0.01, 0.05)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.InDelta(t, 101, out[0], 1e-9)
	assert.InDelta(t, 1, out[1], 1e-9)
	assert.True(t, math.IsNaN(out[2]))
	assert.Equal(t, 1000.0, in[0], "input must not be modified")

	_, err = AbsoluteRadiance(in, 1, 0, 1, 0)
	assert.ErrorIs(t, err, ErrZeroBandwidth)
}

func TestTOAReflectance(t *testing.T) {
	out, err := TOAReflectance([]float64{100}, 0.98, 1500, SolarZenith(60))
	require.NoError(t, err)
	assert.InDelta(t, 0.232263, out[0], 1e-6)

	_, err = TOAReflectance([]float64{100}, 1, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidGeometry)
	_, err = TOAReflectance([]float64{100}, 1, 1500, math.Pi/2)
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestBandReflectance(t *testing.T) {
	band := Band{Gain: 0.5, Offset: 1, AbsCalFactor: 0.01, EffectiveBandwidth: 0.05, Irradiance: 1500}
	acquired := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	out, err := band.Reflectance([]float64{1000}, acquired, 60)
	require.NoError(t, err)
	expected := 101 * 0.983306 * 0.983306 * math.Pi / (1500 * math.Cos(math.Pi/6))
	assert.InDelta(t, expected, out[0], 1e-6)

	_, err = Band{}.Reflectance([]float64{1}, acquired, 60)
	assert.ErrorIs(t, err, ErrZeroBandwidth)
}
