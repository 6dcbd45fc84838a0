package raster

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spicebox-go/spicebox/transforms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seq - rows x cols grid holding r*cols+c.
func seq(rows, cols int) *Grid {
	g := NewGrid(rows, cols)
	for i := range g.Data {
		g.Data[i] = float64(i)
	}
	return g
}

func TestFromRows(t *testing.T) {
	g, err := FromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	assert.Equal(t, &Grid{Rows: 2, Cols: 2, Data: []float64{1, 2, 3, 4}}, g)
	assert.Equal(t, 3.0, g.At(1, 0))

	_, err = FromRows([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestMinMax(t *testing.T) {
	g := &Grid{Rows: 1, Cols: 3, Data: []float64{math.NaN(), 3, -1}}
	lo, hi, ok := g.MinMax()
	assert.True(t, ok)
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 3.0, hi)

	lo, hi, ok = (&Grid{Rows: 1, Cols: 4, Data: []float64{math.Inf(-1), 2, math.Inf(1), 5}}).MinMax()
	assert.True(t, ok)
	assert.Equal(t, 2.0, lo)
	assert.Equal(t, 5.0, hi)

	_, _, ok = (&Grid{Rows: 1, Cols: 2, Data: []float64{math.NaN(), math.Inf(1)}}).MinMax()
	assert.False(t, ok)
}

func TestEncode(t *testing.T) {
	g := &Grid{Rows: 2, Cols: 2, Data: []float64{1, 2.5, math.NaN(), 4}}
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, g, transforms.NorthUp(100, 220, 10, -10), DefaultNoData))
	assert.Equal(t, "ncols 2\nnrows 2\nxllcorner 100\nyllcorner 200\ncellsize 10\nNODATA_value -9999\n1 2.5\n-9999 4\n", buf.String())

	buf.Reset()
	require.NoError(t, Encode(&buf, g, transforms.NorthUp(0, 10, 2, -5), 0))
	assert.Contains(t, buf.String(), "dx 2\ndy 5\n")

	assert.ErrorIs(t, Encode(&buf, g, transforms.GeoTransform{0, 1, 0.1, 0, 0, -1}, 0), ErrRotatedTransform)
	assert.ErrorIs(t, Encode(&buf, g, transforms.NorthUp(0, 0, 1, 1), 0), ErrRotatedTransform)
	assert.ErrorIs(t, Encode(&buf, &Grid{Rows: 2, Cols: 2}, transforms.NorthUp(0, 0, 1, -1), 0), ErrShapeMismatch)
}

func TestDecode(t *testing.T) {
	src := "NCOLS 3\nNROWS 2\nXLLCENTER 5\nYLLCENTER 5\nCELLSIZE 10\n1 2 3\n4 5 6\n"
	g, md, err := Decode(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, g.Data)
	assert.Equal(t, transforms.NorthUp(0, 20, 10, -10), md.Transform)
	assert.Equal(t, 3, md.XSize)
	assert.Equal(t, 2, md.YSize)
	assert.True(t, math.IsNaN(md.NoData))

	errorCases := map[string]string{
		"missing ncols":    "nrows 1\nxllcorner 0\nyllcorner 0\ncellsize 1\n1\n",
		"missing corner":   "ncols 1\nnrows 1\ncellsize 1\n1\n",
		"missing size":     "ncols 1\nnrows 1\nxllcorner 0\nyllcorner 0\n1\n",
		"bad header value": "ncols x\n",
		"too few cells":    "ncols 2\nnrows 1\nxllcorner 0\nyllcorner 0\ncellsize 1\n1\n",
		"too many cells":   "ncols 1\nnrows 1\nxllcorner 0\nyllcorner 0\ncellsize 1\n1 2\n",
		"bad cell":         "ncols 2\nnrows 1\nxllcorner 0\nyllcorner 0\ncellsize 1\n1 x\n",
		"overflowing size": "ncols 3037000500\nnrows 3037000500\nxllcorner 0\nyllcorner 0\ncellsize 1\n1\n",
		"too many rows":    "ncols 1\nnrows 1e300\nxllcorner 0\nyllcorner 0\ncellsize 1\n1\n",
		"infinite rows":    "ncols 0\nnrows inf\nxllcorner 0\nyllcorner 0\ncellsize 1\n",
	}
	for name, src := range errorCases {
		t.Run(name, func(t *testing.T) {
			_, _, err := Decode(strings.NewReader(src))
			assert.ErrorIs(t, err, ErrFormat)
		})
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dem.asc")
	g := &Grid{Rows: 2, Cols: 3, Data: []float64{1, 2, 3, math.NaN(), 5, 6}}
	gt := transforms.NorthUp(500000, 7000000, 30, -30)

	require.NoError(t, Save(path, g, gt, `PROJCS["x"]`))
	assert.FileExists(t, filepath.Join(dir, "dem.prj"))

	got, md, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, gt, md.Transform)
	assert.Equal(t, `PROJCS["x"]`, md.Projection)
	assert.Equal(t, float64(DefaultNoData), md.NoData)
	assert.Equal(t, 3, md.XSize)
	assert.Equal(t, 2, md.YSize)
	assert.True(t, math.IsNaN(got.At(1, 0)))
	assert.Equal(t, 6.0, got.At(1, 2))

	noPrj := filepath.Join(dir, "plain.asc")
	require.NoError(t, Save(noPrj, g, gt, ""))
	_, md, err = Load(noPrj)
	require.NoError(t, err)
	assert.Empty(t, md.Projection)

	_, _, err = Load(filepath.Join(dir, "missing.asc"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	rotated := filepath.Join(dir, "rotated.asc")
	assert.ErrorIs(t, Save(rotated, g, transforms.GeoTransform{0, 1, 1, 0, 0, -1}, ""), ErrRotatedTransform)
	assert.NoFileExists(t, rotated)
}

func TestZoomTo(t *testing.T) {
	g := seq(5, 5)
	testCases := []struct {
		name     string
		pixel    Pixel
		radius   int
		expected *Grid
	}{
		{"centered", Pixel{2, 2}, 1, &Grid{Rows: 2, Cols: 2, Data: []float64{6, 7, 11, 12}}},
		{"clamped origin", Pixel{0, 0}, 2, &Grid{Rows: 2, Cols: 2, Data: []float64{0, 1, 5, 6}}},
		{"clamped end", Pixel{4, 4}, 2, &Grid{Rows: 3, Cols: 3, Data: []float64{12, 13, 14, 17, 18, 19, 22, 23, 24}}},
		{"single pixel", Pixel{2, 2}, 0, &Grid{Rows: 1, Cols: 1, Data: []float64{12}}},
		{"outside", Pixel{9, 9}, 0, &Grid{Rows: 0, Cols: 0, Data: []float64{}}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ZoomTo(g, tc.pixel, tc.radius))
		})
	}
}

func TestZoomGeoTransform(t *testing.T) {
	md := Metadata{Transform: transforms.NorthUp(0, 50, 10, -10)}
	assert.Equal(t, transforms.NorthUp(10, 40, 10, -10), ZoomGeoTransform(md, Pixel{2, 2}, 1))
	assert.Equal(t, md.Transform, ZoomGeoTransform(md, Pixel{1, 1}, 5))
}

func TestMask(t *testing.T) {
	g := seq(2, 2)
	require.NoError(t, Mask(g, []bool{true, false, false, true}, -1))
	assert.Equal(t, []float64{-1, 1, 2, -1}, g.Data)

	require.NoError(t, Mask(g, []bool{false, true, false, false}, math.NaN()))
	assert.True(t, math.IsNaN(g.Data[1]))

	assert.ErrorIs(t, Mask(g, []bool{true}, 0), ErrShapeMismatch)
}

func TestClip(t *testing.T) {
	g := seq(4, 4)
	md := Metadata{Transform: transforms.NorthUp(0, 40, 10, -10), XSize: 4, YSize: 4}

	out, gt, err := Clip(g, md, Extent{10, 30, 30, 10})
	require.NoError(t, err)
	assert.Equal(t, &Grid{Rows: 2, Cols: 2, Data: []float64{5, 6, 9, 10}}, out)
	assert.Equal(t, transforms.NorthUp(10, 30, 10, -10), gt)

	out, gt, err = Clip(g, md, Extent{30, 40, 50, 30})
	require.NoError(t, err)
	require.Equal(t, 2, out.Cols)
	assert.Equal(t, 3.0, out.Data[0])
	assert.True(t, math.IsNaN(out.Data[1]))
	assert.Equal(t, transforms.NorthUp(30, 40, 10, -10), gt)

	_, _, err = Clip(g, md, Extent{100, 40, 120, 30})
	assert.ErrorIs(t, err, ErrInvalidExtent)
	_, _, err = Clip(g, md, Extent{30, 40, 10, 30})
	assert.ErrorIs(t, err, ErrInvalidExtent)

	rotated := md
	rotated.Transform[2] = 1
	_, _, err = Clip(g, rotated, Extent{10, 30, 30, 10})
	assert.ErrorIs(t, err, ErrRotatedTransform)
}

func TestClipFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.asc")
	out := filepath.Join(dir, "out.asc")
	require.NoError(t, Save(in, seq(4, 4), transforms.NorthUp(0, 40, 10, -10), "GEOGCS[]"))

	require.NoError(t, ClipFile(in, out, Extent{10, 30, 30, 10}))
	g, md, err := Load(out)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 6, 9, 10}, g.Data)
	assert.Equal(t, transforms.NorthUp(10, 30, 10, -10), md.Transform)
	assert.Equal(t, "GEOGCS[]", md.Projection)

	assert.ErrorIs(t, ClipFile(in, out, Extent{100, 40, 120, 30}), ErrInvalidExtent)
}
