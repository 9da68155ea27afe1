package render

import (
	"bytes"
	"errors"
	"image"
	_ "image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOpt = Options{DPI: 50}

func decodeSize(t *testing.T, b []byte) (int, int) {
	t.Helper()
	cfg, format, err := image.DecodeConfig(bytes.NewReader(b))
	require.NoError(t, err)
	require.Equal(t, "png", format)
	return cfg.Width, cfg.Height
}

func TestHexColor(t *testing.T) {
	c, err := HexColor("#4B8BBE")
	require.NoError(t, err)
	assert.Equal(t, uint8(0x4b), c.R)
	assert.Equal(t, uint8(0x8b), c.G)
	assert.Equal(t, uint8(0xbe), c.B)
	assert.Equal(t, uint8(0xff), c.A)

	_, err = HexColor("#4B8")
	assert.Error(t, err)
	_, err = HexColor("zzzzzz")
	assert.Error(t, err)
}

func TestLine_SizeFollowsDPI(t *testing.T) {
	b, err := Line(LineSpec{
		Labels: Labels{Title: "Average Overall by Age", XLabel: "Age", YLabel: "Overall"},
		X:      []float64{20, 21, 22},
		Y:      []float64{60, 65, 70},
		Color:  "#4B8BBE",
		Marker: MarkerSquare,
	}, testOpt)
	require.NoError(t, err)
	w, h := decodeSize(t, b)
	assert.Equal(t, 500, w)
	assert.Equal(t, 300, h)
}

func TestLine_NoData(t *testing.T) {
	_, err := Line(LineSpec{Color: "#000000"}, testOpt)
	assert.True(t, errors.Is(err, ErrNoData))
}

func TestHistogram(t *testing.T) {
	b, err := Histogram(HistSpec{
		Labels: Labels{Title: "Overall"},
		Values: []float64{50, 55, 60, 61, 62, 70, 71, 80, 90, 94},
		Bins:   20,
		Color:  "#6A9C89",
	}, testOpt)
	require.NoError(t, err)
	w, h := decodeSize(t, b)
	assert.Equal(t, 500, w)
	assert.Equal(t, 300, h)

	_, err = Histogram(HistSpec{Color: "#6A9C89"}, testOpt)
	assert.True(t, errors.Is(err, ErrNoData))
}

func TestBox(t *testing.T) {
	b, err := Box(BoxSpec{
		Labels:  Labels{Title: "Overall by Club", XLabel: "Club", YLabel: "Overall"},
		Groups:  []string{"Alpha", "Beta"},
		Values:  [][]float64{{70, 72, 75, 80}, {60, 88}},
		Palette: []string{"#4B8BBE", "#FF6F61"},
	}, testOpt)
	require.NoError(t, err)
	w, h := decodeSize(t, b)
	assert.Equal(t, 600, w)
	assert.Equal(t, 300, h)

	_, err = Box(BoxSpec{Groups: []string{"Alpha"}, Values: [][]float64{{}}}, testOpt)
	assert.True(t, errors.Is(err, ErrNoData))
}

func TestPie(t *testing.T) {
	b, err := Pie(PieSpec{
		Title: "Preferred Foot",
		Slices: []Slice{
			{Label: "Right", Count: 7, Percent: 70},
			{Label: "Left", Count: 3, Percent: 30},
		},
		Palette: []string{"#4B8BBE", "#FF6F61"},
	}, testOpt)
	require.NoError(t, err)
	w, h := decodeSize(t, b)
	assert.Equal(t, 400, w)
	assert.Equal(t, 400, h)

	_, err = Pie(PieSpec{Title: "empty"}, testOpt)
	assert.True(t, errors.Is(err, ErrNoData))
}

func TestSliceLabel(t *testing.T) {
	assert.Equal(t, "70-80kg 33.3%", SliceLabel(Slice{Label: "70-80kg", Percent: 100.0 / 3}))
}
