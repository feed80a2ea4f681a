package bgi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithConfigThenOptions(t *testing.T) {
	w := 4.0
	cfg := Config{LineWidth: &w, LineStyle: LineDot, FillStyle: FillNone, CompositionMode: "copy_put"}

	cv := newTestCanvas(t, 10, 10, WithConfig(cfg), WithLineWidth(1.5))
	assert.InDelta(t, 1.5, cv.LineWidth(), 1e-9)
	assert.Equal(t, LineDot, cv.LineStyle())
	assert.Equal(t, FillNone, cv.FillStyle())
	assert.Equal(t, CopyPut, cv.CompositionMode())
}

func TestOptionOrder(t *testing.T) {
	cv := newTestCanvas(t, 10, 10, WithColor(Red), WithColor(Green))
	assert.Equal(t, Green, cv.Color())
}

func TestNewCanvasFromImageOptions(t *testing.T) {
	src := newTestCanvas(t, 6, 6, WithBackground(Magenta))
	img, err := src.Image()
	require.NoError(t, err)

	cv, err := NewCanvasFromImage(img, WithFillColor(Yellow), WithLineStyle(LineNone))
	require.NoError(t, err)
	defer cv.Close()
	assert.Equal(t, Yellow, cv.FillColor())
	assert.Equal(t, LineNone, cv.LineStyle())
	assert.Equal(t, Magenta, pixel(t, cv, 3, 3))
}
