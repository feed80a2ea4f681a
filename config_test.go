package bgi

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tomlConfig = `
width = 320
height = 200
background = "black"
color = "#ffff54"
fill_color = "light_red"
line_width = 2.0
line_style = "dash_dot"
fill_style = "solid"
antialias = true
composition_mode = "xor_put"
font_size = 20.0
`

const yamlConfig = `
width: 320
height: 200
background: black
color: "#ffff54"
fill_color: light_red
line_width: 2.0
line_style: dash_dot
fill_style: solid
antialias: true
composition_mode: xor_put
font_size: 20.0
`

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigFormatsAgree(t *testing.T) {
	fromTOML, err := LoadConfig(writeConfig(t, "canvas.toml", tomlConfig))
	require.NoError(t, err)
	fromYAML, err := LoadConfig(writeConfig(t, "canvas.yaml", yamlConfig))
	require.NoError(t, err)
	assert.Equal(t, fromTOML, fromYAML)

	assert.Equal(t, 320, fromTOML.Width)
	require.NotNil(t, fromTOML.Background)
	assert.Equal(t, Black, *fromTOML.Background)
	require.NotNil(t, fromTOML.LineWidth)
	assert.InDelta(t, 2, *fromTOML.LineWidth, 1e-9)
	assert.Equal(t, LineDashDot, fromTOML.LineStyle)
}

func TestNewCanvasFromConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "canvas.yml", yamlConfig))
	require.NoError(t, err)

	cv, err := NewCanvasFromConfig(cfg)
	require.NoError(t, err)
	defer cv.Close()

	assert.Equal(t, 320, cv.Width())
	assert.Equal(t, 200, cv.Height())
	assert.Equal(t, Black, pixel(t, cv, 10, 10))
	assert.Equal(t, Pen{Color: RGB(0xff, 0xff, 0x54), Width: 2, Style: LineDashDot}, cv.Pen())
	assert.Equal(t, Brush{Color: LightRed, Style: FillSolid}, cv.Brush())
	assert.True(t, cv.Antialias())
	assert.Equal(t, XorPut, cv.CompositionMode())
	assert.InDelta(t, 20, cv.Font().Size(), 1e-9)
}

func TestNewCanvasFromConfigOptionsOverride(t *testing.T) {
	bg := Blue
	cfg := Config{Width: 10, Height: 10, Background: &bg}
	cv, err := NewCanvasFromConfig(cfg, WithBackground(Green), WithColor(Red))
	require.NoError(t, err)
	defer cv.Close()

	assert.Equal(t, Green, cv.BackgroundColor())
	assert.Equal(t, Red, cv.Color())
	assert.Equal(t, SourceOver, cv.CompositionMode())
	assert.Equal(t, "Go Regular", cv.Font().Name())
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name, file, body string
		want             error
	}{
		{"unknown toml field", "a.toml", "width = 1\ncolour = \"red\"\n", ErrInvalidArgument},
		{"unknown yaml field", "a.yaml", "width: 1\ncolour: red\n", ErrInvalidArgument},
		{"bad color", "a.toml", "color = \"not-a-color\"\n", ErrInvalidArgument},
		{"bad line style", "a.yaml", "line_style: wavy\n", ErrInvalidArgument},
		{"bad mode", "a.toml", "composition_mode = \"sideways\"\n", ErrInvalidArgument},
		{"negative width", "a.yaml", "line_width: -1.0\n", ErrInvalidArgument},
		{"negative size", "a.toml", "width = -5\n", ErrInvalidArgument},
		{"extension", "a.json", "{}", ErrIOFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.file, tt.body))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrIOFailure)
}

func TestNewCanvasFromConfigErrors(t *testing.T) {
	_, err := NewCanvasFromConfig(Config{})
	assert.ErrorIs(t, err, ErrInvalidArgument, "zero size")

	_, err = NewCanvasFromConfig(Config{Width: 5, Height: 5, FontFile: filepath.Join(t.TempDir(), "none.ttf")})
	assert.ErrorIs(t, err, ErrIOFailure)

	_, err = NewCanvasFromConfig(Config{Width: 5, Height: 5, FontSize: -3})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
