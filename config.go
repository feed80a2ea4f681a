package bgi

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/bgi/text"
)

// Config holds canvas defaults loadable from TOML or YAML:
//
//	width = 640
//	height = 480
//	background = "black"
//	color = "#ffff54"
//	line_width = 2
//	line_style = "dash_dot"
//	composition_mode = "xor_put"
type Config struct {
	Width           int       `toml:"width" yaml:"width"`
	Height          int       `toml:"height" yaml:"height"`
	Background      *Color    `toml:"background" yaml:"background"`
	Color           *Color    `toml:"color" yaml:"color"`
	FillColor       *Color    `toml:"fill_color" yaml:"fill_color"`
	LineWidth       *float64  `toml:"line_width" yaml:"line_width"`
	LineStyle       LineStyle `toml:"line_style" yaml:"line_style"`
	FillStyle       FillStyle `toml:"fill_style" yaml:"fill_style"`
	FontFile        string    `toml:"font_file" yaml:"font_file"`
	FontSize        float64   `toml:"font_size" yaml:"font_size"`
	Antialias       bool      `toml:"antialias" yaml:"antialias"`
	CompositionMode string    `toml:"composition_mode" yaml:"composition_mode"`
}

// LoadConfig reads a .toml, .yaml or .yml file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, ioFailure("load config", err)
	}
	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&cfg)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&cfg)
	default:
		return Config{}, fmt.Errorf("bgi: load config %s: unknown extension: %w", path, ErrIOFailure)
	}
	if err != nil {
		return Config{}, fmt.Errorf("bgi: load config %s: %w: %w", path, ErrInvalidArgument, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges and names without touching the file system.
func (cfg Config) Validate() error {
	if cfg.Width < 0 || cfg.Height < 0 {
		return invalidArg("config", "size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.LineWidth != nil && (*cfg.LineWidth < 0 || !finite(*cfg.LineWidth)) {
		return invalidArg("config", "line width %g", *cfg.LineWidth)
	}
	if cfg.FontSize < 0 {
		return invalidArg("config", "font size %g", cfg.FontSize)
	}
	if cfg.CompositionMode != "" {
		if _, err := ParseCompositionMode(cfg.CompositionMode); err != nil {
			return err
		}
	}
	return nil
}

func (cfg Config) apply(o *canvasOptions) {
	if cfg.Background != nil {
		o.background = *cfg.Background
	}
	if cfg.Color != nil {
		o.pen.Color = *cfg.Color
	}
	if cfg.FillColor != nil {
		o.brush.Color = *cfg.FillColor
	}
	if cfg.LineWidth != nil {
		o.pen.Width = *cfg.LineWidth
	}
	o.pen.Style = cfg.LineStyle
	o.brush.Style = cfg.FillStyle
	o.antialias = cfg.Antialias
	if m, err := ParseCompositionMode(cfg.CompositionMode); err == nil {
		o.mode = m
	}
}

// NewCanvasFromConfig creates a canvas of the configured size and
// defaults. A font file, when set, is loaded at FontSize (text.DefaultSize
// if zero); without one a non-zero FontSize resizes the default face.
func NewCanvasFromConfig(cfg Config, opts ...Option) (*Canvas, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	size := cfg.FontSize
	if size == 0 {
		size = text.DefaultSize
	}
	all := []Option{WithConfig(cfg)}
	switch {
	case cfg.FontFile != "":
		f, err := text.LoadFace(cfg.FontFile, size)
		if err != nil {
			return nil, ioFailure("new canvas from config", err)
		}
		all = append(all, WithFont(f))
	case cfg.FontSize != 0:
		f, err := text.GoRegular(size)
		if err != nil {
			return nil, fmt.Errorf("bgi: new canvas from config: %w: %w", ErrInvalidArgument, err)
		}
		all = append(all, WithFont(f))
	}
	return NewCanvas(cfg.Width, cfg.Height, append(all, opts...)...)
}
