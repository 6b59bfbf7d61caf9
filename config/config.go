package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultFile = "editor.yaml"

type Config struct {
	Name   string     `yaml:"name"`
	Editor EditorSpec `yaml:"editor"`
	Colors ColorSpec  `yaml:"colors"`
	Keys   KeySpec    `yaml:"keys"`
	Window WindowSpec `yaml:"window"`
}

type EditorSpec struct {
	MinRadius        float64 `yaml:"min_radius"`
	RadiusStep       float64 `yaml:"radius_step"`
	NewBoxRadius     float64 `yaml:"new_box_radius"`
	WheelRadiusScale float64 `yaml:"wheel_radius_scale"`
	InitialZoom      float64 `yaml:"initial_zoom"`
	MinZoom          float64 `yaml:"min_zoom"`
	MaxZoom          float64 `yaml:"max_zoom"`
	ZoomStep         float64 `yaml:"zoom_step"`
	ThumbnailZoom    float64 `yaml:"thumbnail_zoom"`
	Playback         bool    `yaml:"playback"`
}

type ColorSpec struct {
	Hurt       *YAMLColor `yaml:"hurt"`
	Hit        *YAMLColor `yaml:"hit"`
	Push       *YAMLColor `yaml:"push"`
	Persistent *YAMLColor `yaml:"persistent"`
	Selected   *YAMLColor `yaml:"selected"`
	Origin     *YAMLColor `yaml:"origin"`
	Background *YAMLColor `yaml:"background"`
}

type KeySpec struct {
	Delete string `yaml:"delete"`
	Grow   string `yaml:"grow"`
	Shrink string `yaml:"shrink"`
	Copy   string `yaml:"copy"`
	Paste  string `yaml:"paste"`
}

type WindowSpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// LoadConfig reads filename over the embedded defaults, so a partial file
// only needs the values it changes.
func LoadConfig(filename string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	if filename == "" {
		filename = DefaultFile
	}
	data, err := Load(filename)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal %s: %w", filename, err)
	}
	return cfg, nil
}

// Default returns the embedded configuration.
func Default() (*Config, error) {
	data, err := DefaultsFS.ReadFile(DefaultFile)
	if err != nil {
		return nil, fmt.Errorf("config: load embedded %s: %w", DefaultFile, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal embedded %s: %w", DefaultFile, err)
	}
	return &cfg, nil
}

// ColorOr returns c's color, or fallback when c is unset.
func ColorOr(c *YAMLColor, fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseHexColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

// ParseHexColor parses #rrggbb or #rrggbbaa.
func ParseHexColor(v string) (color.NRGBA, error) {
	s := strings.TrimPrefix(v, "#")

	if len(s) != 6 && len(s) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color format: %s", v)
	}

	parse := func(start int) (uint8, error) {
		n, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(n), err
	}

	r, err := parse(0)
	if err != nil {
		return color.NRGBA{}, err
	}
	g, err := parse(2)
	if err != nil {
		return color.NRGBA{}, err
	}
	b, err := parse(4)
	if err != nil {
		return color.NRGBA{}, err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return color.NRGBA{}, err
		}
	}

	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
