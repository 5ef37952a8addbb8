package config

import (
	_ "embed"
	"fmt"
	"image/color"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/pageatlas/page-atlas/internal/grid"
)

//go:embed styles.yaml
var stylesYAML []byte

type Config struct {
	Hub    HubConfig
	Render RenderConfig
	Output OutputConfig
	Layout LayoutConfig
	styles map[string]stylePreset
}

type HubConfig struct {
	URL   string // base URL of the sheet hub (e.g., https://hub.example.com)
	Token string // bearer token for uploads
}

type RenderConfig struct {
	Density int // rasterization density in DPI (default 96)
}

type OutputConfig struct {
	Dir string // base directory for composed sheets (default "out")
}

type LayoutConfig struct {
	MaxCanvasWidth     int
	MaxCanvasHeight    int
	RowGutterWidth     int
	ColumnGutterHeight int
}

// PlanOptions converts the layout configuration into planner options.
func (c LayoutConfig) PlanOptions() grid.PlanOptions {
	return grid.PlanOptions{
		MaxCanvasWidth:     c.MaxCanvasWidth,
		MaxCanvasHeight:    c.MaxCanvasHeight,
		RowGutterWidth:     c.RowGutterWidth,
		ColumnGutterHeight: c.ColumnGutterHeight,
	}
}

// stylePreset is the yaml shape of one named style in styles.yaml.
type stylePreset struct {
	Background    string  `yaml:"background"`
	LineColor     string  `yaml:"line_color"`
	LineWidth     int     `yaml:"line_width"`
	LabelColor    string  `yaml:"label_color"`
	LabelFontSize float64 `yaml:"label_font_size"`
	LabelBold     bool    `yaml:"label_bold"`
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envString reads an environment variable with a fallback default.
func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

func Load() *Config {
	var styles map[string]stylePreset
	if err := yaml.Unmarshal(stylesYAML, &styles); err != nil {
		// This is an embedded file so this error should never happen in practice.
		panic("failed to unmarshal embedded styles.yaml: " + err.Error())
	}

	return &Config{
		Hub: HubConfig{
			URL:   os.Getenv("ATLAS_HUB_URL"),
			Token: os.Getenv("ATLAS_HUB_TOKEN"),
		},
		Render: RenderConfig{
			Density: envInt("ATLAS_DENSITY", 96),
		},
		Output: OutputConfig{
			Dir: envString("ATLAS_OUTPUT_DIR", "out"),
		},
		Layout: LayoutConfig{
			MaxCanvasWidth:     envInt("ATLAS_MAX_WIDTH", grid.DefaultMaxCanvasWidth),
			MaxCanvasHeight:    envInt("ATLAS_MAX_HEIGHT", grid.DefaultMaxCanvasHeight),
			RowGutterWidth:     envInt("ATLAS_ROW_GUTTER", grid.DefaultRowGutterWidth),
			ColumnGutterHeight: envInt("ATLAS_COLUMN_GUTTER", grid.DefaultColumnGutterHeight),
		},
		styles: styles,
	}
}

// StyleNames lists the embedded style presets.
func (c *Config) StyleNames() []string {
	names := make([]string, 0, len(c.styles))
	for name := range c.styles {
		names = append(names, name)
	}
	return names
}

// StyleByName resolves a named preset from styles.yaml into a grid style.
func (c *Config) StyleByName(name string) (grid.Style, error) {
	preset, ok := c.styles[name]
	if !ok {
		return grid.Style{}, fmt.Errorf("unknown style %q", name)
	}

	background, err := parseHexColor(preset.Background)
	if err != nil {
		return grid.Style{}, fmt.Errorf("style %q background: %w", name, err)
	}
	line, err := parseHexColor(preset.LineColor)
	if err != nil {
		return grid.Style{}, fmt.Errorf("style %q line color: %w", name, err)
	}
	label, err := parseHexColor(preset.LabelColor)
	if err != nil {
		return grid.Style{}, fmt.Errorf("style %q label color: %w", name, err)
	}

	return grid.Style{
		Background:    background,
		LineColor:     line,
		LineWidth:     preset.LineWidth,
		LabelColor:    label,
		LabelFontSize: preset.LabelFontSize,
		LabelBold:     preset.LabelBold,
	}, nil
}

// parseHexColor parses a "#rrggbb" color string.
func parseHexColor(s string) (color.RGBA, error) {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("color %q is not in #rrggbb form", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q is not valid hex: %w", s, err)
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}, nil
}
