// Package web holds the presentation layer of the lookup page: color
// themes and the server-rendered HTML. Theming is cosmetic only; the
// normalizer and renderers are theme-independent.
package web

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const DefaultThemeName = "adapta-dark"

// Theme is one color preset for the page.
type Theme struct {
	Name        string `yaml:"name"`
	Background  string `yaml:"background"`
	Surface     string `yaml:"surface"`
	Border      string `yaml:"border"`
	Text        string `yaml:"text"`
	Muted       string `yaml:"muted"`
	Accent      string `yaml:"accent"`
	AccentHover string `yaml:"accent_hover"`
	AccentText  string `yaml:"accent_text"`
}

// builtins are the four shipped presets; the dark+yellow one is the
// default look.
var builtins = map[string]Theme{
	"adapta-dark": {
		Name:        "adapta-dark",
		Background:  "#1A1A1A",
		Surface:     "#222222",
		Border:      "#FFC300",
		Text:        "#EEEEEE",
		Muted:       "#BDBDBD",
		Accent:      "#FFC300",
		AccentHover: "#FFD700",
		AccentText:  "#111111",
	},
	"pricetax-light": {
		Name:        "pricetax-light",
		Background:  "#F7F7F5",
		Surface:     "#FFFFFF",
		Border:      "#0F4C81",
		Text:        "#1F2937",
		Muted:       "#6B7280",
		Accent:      "#0F4C81",
		AccentHover: "#1867A8",
		AccentText:  "#FFFFFF",
	},
	"adapta-blue": {
		Name:        "adapta-blue",
		Background:  "#0D1B2A",
		Surface:     "#1B263B",
		Border:      "#4CC9F0",
		Text:        "#E0E1DD",
		Muted:       "#9CA3AF",
		Accent:      "#4CC9F0",
		AccentHover: "#80DFFF",
		AccentText:  "#0D1B2A",
	},
	"adapta-green": {
		Name:        "adapta-green",
		Background:  "#10201A",
		Surface:     "#18281F",
		Border:      "#3DDC97",
		Text:        "#E6F2EC",
		Muted:       "#A3B5AC",
		Accent:      "#3DDC97",
		AccentHover: "#6FF0B8",
		AccentText:  "#10201A",
	},
}

// LoadTheme resolves a preset by name. When themesFile is non-empty, its
// YAML map of presets is merged over the builtins first, so deployments
// can override or extend the shipped palette.
func LoadTheme(name, themesFile string) (Theme, error) {
	presets := make(map[string]Theme, len(builtins))
	for key, theme := range builtins {
		presets[key] = theme
	}

	if themesFile != "" {
		custom, err := readThemesFile(themesFile)
		if err != nil {
			return Theme{}, err
		}
		for key, theme := range custom {
			theme.Name = key
			presets[key] = theme
		}
	}

	if name == "" {
		name = DefaultThemeName
	}

	theme, ok := presets[name]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q", name)
	}
	return theme, nil
}

func readThemesFile(path string) (map[string]Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read themes file: %w", err)
	}

	var presets map[string]Theme
	if err = yaml.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("parse themes file: %w", err)
	}
	return presets, nil
}
