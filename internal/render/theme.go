// Package render turns highlighted ranges into terminal output: themed ANSI
// text, a tag legend, and a plain span listing.
package render

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/fatih/color"

	"shine/internal/hl"
)

// Style is one theme entry. Color names follow the usual terminal palette;
// an empty color inherits the terminal default.
type Style struct {
	Color     string `toml:"color"`
	Bold      bool   `toml:"bold"`
	Italic    bool   `toml:"italic"`
	Underline bool   `toml:"underline"`
	Faint     bool   `toml:"faint"`
}

// Theme maps tag names, and optionally "tag.modifier" pairs, to styles. More
// specific keys win.
type Theme struct {
	Styles map[string]Style `toml:"styles"`
}

// LoadTheme reads a TOML theme file.
func LoadTheme(path string) (*Theme, error) {
	var t Theme
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("theme %s: %w", path, err)
	}
	if t.Styles == nil {
		t.Styles = map[string]Style{}
	}
	return &t, nil
}

// DefaultTheme is the built-in palette, used when no theme file is given.
func DefaultTheme() *Theme {
	return &Theme{Styles: map[string]Style{
		"function":            {Color: "blue"},
		"method":              {Color: "blue"},
		"struct":              {Color: "yellow"},
		"enum":                {Color: "yellow"},
		"union":               {Color: "yellow"},
		"trait":               {Color: "yellow", Italic: true},
		"typeAlias":           {Color: "yellow"},
		"typeParameter":       {Color: "yellow", Italic: true},
		"builtinType":         {Color: "yellow", Bold: true},
		"module":              {Color: "cyan"},
		"macro":               {Color: "magenta"},
		"attribute":           {Color: "magenta", Faint: true},
		"derive":              {Color: "magenta", Faint: true},
		"builtinAttribute":    {Color: "magenta", Faint: true},
		"toolModule":          {Color: "magenta", Faint: true},
		"keyword":             {Color: "red", Bold: true},
		"selfKeyword":         {Color: "red", Italic: true},
		"selfTypeKeyword":     {Color: "yellow", Italic: true},
		"comment":             {Color: "green", Faint: true},
		"comment.documentation": {Color: "green"},
		"string":              {Color: "green"},
		"character":           {Color: "green"},
		"escapeSequence":      {Color: "cyan", Bold: true},
		"formatSpecifier":     {Color: "cyan"},
		"number":              {Color: "cyan"},
		"boolean":             {Color: "cyan", Bold: true},
		"variable":            {},
		"variable.mutable":    {Underline: true},
		"parameter":           {Color: "white"},
		"field":               {Color: "white"},
		"enumMember":          {Color: "cyan"},
		"constParameter":      {Color: "cyan"},
		"lifetime":            {Color: "blue", Italic: true},
		"label":               {Color: "blue", Italic: true},
		"unresolvedReference": {Color: "red", Underline: true},
	}}
}

// Lookup finds the style for a highlight: "tag.modifier" entries take
// precedence over the bare tag entry.
func (t *Theme) Lookup(h hl.Highlight) (Style, bool) {
	tag := h.Tag.String()
	for m := hl.Modifier(0); m < 32; m++ {
		if !h.Mods.Has(m) {
			continue
		}
		if s, ok := t.Styles[tag+"."+m.String()]; ok {
			return s, true
		}
	}
	s, ok := t.Styles[tag]
	return s, ok
}

var colorAttrs = map[string]color.Attribute{
	"black":   color.FgBlack,
	"red":     color.FgRed,
	"green":   color.FgGreen,
	"yellow":  color.FgYellow,
	"blue":    color.FgBlue,
	"magenta": color.FgMagenta,
	"cyan":    color.FgCyan,
	"white":   color.FgWhite,
}

// colorFor compiles a style into a printable color.
func colorFor(s Style) *color.Color {
	attrs := make([]color.Attribute, 0, 4)
	if a, ok := colorAttrs[s.Color]; ok {
		attrs = append(attrs, a)
	}
	if s.Bold {
		attrs = append(attrs, color.Bold)
	}
	if s.Italic {
		attrs = append(attrs, color.Italic)
	}
	if s.Underline {
		attrs = append(attrs, color.Underline)
	}
	if s.Faint {
		attrs = append(attrs, color.Faint)
	}
	return color.New(attrs...)
}

// ThemeFromFileOrDefault loads path when non-empty, else the built-in theme.
func ThemeFromFileOrDefault(path string) (*Theme, error) {
	if path == "" {
		return DefaultTheme(), nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return LoadTheme(path)
}
