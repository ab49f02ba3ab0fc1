// Package theme holds the look of our plots: fonts, sizes and colours.
// It can be written as the "config" part of a Vega-Lite chart, so plots
// made elsewhere look like ours, and pkg/chart uses it directly.
package theme

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"
)

const font = "Helvetica"

// Theme is a Vega-Lite top level object with only a config.
type Theme struct {
	Config Config `json:"config"`
}

type Config struct {
	Background string `json:"background"`
	Title      Title  `json:"title"`
	Axis       Axis   `json:"axis"`
	Legend     Legend `json:"legend"`
	Range      Range  `json:"range"`
	View       View   `json:"view"`
	Text       Text   `json:"text"`
}

type Title struct {
	FontSize           float64 `json:"fontSize"`
	FontWeight         string  `json:"fontWeight"`
	Font               string  `json:"font"`
	Anchor             string  `json:"anchor"`
	Color              string  `json:"color"`
	Orient             string  `json:"orient"`
	Offset             float64 `json:"offset"`
	SubtitleColor      string  `json:"subtitleColor"`
	SubtitleFont       string  `json:"subtitleFont"`
	SubtitleFontWeight string  `json:"subtitleFontWeight"`
	SubtitleFontSize   float64 `json:"subtitleFontSize"`
	SubtitlePadding    float64 `json:"subtitlePadding"`
}

type Axis struct {
	Domain          bool    `json:"domain"`
	DomainColor     string  `json:"domainColor"`
	DomainWidth     float64 `json:"domainWidth"`
	Grid            bool    `json:"grid"`
	GridColor       string  `json:"gridColor"`
	GridWidth       float64 `json:"gridWidth"`
	LabelFont       string  `json:"labelFont"`
	LabelFontSize   float64 `json:"labelFontSize"`
	LabelFlush      bool    `json:"labelFlush"`
	LabelFontWeight string  `json:"labelFontWeight"`
	LabelPadding    float64 `json:"labelPadding"`
	TickColor       string  `json:"tickColor"`
	TickSize        float64 `json:"tickSize"`
	TickCount       int     `json:"tickCount"`
	TickWidth       float64 `json:"tickWidth"`
	TitleFont       string  `json:"titleFont"`
	TitleAlign      string  `json:"titleAlign"`
	TitleFontWeight string  `json:"titleFontWeight"`
	TitleFontSize   float64 `json:"titleFontSize"`
	TitlePadding    float64 `json:"titlePadding"`
}

type Legend struct {
	LabelFont       string  `json:"labelFont"`
	LabelFontSize   float64 `json:"labelFontSize"`
	SymbolSize      float64 `json:"symbolSize"`
	TitleFont       string  `json:"titleFont"`
	TitleFontSize   float64 `json:"titleFontSize"`
	TitleFontWeight string  `json:"titleFontWeight"`
	Padding         float64 `json:"padding"`
	TitleLimit      float64 `json:"titleLimit"`
	GradientLength  float64 `json:"gradientLength"`
}

// Range has the colour schemes. Category is for things without an
// order, Diverging for anything with a scale.
type Range struct {
	Category  []string `json:"category"`
	Diverging []string `json:"diverging"`
}

type View struct {
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"strokeWidth"`
}

type Text struct {
	Font     string  `json:"font"`
	FontSize float64 `json:"fontSize"`
}

// MainPalette is the ten Tableau colours.
var MainPalette = []string{"#4e79a7", "#f28e2c", "#e15759", "#76b7b2", "#59a14f",
	"#edc949", "#af7aa1", "#ff9da7", "#9c755f", "#bab0ab"}

// SequentialPalette goes from pale green to dark blue.
var SequentialPalette = []string{"#c7e9b4", "#7fcdbb", "#41b6c4", "#1d91c0", "#225ea8", "#253494"}

const (
	axisColor = "black"
	gridColor = "#DEDDDD"
)

// Default returns our usual theme. Each call gives a fresh copy which
// can be changed.
func Default() *Theme {
	return &Theme{Config: Config{
		Background: "white",
		Title: Title{
			FontSize: 20, FontWeight: "normal", Font: font, Anchor: "start",
			Color: "#000000", Orient: "top", Offset: 5,
			SubtitleColor: "gray", SubtitleFont: font, SubtitleFontWeight: "normal",
			SubtitleFontSize: 18, SubtitlePadding: 2,
		},
		Axis: Axis{
			Domain: true, DomainColor: axisColor, DomainWidth: 1,
			Grid: false, GridColor: gridColor, GridWidth: 0.5,
			LabelFont: font, LabelFontSize: 16, LabelFlush: false,
			LabelFontWeight: "normal", LabelPadding: 2,
			TickColor: axisColor, TickSize: 4, TickCount: 3, TickWidth: 1,
			TitleFont: font, TitleAlign: "center", TitleFontWeight: "normal",
			TitleFontSize: 16, TitlePadding: 5,
		},
		Legend: Legend{
			LabelFont: font, LabelFontSize: 16, SymbolSize: 100,
			TitleFont: font, TitleFontSize: 16, TitleFontWeight: "normal",
			Padding: 5, TitleLimit: 200, GradientLength: 100,
		},
		Range: Range{
			Category:  append([]string(nil), MainPalette...),
			Diverging: append([]string(nil), SequentialPalette...),
		},
		View: View{Stroke: "white", StrokeWidth: 0},
		Text: Text{Font: font, FontSize: 16},
	}}
}

// Write writes the theme as indented JSON.
func (t *Theme) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}

// WriteFile writes the theme to a file, or stdout if fname is "" or "-".
func (t *Theme) WriteFile(fname string) error {
	if fname == "" || fname == "-" {
		return t.Write(os.Stdout)
	}
	fp, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("theme output file %v: %w", fname, err)
	}
	err = t.Write(fp)
	if e := fp.Close(); err == nil {
		err = e
	}
	return err
}

// Read reads a theme. Anything not in the input keeps its default value.
func Read(r io.Reader) (*Theme, error) {
	t := Default()
	if err := json.NewDecoder(r).Decode(t); err != nil {
		return nil, fmt.Errorf("decoding theme: %w", err)
	}
	return t, nil
}

// ReadFile reads a theme from a JSON file.
func ReadFile(fname string) (*Theme, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	return Read(fp)
}

var named = map[string]color.RGBA{
	"black": {0, 0, 0, 0xff},
	"white": {0xff, 0xff, 0xff, 0xff},
	"gray":  {0x80, 0x80, 0x80, 0xff},
	"grey":  {0x80, 0x80, 0x80, 0xff},
}

// Colour turns "#rrggbb", "#rgb" or one of a few names into a colour.
func Colour(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := named[s]; ok {
		return c, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 || hex == s {
		return color.RGBA{}, fmt.Errorf("cannot make a colour from \"%s\"", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("cannot make a colour from \"%s\": %w", s, err)
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xff}, nil
}

// Category returns colour i of the category palette, going round again
// if i is too big. Anything unreadable comes back black.
func (t *Theme) Category(i int) color.RGBA {
	pal := t.Config.Range.Category
	if len(pal) == 0 {
		return named["black"]
	}
	c, err := Colour(pal[i%len(pal)])
	if err != nil {
		return named["black"]
	}
	return c
}
