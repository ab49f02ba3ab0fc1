// Package chart draws simple horizontal bar charts as PNG files, using
// the fonts, sizes and colours from a theme.
// Helvetica is not something we can rely on finding, so text is drawn
// with the Go fonts, at the sizes the theme asks for.
package chart

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/andrew-torda/hastruct/pkg/theme"
)

const (
	dpi      = 72 // so a point is a pixel
	barH     = 24
	barGap   = 8
	plotW    = 480
	pad      = 16
	legendSq = 14 // size of the coloured squares in the legend
)

// Bar is one bar. Bars with the same Group get the same colour.
type Bar struct {
	Label string
	Value float64
	Group string
}

// BarChart has bars drawn from top to bottom in the order given.
type BarChart struct {
	Title  string
	XTitle string // under the value axis
	Bars   []Bar
}

// painter keeps the freetype context and the faces we measure with.
type painter struct {
	img   *image.RGBA
	fnt   *truetype.Font
	ctx   *freetype.Context
	faces map[float64]font.Face
}

func newPainter() (*painter, error) {
	fnt, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("loading font: %w", err)
	}
	ctx := freetype.NewContext()
	ctx.SetDPI(dpi)
	ctx.SetFont(fnt)
	ctx.SetHinting(font.HintingFull)
	return &painter{fnt: fnt, ctx: ctx, faces: make(map[float64]font.Face)}, nil
}

func (p *painter) face(size float64) font.Face {
	if f, ok := p.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(p.fnt, &truetype.Options{Size: size, DPI: dpi, Hinting: font.HintingFull})
	p.faces[size] = f
	return f
}

// width of a string in pixels
func (p *painter) width(s string, size float64) int {
	return font.MeasureString(p.face(size), s).Ceil()
}

func (p *painter) ascent(size float64) int {
	return p.face(size).Metrics().Ascent.Ceil()
}

// text draws s with its baseline at y.
func (p *painter) text(s string, size float64, col color.Color, x, y int) error {
	p.ctx.SetFontSize(size)
	p.ctx.SetSrc(image.NewUniform(col))
	_, err := p.ctx.DrawString(s, freetype.Pt(x, y))
	return err
}

func (p *painter) fill(r image.Rectangle, col color.Color) {
	draw.Draw(p.img, r, image.NewUniform(col), image.Point{}, draw.Src)
}

// colour reads a theme colour, falling back to black.
func colour(s string) color.RGBA {
	c, err := theme.Colour(s)
	if err != nil {
		return color.RGBA{0, 0, 0, 0xff}
	}
	return c
}

// groups returns group names in the order they first turn up.
func (bc *BarChart) groups() []string {
	var gs []string
	seen := make(map[string]bool)
	for _, b := range bc.Bars {
		if !seen[b.Group] {
			seen[b.Group] = true
			gs = append(gs, b.Group)
		}
	}
	return gs
}

// ticks gives n evenly spaced values from 0 to top.
func ticks(top float64, n int) []float64 {
	if n < 2 {
		n = 2
	}
	t := make([]float64, n)
	for i := range t {
		t[i] = top * float64(i) / float64(n-1)
	}
	return t
}

// Draw renders the chart.
func (bc *BarChart) Draw(th *theme.Theme) (*image.RGBA, error) {
	if len(bc.Bars) == 0 {
		return nil, errors.New("no bars to draw")
	}
	for _, b := range bc.Bars {
		if math.IsNaN(b.Value) || math.IsInf(b.Value, 0) {
			return nil, fmt.Errorf("bar %s has value %g", b.Label, b.Value)
		}
	}
	p, err := newPainter()
	if err != nil {
		return nil, err
	}
	cfg := &th.Config
	ax := &cfg.Axis
	gs := bc.groups()
	gNdx := make(map[string]int, len(gs))
	for i, g := range gs {
		gNdx[g] = i
	}

	labelW, top := 0, 0.0
	for _, b := range bc.Bars {
		if w := p.width(b.Label, ax.LabelFontSize); w > labelW {
			labelW = w
		}
		top = math.Max(top, b.Value)
	}
	if top <= 0 {
		top = 1
	}
	legendW := 0
	if len(gs) > 1 {
		for _, g := range gs {
			if w := p.width(g, cfg.Legend.LabelFontSize); w > legendW {
				legendW = w
			}
		}
		legendW += legendSq + 2*int(cfg.Legend.Padding) + pad
	}

	plotTop := pad
	if bc.Title != "" {
		plotTop += int(cfg.Title.FontSize + cfg.Title.Offset)
	}
	plotLeft := pad + labelW + int(ax.LabelPadding+ax.TickSize)
	plotBot := plotTop + len(bc.Bars)*(barH+barGap) + barGap
	height := plotBot + int(ax.TickSize+ax.LabelPadding+ax.LabelFontSize) + pad
	if bc.XTitle != "" {
		height += int(ax.TitlePadding + ax.TitleFontSize)
	}
	width := plotLeft + plotW + legendW + pad

	p.img = image.NewRGBA(image.Rect(0, 0, width, height))
	p.ctx.SetDst(p.img)
	p.ctx.SetClip(p.img.Bounds())
	p.fill(p.img.Bounds(), colour(cfg.Background))

	if bc.Title != "" {
		x := pad
		if cfg.Title.Anchor == "middle" {
			x = (width - p.width(bc.Title, cfg.Title.FontSize)) / 2
		}
		if err := p.text(bc.Title, cfg.Title.FontSize, colour(cfg.Title.Color), x, pad+p.ascent(cfg.Title.FontSize)); err != nil {
			return nil, err
		}
	}

	xpos := func(v float64) int { return plotLeft + int(math.Round(v/top*plotW)) }
	tickVals := ticks(top, ax.TickCount)
	tickW := int(math.Max(1, ax.TickWidth))
	for _, v := range tickVals {
		x := xpos(v)
		if ax.Grid {
			gw := int(math.Max(1, ax.GridWidth))
			p.fill(image.Rect(x, plotTop, x+gw, plotBot), colour(ax.GridColor))
		}
		p.fill(image.Rect(x, plotBot, x+tickW, plotBot+int(ax.TickSize)), colour(ax.TickColor))
		s := fmt.Sprintf("%.2f", v)
		y := plotBot + int(ax.TickSize+ax.LabelPadding) + p.ascent(ax.LabelFontSize)
		if err := p.text(s, ax.LabelFontSize, colour(axisText), x-p.width(s, ax.LabelFontSize)/2, y); err != nil {
			return nil, err
		}
	}

	for i, b := range bc.Bars {
		y0 := plotTop + barGap + i*(barH+barGap)
		x1 := xpos(math.Max(0, b.Value))
		p.fill(image.Rect(plotLeft, y0, x1, y0+barH), th.Category(gNdx[b.Group]))
		lw := p.width(b.Label, ax.LabelFontSize)
		base := y0 + barH/2 + p.ascent(ax.LabelFontSize)/2
		if err := p.text(b.Label, ax.LabelFontSize, colour(axisText), plotLeft-int(ax.LabelPadding+ax.TickSize)-lw, base); err != nil {
			return nil, err
		}
	}

	if ax.Domain {
		dw := int(math.Max(1, ax.DomainWidth))
		dc := colour(ax.DomainColor)
		p.fill(image.Rect(plotLeft-dw, plotTop, plotLeft, plotBot), dc)
		p.fill(image.Rect(plotLeft-dw, plotBot, plotLeft+plotW, plotBot+dw), dc)
	}

	if bc.XTitle != "" {
		tw := p.width(bc.XTitle, ax.TitleFontSize)
		y := height - pad
		if err := p.text(bc.XTitle, ax.TitleFontSize, colour(axisText), plotLeft+(plotW-tw)/2, y); err != nil {
			return nil, err
		}
	}

	if len(gs) > 1 {
		lx := plotLeft + plotW + pad + int(cfg.Legend.Padding)
		for i, g := range gs {
			y0 := plotTop + int(cfg.Legend.Padding) + i*(legendSq+barGap)
			p.fill(image.Rect(lx, y0, lx+legendSq, y0+legendSq), th.Category(i))
			if err := p.text(g, cfg.Legend.LabelFontSize, colour(axisText), lx+legendSq+4, y0+legendSq); err != nil {
				return nil, err
			}
		}
	}
	return p.img, nil
}

const axisText = "black"

// WritePNG draws the chart and writes it in PNG format.
func (bc *BarChart) WritePNG(w io.Writer, th *theme.Theme) error {
	img, err := bc.Draw(th)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// WritePNGFile writes the chart to a file, which is overwritten.
func (bc *BarChart) WritePNGFile(fname string, th *theme.Theme) error {
	fp, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("chart output file %v: %w", fname, err)
	}
	bw := bufio.NewWriter(fp)
	if err = bc.WritePNG(bw, th); err == nil {
		err = bw.Flush()
	}
	if e := fp.Close(); err == nil {
		err = e
	}
	return err
}
