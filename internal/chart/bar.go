package chart

import (
	"bytes"
	"fmt"
	"html"
	"math"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/fr4nk3nst1ner/salaryscenes/internal/utils"
)

const (
	bandPadding   = 0.2
	tickCount     = 10
	tickSize      = 6
	titleFontSize = 18
	axisFontSize  = 10
	labelRotation = -30.0
)

// Margin is the space around the plot area
type Margin struct {
	Top, Right, Bottom, Left int
}

// Bar is one value to draw
type Bar struct {
	Label string
	Value float64
}

// Rect is a laid-out bar in plot coordinates (origin at the plot's top left)
type Rect struct {
	Label         string
	Value         float64
	X, Y          float64
	Width, Height float64
}

// BarChart describes a vertical bar chart with a band x axis and a linear y axis
type BarChart struct {
	Title string
	// Width and Height are the SVG canvas size.
	Width, Height int
	// FrameHeight is the height the plot area is derived from; it can be
	// smaller than Height to leave room for rotated labels.
	FrameHeight int
	Margin      Margin
	Color       string
	// Categories is the band domain. Defaults to the bar labels.
	Categories   []string
	Bars         []Bar
	LabelFormat  func(string) string
	RotateLabels bool
}

// Layout is the computed geometry of a BarChart
type Layout struct {
	InnerWidth  float64
	InnerHeight float64
	X           BandScale
	Y           LinearScale
	Ticks       []float64
	Rects       []Rect
}

// Layout computes scales and bar rectangles. Bars whose label is not a
// category are not drawn.
func (c BarChart) Layout() Layout {
	frame := c.FrameHeight
	if frame == 0 {
		frame = c.Height
	}
	l := Layout{
		InnerWidth:  float64(c.Width - c.Margin.Left - c.Margin.Right),
		InnerHeight: float64(frame - c.Margin.Top - c.Margin.Bottom),
	}

	categories := c.Categories
	if categories == nil {
		for _, b := range c.Bars {
			categories = append(categories, b.Label)
		}
	}

	var max float64
	for _, b := range c.Bars {
		max = math.Max(max, b.Value)
	}

	l.X = NewBandScale(categories, 0, l.InnerWidth, bandPadding)
	l.Y = NewLinearScale(0, max, l.InnerHeight, 0)
	l.Ticks = l.Y.Ticks(tickCount)

	for _, b := range c.Bars {
		x, ok := l.X.Position(b.Label)
		if !ok {
			continue
		}
		y := l.Y.Map(b.Value)
		l.Rects = append(l.Rects, Rect{
			Label:  b.Label,
			Value:  b.Value,
			X:      x,
			Y:      y,
			Width:  l.X.Bandwidth(),
			Height: l.InnerHeight - y,
		})
	}
	return l
}

// SVG draws the chart and returns the SVG document
func (c BarChart) SVG() ([]byte, error) {
	if c.Width <= 0 || c.Height <= 0 {
		return nil, fmt.Errorf("invalid chart size %dx%d", c.Width, c.Height)
	}
	l := c.Layout()

	r, err := gochart.SVG(c.Width, c.Height)
	if err != nil {
		return nil, fmt.Errorf("failed to create svg renderer: %w", err)
	}
	font, err := gochart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	r.SetFont(font)

	ox, oy := float64(c.Margin.Left), float64(c.Margin.Top)

	c.drawTitle(r, ox+l.InnerWidth/2, oy-30)
	c.drawYAxis(r, l, ox, oy)
	c.drawXAxis(r, l, ox, oy)

	fill := drawing.ColorFromHex(strings.TrimPrefix(c.Color, "#"))
	for _, rect := range l.Rects {
		x0, y0 := px(ox+rect.X), px(oy+rect.Y)
		x1, y1 := px(ox+rect.X+rect.Width), px(oy+rect.Y+rect.Height)
		r.SetFillColor(fill)
		r.MoveTo(x0, y0)
		r.LineTo(x1, y0)
		r.LineTo(x1, y1)
		r.LineTo(x0, y1)
		r.Close()
		r.Fill()
	}

	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return nil, fmt.Errorf("failed to write svg: %w", err)
	}
	return buf.Bytes(), nil
}

func (c BarChart) drawTitle(r gochart.Renderer, cx, y float64) {
	r.SetFontColor(drawing.ColorBlack)
	r.SetFontSize(titleFontSize)
	w := float64(r.MeasureText(c.Title).Width())
	r.Text(svgText(c.Title), px(cx-w/2), px(y))
}

func (c BarChart) drawYAxis(r gochart.Renderer, l Layout, ox, oy float64) {
	line(r, ox, oy, ox, oy+l.InnerHeight)

	r.SetFontColor(drawing.ColorBlack)
	r.SetFontSize(axisFontSize)
	for _, t := range l.Ticks {
		y := oy + l.Y.Map(t)
		line(r, ox-tickSize, y, ox, y)
		label := utils.FormatNumber(t)
		w := float64(r.MeasureText(label).Width())
		r.Text(label, px(ox-tickSize-3-w), px(y+3))
	}
}

func (c BarChart) drawXAxis(r gochart.Renderer, l Layout, ox, oy float64) {
	base := oy + l.InnerHeight
	line(r, ox, base, ox+l.InnerWidth, base)

	r.SetFontColor(drawing.ColorBlack)
	r.SetFontSize(axisFontSize)
	for _, cat := range l.X.Domain() {
		x, _ := l.X.Position(cat)
		cx := ox + x + l.X.Bandwidth()/2
		line(r, cx, base, cx, base+tickSize)

		label := cat
		if c.LabelFormat != nil {
			label = c.LabelFormat(cat)
		}
		w := float64(r.MeasureText(label).Width())
		ty := base + tickSize + 12

		if !c.RotateLabels {
			r.Text(svgText(label), px(cx-w/2), px(ty))
			continue
		}
		// anchor the end of the rotated label at the tick
		theta := labelRotation * math.Pi / 180
		sx := cx - w*math.Cos(theta)
		sy := ty - w*math.Sin(theta)
		r.SetTextRotation(theta)
		r.Text(svgText(label), px(sx), px(sy))
		r.ClearTextRotation()
	}
}

func line(r gochart.Renderer, x0, y0, x1, y1 float64) {
	r.SetStrokeColor(drawing.ColorBlack)
	r.SetStrokeWidth(1)
	r.MoveTo(px(x0), px(y0))
	r.LineTo(px(x1), px(y1))
	r.Stroke()
}

func px(v float64) int {
	return int(math.Round(v))
}

// svgText escapes text content; the SVG writer emits it verbatim
func svgText(s string) string {
	return html.EscapeString(s)
}
