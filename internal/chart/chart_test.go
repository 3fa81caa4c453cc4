package chart

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBandScale(t *testing.T) {
	s := NewBandScale([]string{"a", "b"}, 0, 100, 0.2)

	a, ok := s.Position("a")
	require.True(t, ok)
	b, ok := s.Position("b")
	require.True(t, ok)

	assert.InDelta(t, 9.0909, a, 1e-3)
	assert.InDelta(t, 54.5454, b, 1e-3)
	assert.InDelta(t, 36.3636, s.Bandwidth(), 1e-3)
	// outer padding is symmetric
	assert.InDelta(t, 100-(b+s.Bandwidth()), a, 1e-9)

	_, ok = s.Position("missing")
	assert.False(t, ok)
}

func TestLinearScale(t *testing.T) {
	s := NewLinearScale(0, 500, 410, 0)
	assert.Equal(t, 410.0, s.Map(0))
	assert.Equal(t, 0.0, s.Map(500))
	assert.Equal(t, 205.0, s.Map(250))

	flat := NewLinearScale(0, 0, 410, 0)
	assert.Equal(t, 205.0, flat.Map(0))
}

func TestTicks(t *testing.T) {
	ticks := Ticks(0, 500, 10)
	require.Len(t, ticks, 11)
	assert.Equal(t, 0.0, ticks[0])
	assert.Equal(t, 50.0, ticks[1])
	assert.Equal(t, 500.0, ticks[10])

	ticks = Ticks(0, 287000, 10)
	require.Len(t, ticks, 15)
	assert.Equal(t, 20000.0, ticks[1])
	assert.Equal(t, 280000.0, ticks[14])

	assert.Equal(t, []float64{0, 50000, 100000, 150000, 200000, 250000}, Ticks(0, 287000, 5))

	assert.InDeltaSlice(t, []float64{0, 0.2, 0.4, 0.6, 0.8, 1}, Ticks(0, 1, 5), 1e-9)
	assert.Equal(t, []float64{7}, Ticks(7, 7, 10))
}

func sampleChart() BarChart {
	return BarChart{
		Title:       "Average Salary",
		Width:       900,
		Height:      700,
		FrameHeight: 600,
		Margin:      Margin{Top: 60, Right: 250, Bottom: 130, Left: 100},
		Color:       "#4682b4",
		Categories:  []string{"EN", "MI", "SE", "EX"},
		Bars:        []Bar{{Label: "EN", Value: 100}, {Label: "SE", Value: 400}},
	}
}

func TestLayoutSkipsMissingCategories(t *testing.T) {
	l := sampleChart().Layout()

	assert.Equal(t, 550.0, l.InnerWidth)
	assert.Equal(t, 410.0, l.InnerHeight)
	require.Len(t, l.Rects, 2)

	en, se := l.Rects[0], l.Rects[1]
	assert.Equal(t, "EN", en.Label)
	assert.Equal(t, "SE", se.Label)
	// tallest bar reaches the top of the plot
	assert.Equal(t, 0.0, se.Y)
	assert.Equal(t, 410.0, se.Height)
	// bar heights are proportional to values
	assert.InDelta(t, se.Height/4, en.Height, 1e-9)
	assert.Equal(t, en.Width, se.Width)
	assert.Less(t, en.X, se.X)
}

func TestLayoutIgnoresUnknownBars(t *testing.T) {
	c := sampleChart()
	c.Bars = append(c.Bars, Bar{Label: "??", Value: 1000})
	l := c.Layout()
	assert.Len(t, l.Rects, 2)
}

func TestLayoutDefaultsCategoriesToBars(t *testing.T) {
	c := sampleChart()
	c.Categories = nil
	l := c.Layout()
	assert.Equal(t, []string{"EN", "SE"}, l.X.Domain())
}

func TestSVG(t *testing.T) {
	c := sampleChart()
	c.Title = "Salary <R&D>"
	c.LabelFormat = func(s string) string { return s + "!" }
	svg, err := c.SVG()
	require.NoError(t, err)

	out := string(svg)
	assert.True(t, strings.Contains(out, "<svg"))
	assert.Contains(t, out, "Salary &lt;R&amp;D&gt;")
	assert.NotContains(t, out, "<R&D>")
	assert.Contains(t, out, "EX!")
	assert.Contains(t, out, ">400<")

	c.RotateLabels = true
	rotated, err := c.SVG()
	require.NoError(t, err)
	assert.Contains(t, string(rotated), "rotate(")

	_, err = BarChart{}.SVG()
	assert.Error(t, err)
}
