// Package chart lays out and draws the bar charts used by every scene.
package chart

import "math"

// BandScale maps categories onto evenly spaced bands of a pixel range.
// Padding is applied both between bands and at the outer edges.
type BandScale struct {
	domain    []string
	index     map[string]int
	start     float64
	step      float64
	bandwidth float64
}

// NewBandScale builds a band scale over domain spanning [r0, r1]
func NewBandScale(domain []string, r0, r1, padding float64) BandScale {
	s := BandScale{
		domain: append([]string(nil), domain...),
		index:  make(map[string]int, len(domain)),
	}
	for i, d := range domain {
		if _, ok := s.index[d]; !ok {
			s.index[d] = i
		}
	}

	n := float64(len(domain))
	s.step = (r1 - r0) / math.Max(1, n-padding+padding*2)
	s.start = r0 + (r1-r0-s.step*(n-padding))*0.5
	s.bandwidth = s.step * (1 - padding)
	return s
}

// Position returns the left edge of the band for key
func (s BandScale) Position(key string) (float64, bool) {
	i, ok := s.index[key]
	if !ok {
		return 0, false
	}
	return s.start + s.step*float64(i), true
}

// Bandwidth is the width of a single band
func (s BandScale) Bandwidth() float64 { return s.bandwidth }

// Domain returns the categories in order
func (s BandScale) Domain() []string { return s.domain }

// LinearScale maps a continuous domain onto a pixel range
type LinearScale struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinearScale maps [d0, d1] onto [r0, r1]
func NewLinearScale(d0, d1, r0, r1 float64) LinearScale {
	return LinearScale{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Map converts a domain value into range space. A collapsed domain maps
// everything to the middle of the range.
func (s LinearScale) Map(v float64) float64 {
	if s.d1 == s.d0 {
		return (s.r0 + s.r1) / 2
	}
	return s.r0 + (v-s.d0)/(s.d1-s.d0)*(s.r1-s.r0)
}

// Ticks returns roughly count round values covering the domain
func (s LinearScale) Ticks(count int) []float64 {
	return Ticks(math.Min(s.d0, s.d1), math.Max(s.d0, s.d1), count)
}

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// Ticks picks 1, 2 or 5 times a power of ten as the step so that about
// count ticks land inside [start, stop].
func Ticks(start, stop float64, count int) []float64 {
	if start == stop || count <= 0 {
		return []float64{start}
	}

	step := (stop - start) / float64(count)
	power := math.Floor(math.Log10(step))
	errRatio := step / math.Pow(10, power)
	factor := 1.0
	switch {
	case errRatio >= e10:
		factor = 10
	case errRatio >= e5:
		factor = 5
	case errRatio >= e2:
		factor = 2
	}

	var ticks []float64
	if power < 0 {
		inc := math.Pow(10, -power) / factor
		i1, i2 := math.Round(start*inc), math.Round(stop*inc)
		if i1/inc < start {
			i1++
		}
		if i2/inc > stop {
			i2--
		}
		for i := i1; i <= i2; i++ {
			ticks = append(ticks, i/inc)
		}
		return ticks
	}

	inc := math.Pow(10, power) * factor
	i1, i2 := math.Round(start/inc), math.Round(stop/inc)
	if i1*inc < start {
		i1++
	}
	if i2*inc > stop {
		i2--
	}
	for i := i1; i <= i2; i++ {
		ticks = append(ticks, i*inc)
	}
	return ticks
}
