package render

import "math"

// Series is one curve of a Chart, sampled at evenly spaced positions.
type Series struct {
	Name   string
	Values []float64
	Color  Color
}

// Chart plots spanwise distributions such as circulation or section lift
// coefficient. All series share one vertical scale, which always includes
// zero.
type Chart struct {
	Width, Height int // pixels
	Background    Color
	Axis          Color
	Series        []Series
}

// Range returns the vertical extent of the chart.
func (c Chart) Range() (lo, hi float64) {
	for _, s := range c.Series {
		for _, v := range s.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}
	if hi == lo {
		hi = lo + 1
	}
	return lo, hi
}

// Row returns the pixel row of value v.
func (c Chart) Row(v float64) int {
	lo, hi := c.Range()
	return c.Height - 1 - int(math.Round((v-lo)/(hi-lo)*float64(c.Height-1)))
}

// Column returns the pixel column of sample i out of n.
func (c Chart) Column(i, n int) int {
	if n < 2 {
		return (c.Width - 1) / 2
	}
	return int(math.Round(float64(i) * float64(c.Width-1) / float64(n-1)))
}

// Framebuffer draws the chart.
func (c Chart) Framebuffer() *Framebuffer {
	fb := NewFramebuffer(c.Width, c.Height)
	fb.Clear(c.Background)
	if c.Width == 0 || c.Height == 0 {
		return fb
	}

	zero := c.Row(0)
	fb.DrawLine(0, zero, c.Width-1, zero, c.Axis)
	fb.DrawRectOutline(0, 0, c.Width, c.Height, c.Axis)

	for _, s := range c.Series {
		n := len(s.Values)
		px, py := -1, -1
		for i, v := range s.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				px = -1
				continue
			}
			x, y := c.Column(i, n), c.Row(v)
			if px >= 0 {
				fb.DrawLine(px, py, x, y, s.Color)
			} else {
				fb.SetPixel(x, y, s.Color)
			}
			px, py = x, y
		}
	}
	return fb
}
