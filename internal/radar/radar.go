// Package radar converts five-axis contribution scores into polar chart
// geometry and renders the chart as a PNG. The outer ring grows in steps as
// scores grow, so early charts stay readable while leaving headroom.
package radar

import "math"

// AxisCount is the fixed number of chart axes.
const AxisCount = 5

// Thresholds is the ascending ladder of display-ceiling candidates for the
// outer ring. The chart saturates at the last rung.
var Thresholds = []int{10, 20, 40, 80, 160}

// ScaleFor returns the first ladder rung covering maxValue, or the last rung
// when maxValue exceeds the whole ladder. A zero maximum still yields the
// first rung so the chart always has a positive outer ring.
func ScaleFor(maxValue int) int {
	for _, t := range Thresholds {
		if maxValue <= t {
			return t
		}
	}
	return Thresholds[len(Thresholds)-1]
}

// GridLevel is one concentric gridline: its radius as a fraction of the
// outer ring, and the raw threshold value used as the ring label.
type GridLevel struct {
	Radius float64
	Value  int
}

// Projection is the chart geometry for one set of axis values: angles and
// normalized radii (both closed, first point repeated at the end) plus the
// gridline set for the chosen scale.
type Projection struct {
	Angles     []float64
	Normalized []float64
	Grid       []GridLevel
	Scale      int
}

// Project maps values onto evenly spaced spokes starting at 12 o'clock and
// proceeding clockwise. Normalized radii are values[i]/scale; when scale is
// chosen with ScaleFor(max(values)) no radius exceeds 1.0.
func Project(values [AxisCount]int, scale int) Projection {
	p := Projection{
		Angles:     make([]float64, 0, AxisCount+1),
		Normalized: make([]float64, 0, AxisCount+1),
		Scale:      scale,
	}

	for i := 0; i < AxisCount; i++ {
		p.Angles = append(p.Angles, -math.Pi/2+2*math.Pi*float64(i)/AxisCount)
		p.Normalized = append(p.Normalized, float64(values[i])/float64(scale))
	}
	p.Angles = append(p.Angles, p.Angles[0])
	p.Normalized = append(p.Normalized, p.Normalized[0])

	for _, t := range Thresholds {
		if t > scale {
			break
		}
		p.Grid = append(p.Grid, GridLevel{Radius: float64(t) / float64(scale), Value: t})
	}
	return p
}

// MaxValue returns the largest of the five axis values.
func MaxValue(values [AxisCount]int) int {
	max := 0
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	return max
}
