package radar

import (
	"bytes"
	"fmt"
	"log/slog"
	"math"

	"github.com/fogleman/gg"
)

const outerRingFraction = 0.36 // outer ring radius as a fraction of image size

// Renderer draws radar chart PNGs from projections. A TrueType font path is
// optional; without one gg's built-in bitmap face is used, which cannot
// render CJK labels but keeps the chart itself intact.
type Renderer struct {
	size     int
	fontPath string
	logger   *slog.Logger
}

// NewRenderer creates a Renderer producing size x size images.
func NewRenderer(size int, fontPath string, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		size:     size,
		fontPath: fontPath,
		logger:   logger.With("component", "radar_renderer"),
	}
}

// Render draws the projection with the given axis labels and title and
// returns the encoded PNG.
func (r *Renderer) Render(p Projection, axisLabels [AxisCount]string, title string) ([]byte, error) {
	dc := gg.NewContext(r.size, r.size)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	if r.fontPath != "" {
		if err := dc.LoadFontFace(r.fontPath, float64(r.size)/34); err != nil {
			r.logger.Warn("Failed to load font, falling back to built-in face", "path", r.fontPath, "error", err)
		}
	}

	cx := float64(r.size) / 2
	cy := float64(r.size)/2 + float64(r.size)*0.02
	outer := float64(r.size) * outerRingFraction

	// Concentric gridlines, one per threshold, labeled with the raw value.
	dc.SetLineWidth(1)
	for _, g := range p.Grid {
		dc.SetRGBA(0.6, 0.6, 0.65, 1)
		dc.DrawCircle(cx, cy, g.Radius*outer)
		dc.Stroke()
		dc.SetRGBA(0.35, 0.35, 0.4, 1)
		dc.DrawStringAnchored(fmt.Sprintf("%d", g.Value), cx+4, cy-g.Radius*outer, 0, 0.5)
	}

	// Spokes and axis labels.
	for i := 0; i < AxisCount; i++ {
		a := p.Angles[i]
		dc.SetRGBA(0.6, 0.6, 0.65, 1)
		dc.DrawLine(cx, cy, cx+outer*math.Cos(a), cy+outer*math.Sin(a))
		dc.Stroke()

		lx := cx + outer*1.18*math.Cos(a)
		ly := cy + outer*1.18*math.Sin(a)
		dc.SetRGBA(0.1, 0.1, 0.15, 1)
		dc.DrawStringAnchored(axisLabels[i], lx, ly, 0.5, 0.5)
	}

	// Value polygon: translucent fill, then outline.
	dc.MoveTo(cx+p.Normalized[0]*outer*math.Cos(p.Angles[0]), cy+p.Normalized[0]*outer*math.Sin(p.Angles[0]))
	for i := 1; i < len(p.Angles); i++ {
		dc.LineTo(cx+p.Normalized[i]*outer*math.Cos(p.Angles[i]), cy+p.Normalized[i]*outer*math.Sin(p.Angles[i]))
	}
	dc.ClosePath()
	dc.SetRGBA(0.2, 0.4, 0.8, 0.25)
	dc.FillPreserve()
	dc.SetRGBA(0.2, 0.4, 0.8, 1)
	dc.SetLineWidth(2)
	dc.Stroke()

	dc.SetRGBA(0.1, 0.1, 0.15, 1)
	dc.DrawStringAnchored(title, cx, float64(r.size)*0.06, 0.5, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode radar chart: %w", err)
	}
	return buf.Bytes(), nil
}
