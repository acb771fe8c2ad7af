// Package card renders profile card PNGs: the registered display name, type
// text, bio and interests, with the picked numbers shown as badges and as a
// large centered figure.
package card

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fogleman/gg"
)

const (
	cardWidth  = 760
	cardHeight = 360
)

// Profile is the data drawn onto one card.
type Profile struct {
	DisplayName string
	TypeText    string
	Bio         string
	Interests   string
	Numbers     []int
}

// Renderer draws profile cards. The font path is optional; without it gg's
// built-in bitmap face is used.
type Renderer struct {
	fontPath string
	logger   *slog.Logger
}

// NewRenderer creates a card Renderer.
func NewRenderer(fontPath string, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		fontPath: fontPath,
		logger:   logger.With("component", "card_renderer"),
	}
}

func (r *Renderer) loadFace(dc *gg.Context, points float64) {
	if r.fontPath == "" {
		return
	}
	if err := dc.LoadFontFace(r.fontPath, points); err != nil {
		r.logger.Warn("Failed to load font, falling back to built-in face", "path", r.fontPath, "error", err)
	}
}

// Render draws the card and returns the encoded PNG.
func (r *Renderer) Render(p Profile) ([]byte, error) {
	dc := gg.NewContext(cardWidth, cardHeight)
	dc.SetRGB255(250, 250, 255)
	dc.Clear()

	x := 190.0
	y := 50.0

	r.loadFace(dc, 34)
	dc.SetRGB255(20, 20, 20)
	dc.DrawStringAnchored(p.DisplayName, x, y, 0, 0.5)
	y += 46

	r.loadFace(dc, 22)
	dc.SetRGB255(30, 30, 30)
	dc.DrawStringAnchored("体癖: "+p.TypeText, x, y, 0, 0.5)
	y += 34
	if p.Bio != "" {
		dc.DrawStringAnchored("ひとこと: "+p.Bio, x, y, 0, 0.5)
		y += 34
	}
	if p.Interests != "" {
		dc.DrawStringAnchored("興味: "+p.Interests, x, y, 0, 0.5)
	}

	// Badge row for the picked numbers.
	r.loadFace(dc, 16)
	badgeY := 200.0
	dc.SetRGB255(80, 80, 120)
	dc.DrawStringAnchored("数字（O-E-O 準拠）", 24, badgeY, 0, 0.5)

	bx := 24.0
	for _, n := range p.Numbers {
		s := fmt.Sprintf("%d", n)
		w, h := dc.MeasureString(s)
		pad := 12.0
		dc.SetRGB255(230, 235, 255)
		dc.DrawRoundedRectangle(bx, badgeY+14, w+pad*2, h+pad, 8)
		dc.FillPreserve()
		dc.SetRGB255(120, 130, 180)
		dc.Stroke()
		dc.SetRGB255(40, 40, 80)
		dc.DrawStringAnchored(s, bx+pad+w/2, badgeY+14+(h+pad)/2, 0.5, 0.5)
		bx += w + pad*2 + 10
	}

	// Large centered display of the picked numbers.
	r.loadFace(dc, 80)
	parts := make([]string, 0, len(p.Numbers))
	for _, n := range p.Numbers {
		parts = append(parts, fmt.Sprintf("%d", n))
	}
	dc.SetRGB255(10, 10, 30)
	dc.DrawStringAnchored(strings.Join(parts, "  "), cardWidth/2, cardHeight-70, 0.5, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode profile card: %w", err)
	}
	return buf.Bytes(), nil
}
