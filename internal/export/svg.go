// Package export writes scene frames and metric histories as SVG.
package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/seaweed/internal/particles"
	"github.com/san-kum/seaweed/internal/vecmath"
)

const background = "#04141f"

// SVG is a scene canvas that collects shapes in world coordinates and
// writes them as a single SVG document, Y up.
type SVG struct {
	bounds particles.Bounds
	scale  float64
	body   strings.Builder
	shapes int
}

func NewSVG(bounds particles.Bounds, scale float64) *SVG {
	if scale <= 0 {
		scale = 1
	}
	return &SVG{bounds: bounds, scale: scale}
}

func (s *SVG) point(p vecmath.Vec3) (float64, float64) {
	return (p.X - s.bounds.Min.X) * s.scale, (s.bounds.Max.Y - p.Y) * s.scale
}

func (s *SVG) DrawPoint(pos vecmath.Vec3, size float64, c particles.Color) {
	x, y := s.point(pos)
	r := math.Max(size*s.scale/2, 0.5)
	fmt.Fprintf(&s.body, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n", x, y, r, c.Hex())
	s.shapes++
}

func (s *SVG) DrawLine(from, to vecmath.Vec3, c particles.Color) {
	x1, y1 := s.point(from)
	x2, y2 := s.point(to)
	fmt.Fprintf(&s.body, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>`+"\n", x1, y1, x2, y2, c.Hex())
	s.shapes++
}

func (s *SVG) DrawCircle(center vecmath.Vec3, radius float64, c particles.Color) {
	x, y := s.point(center)
	fmt.Fprintf(&s.body, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="%s" stroke-width="2"/>`+"\n",
		x, y, radius*s.scale, c.Hex())
	s.shapes++
}

// Shapes reports how many elements have been drawn.
func (s *SVG) Shapes() int { return s.shapes }

func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	width := s.bounds.Width() * s.scale
	height := s.bounds.Height() * s.scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)
	sb.WriteString(s.body.String())
	sb.WriteString("</svg>\n")

	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

// HistoryToSVG draws a metric history as a polyline scaled to fit.
func HistoryToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	span := hi - lo
	if span == 0 {
		span = 1
	}
	lo -= span * 0.1
	span *= 1.2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, background, strokeColor)

	last := float64(len(values) - 1)
	for i, v := range values {
		x := float64(i) / last * float64(width)
		y := float64(height) - (v-lo)/span*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>
`)
	return sb.String()
}
