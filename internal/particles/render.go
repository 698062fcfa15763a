package particles

import (
	"fmt"
	"math"

	"github.com/san-kum/seaweed/internal/vecmath"
)

// Color is an RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

var (
	Black = Color{0, 0, 0, 1}
	White = Color{1, 1, 1, 1}
	Red   = Color{1, 0, 0, 1}
	Green = Color{0, 1, 0, 1}
	Cyan  = Color{0.6, 0.9, 1, 1}
)

// Hex formats the color as #rrggbb, ignoring alpha.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float64) int {
	return int(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// Renderer is the drawing surface bound by the caller for a render pass.
// Render methods only read simulation state.
type Renderer interface {
	DrawPoint(pos vecmath.Vec3, size float64, c Color)
	DrawLine(from, to vecmath.Vec3, c Color)
}
