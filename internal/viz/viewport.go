package viz

import (
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/seaweed/internal/particles"
	"github.com/san-kum/seaweed/internal/vecmath"
)

// Viewport maps world coordinates onto a canvas with Y pointing up, the way
// the simulation domain is laid out. It satisfies scene.Canvas.
type Viewport struct {
	canvas *Canvas
	bounds particles.Bounds
}

func NewViewport(c *Canvas, b particles.Bounds) *Viewport {
	return &Viewport{canvas: c, bounds: b}
}

func (v *Viewport) Canvas() *Canvas { return v.canvas }

// Project returns the sub-pixel nearest to p. Z is ignored.
func (v *Viewport) Project(p vecmath.Vec3) (int, int) {
	fx := (p.X - v.bounds.Min.X) / v.bounds.Width()
	fy := (p.Y - v.bounds.Min.Y) / v.bounds.Height()
	x := int(math.Round(fx * float64(v.canvas.SubWidth()-1)))
	y := int(math.Round((1 - fy) * float64(v.canvas.SubHeight()-1)))
	return x, y
}

// Unproject returns the world position at the center of a terminal cell.
func (v *Viewport) Unproject(col, row int) vecmath.Vec3 {
	fx := (float64(col) + 0.5) / float64(v.canvas.Width)
	fy := (float64(row) + 0.5) / float64(v.canvas.Height)
	return vecmath.New(
		v.bounds.Min.X+fx*v.bounds.Width(),
		v.bounds.Min.Y+(1-fy)*v.bounds.Height(),
		0,
	)
}

func (v *Viewport) scale() (sx, sy float64) {
	return float64(v.canvas.SubWidth()) / v.bounds.Width(), float64(v.canvas.SubHeight()) / v.bounds.Height()
}

func (v *Viewport) DrawPoint(pos vecmath.Vec3, size float64, c particles.Color) {
	v.canvas.SetPen(penColor(c))
	x, y := v.Project(pos)
	v.canvas.Set(x, y)
	if size >= 2 {
		v.canvas.Set(x+1, y)
		v.canvas.Set(x, y+1)
		v.canvas.Set(x+1, y+1)
	}
}

func (v *Viewport) DrawLine(from, to vecmath.Vec3, c particles.Color) {
	v.canvas.SetPen(penColor(c))
	x0, y0 := v.Project(from)
	x1, y1 := v.Project(to)
	v.canvas.DrawLine(x0, y0, x1, y1)
}

// DrawCircle draws the outline of a body. Radii are scaled per axis so a
// circle stays round in world space.
func (v *Viewport) DrawCircle(center vecmath.Vec3, radius float64, c particles.Color) {
	v.canvas.SetPen(penColor(c))
	sx, sy := v.scale()
	rx, ry := radius*sx, radius*sy
	cx, cy := v.Project(center)

	n := int(2*math.Pi*math.Max(rx, ry)) + 8
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		x := cx + int(math.Round(rx*math.Cos(a)))
		y := cy - int(math.Round(ry*math.Sin(a)))
		v.canvas.Set(x, y)
	}
}

func penColor(c particles.Color) lipgloss.Color {
	return lipgloss.Color(c.Hex())
}
