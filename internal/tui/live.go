// Package tui prints plain ANSI frames of a running scene, for headless runs
// watched from a terminal.
package tui

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/san-kum/seaweed/internal/particles"
	"github.com/san-kum/seaweed/internal/scene"
	"github.com/san-kum/seaweed/internal/vecmath"
)

const (
	width       = 70
	height      = 24
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer is a scene observer that redraws the terminal at most
// frameRate times per second. A frameRate of zero draws every frame.
type LiveRenderer struct {
	title     string
	frameRate int
	out       io.Writer
	lastFrame time.Time
	canvas    [][]rune
	bounds    particles.Bounds
}

func NewLiveRenderer(title string, frameRate int, out io.Writer) *LiveRenderer {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	return &LiveRenderer{
		title:     title,
		frameRate: frameRate,
		out:       out,
		canvas:    canvas,
	}
}

func (r *LiveRenderer) OnFrame(s *scene.Scene) {
	if r.frameRate > 0 {
		if time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
			return
		}
		r.lastFrame = time.Now()
	}

	r.bounds = s.Bounds()
	r.clear()
	s.Render(r)
	r.render(s)
}

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune) {
	if x >= 0 && x < width && y >= 0 && y < height {
		r.canvas[y][x] = c
	}
}

// project maps a world position to a character cell, Y up.
func (r *LiveRenderer) project(p vecmath.Vec3) (int, int) {
	fx := (p.X - r.bounds.Min.X) / r.bounds.Width()
	fy := (p.Y - r.bounds.Min.Y) / r.bounds.Height()
	return int(math.Round(fx * (width - 1))), int(math.Round((1 - fy) * (height - 1)))
}

func (r *LiveRenderer) DrawPoint(pos vecmath.Vec3, size float64, _ particles.Color) {
	x, y := r.project(pos)
	if size >= 2 {
		r.set(x, y, 'o')
		return
	}
	if r.canvas[clamp(y, height)][clamp(x, width)] == ' ' {
		r.set(x, y, '.')
	}
}

func (r *LiveRenderer) DrawLine(from, to vecmath.Vec3, _ particles.Color) {
	x1, y1 := r.project(from)
	x2, y2 := r.project(to)
	r.line(x1, y1, x2, y2, '|')
}

func (r *LiveRenderer) DrawCircle(center vecmath.Vec3, radius float64, _ particles.Color) {
	cx, cy := r.project(center)
	rx := radius / r.bounds.Width() * width
	ry := radius / r.bounds.Height() * height

	n := int(2*math.Pi*math.Max(rx, ry)) + 8
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		r.set(cx+int(math.Round(rx*math.Cos(a))), cy-int(math.Round(ry*math.Sin(a))), 'O')
	}
	r.set(cx, cy, '+')
}

func (r *LiveRenderer) line(x1, y1, x2, y2 int, c rune) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	if dx > dy {
		c = '-'
	}
	err := dx - dy
	for {
		r.set(x1, y1, c)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func (r *LiveRenderer) render(s *scene.Scene) {
	clk := s.Clock()

	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  %s  t=%.2fs  frame %d\n", r.title, clk.Elapsed, clk.Frame))
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	for _, row := range r.canvas {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	p := s.Player()
	b.WriteString(fmt.Sprintf("  systems=%d particles=%d player=(%.0f, %.0f)\n",
		s.Systems().Len(), s.Systems().ParticleCount(), p.Pos.X, p.Pos.Y))

	fmt.Fprint(r.out, b.String())
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func clamp(v, n int) int {
	return min(max(v, 0), n-1)
}
