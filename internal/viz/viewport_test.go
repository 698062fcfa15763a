package viz

import (
	"testing"

	"github.com/san-kum/seaweed/internal/particles"
	"github.com/san-kum/seaweed/internal/vecmath"
)

func newViewport() *Viewport {
	return NewViewport(NewCanvas(10, 10), particles.DefaultBounds())
}

func TestViewport_Project(t *testing.T) {
	v := newViewport()

	tests := []struct {
		name  string
		pos   vecmath.Vec3
		wantX int
		wantY int
	}{
		{"origin at bottom left", vecmath.New(0, 0, 0), 0, 39},
		{"top right", vecmath.New(800, 800, 0), 19, 0},
		{"center", vecmath.New(400, 400, 0), 10, 20},
		{"depth ignored", vecmath.New(0, 0, 500), 0, 39},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := v.Project(tt.pos)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("Project(%v) = (%d, %d), want (%d, %d)", tt.pos, x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestViewport_Unproject(t *testing.T) {
	v := newViewport()

	got := v.Unproject(0, 0)
	if !got.ApproxEqual(vecmath.New(40, 760, 0), 1e-9) {
		t.Errorf("Unproject(0, 0) = %v, want (40, 760, 0)", got)
	}

	got = v.Unproject(9, 9)
	if !got.ApproxEqual(vecmath.New(760, 40, 0), 1e-9) {
		t.Errorf("Unproject(9, 9) = %v, want (760, 40, 0)", got)
	}
}

func TestViewport_Draw(t *testing.T) {
	v := newViewport()
	c := v.Canvas()

	v.DrawPoint(vecmath.New(0, 0, 0), 1, particles.Green)
	if !c.IsSet(0, 39) {
		t.Error("point not drawn")
	}
	if c.Colors[9][0] != penColor(particles.Green) {
		t.Errorf("point color = %q", c.Colors[9][0])
	}

	v.DrawLine(vecmath.New(0, 800, 0), vecmath.New(800, 800, 0), particles.White)
	if !c.IsSet(0, 0) || !c.IsSet(19, 0) || !c.IsSet(10, 0) {
		t.Error("line not drawn across the top row")
	}
}

func TestViewport_DrawCircle(t *testing.T) {
	v := newViewport()
	c := v.Canvas()

	v.DrawCircle(vecmath.New(400, 400, 0), 100, particles.Red)

	if !c.IsSet(13, 20) {
		t.Error("rightmost point of the outline missing")
	}
	if c.IsSet(10, 20) {
		t.Error("circle outline filled its center")
	}
}

func TestViewport_BubbleSize(t *testing.T) {
	v := newViewport()
	v.DrawPoint(vecmath.New(400, 400, 0), 2, particles.Cyan)

	for _, p := range [][2]int{{10, 20}, {11, 20}, {10, 21}, {11, 21}} {
		if !v.Canvas().IsSet(p[0], p[1]) {
			t.Errorf("sub-pixel %v not set for a size 2 point", p)
		}
	}
}
