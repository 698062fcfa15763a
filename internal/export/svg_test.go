package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/san-kum/seaweed/internal/particles"
	"github.com/san-kum/seaweed/internal/scene"
	"github.com/san-kum/seaweed/internal/vecmath"
)

var _ scene.Canvas = (*SVG)(nil)

func TestSVG_Shapes(t *testing.T) {
	s := NewSVG(particles.NewBounds(100, 50), 2)
	s.DrawPoint(vecmath.New(0, 0, 0), 4, particles.Green)
	s.DrawLine(vecmath.New(0, 0, 0), vecmath.New(100, 50, 0), particles.White)
	s.DrawCircle(vecmath.New(50, 25, 0), 10, particles.Red)

	if s.Shapes() != 3 {
		t.Fatalf("expected 3 shapes, got %d", s.Shapes())
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	tests := []string{
		`width="200" height="100"`,
		`<circle cx="0.0" cy="100.0" r="4.0" fill="#00ff00"/>`,
		`<line x1="0.0" y1="100.0" x2="200.0" y2="0.0" stroke="#ffffff"/>`,
		`<circle cx="100.0" cy="50.0" r="20.0" fill="none" stroke="#ff0000"`,
	}
	for _, want := range tests {
		if !strings.Contains(out, want) {
			t.Errorf("svg missing %q\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Error("svg not closed")
	}
}

func TestSVG_TinyPointsStayVisible(t *testing.T) {
	s := NewSVG(particles.NewBounds(10, 10), 1)
	s.DrawPoint(vecmath.New(5, 5, 0), 0.1, particles.Cyan)

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `r="0.5"`) {
		t.Errorf("expected minimum radius, got\n%s", buf.String())
	}
}

func TestHistoryToSVG(t *testing.T) {
	if HistoryToSVG([]float64{1}, 100, 50, "#fff") != "" {
		t.Error("single value should produce no chart")
	}

	out := HistoryToSVG([]float64{0, 1, 2, 3}, 300, 100, "#00ff00")
	if !strings.Contains(out, `stroke="#00ff00"`) {
		t.Error("stroke color missing")
	}
	if got := strings.Count(out, " L"); got != 3 {
		t.Errorf("expected 3 segments, got %d", got)
	}
	if !strings.Contains(out, "M0.0,") || !strings.Contains(out, " L300.0,") {
		t.Errorf("path should span the width\n%s", out)
	}
}

func TestHistoryToSVG_Flat(t *testing.T) {
	out := HistoryToSVG([]float64{5, 5, 5}, 100, 100, "#fff")
	if strings.Contains(out, "NaN") {
		t.Errorf("flat history produced NaN\n%s", out)
	}
}
