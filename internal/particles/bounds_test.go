package particles

import (
	"reflect"
	"testing"

	"github.com/san-kum/seaweed/internal/vecmath"
)

func TestBounce(t *testing.T) {
	tests := []struct {
		name      string
		pos, vel  float64
		lo, hi    float64
		wantPos   float64
		wantVel   float64
		wantFloor bool
	}{
		{"inside", 5, 3, 0, 10, 5, 3, false},
		{"above ceiling", 12, 3, 0, 10, 10, -3, false},
		{"on ceiling", 10, 3, 0, 10, 10, -3, false},
		{"below floor", -1, -4, 0, 10, 0, 4, true},
		{"on floor", 0, -4, 0, 10, 0, 4, true},
		{"unbounded axis", 50, 2, 0, 0, 50, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, vel := tt.pos, tt.vel
			floor := bounce(&pos, &vel, tt.lo, tt.hi)
			if pos != tt.wantPos || vel != tt.wantVel || floor != tt.wantFloor {
				t.Errorf("bounce(%v, %v) = (%v, %v, %v), want (%v, %v, %v)",
					tt.pos, tt.vel, pos, vel, floor, tt.wantPos, tt.wantVel, tt.wantFloor)
			}
		})
	}
}

func TestBounds(t *testing.T) {
	b := NewBounds(800, 600)
	if b.Width() != 800 || b.Height() != 600 {
		t.Errorf("size = %vx%v, want 800x600", b.Width(), b.Height())
	}
	if got, want := b.Center(), vecmath.New(400, 300, 0); !reflect.DeepEqual(got, want) {
		t.Errorf("Center() = %v, want %v", got, want)
	}
	if !b.Contains(vecmath.New(0, 600, 0)) || b.Contains(vecmath.New(-1, 10, 0)) {
		t.Error("Contains should include edges and exclude outside points")
	}
}
