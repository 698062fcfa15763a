package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/seaweed/internal/forces"
	"github.com/san-kum/seaweed/internal/particles"
	"github.com/san-kum/seaweed/internal/vecmath"
)

func TestBody_SegmentHits(t *testing.T) {
	b := &Body{Radius: 1, Mass: 1}

	tests := []struct {
		name   string
		p1, p2 vecmath.Vec3
		want   bool
	}{
		{"crosses", vecmath.New(-2, 0, 0), vecmath.New(2, 0, 0), true},
		{"passes above", vecmath.New(-2, 5, 0), vecmath.New(2, 5, 0), false},
		{"tangent", vecmath.New(-2, 1, 0), vecmath.New(2, 1, 0), true},
		{"starts on surface", vecmath.New(1, 0, 0), vecmath.New(3, 0, 0), true},
		{"stops short", vecmath.New(-3, 0, 0), vecmath.New(-2, 0, 0), false},
		{"wholly inside", vecmath.New(-0.5, 0, 0), vecmath.New(0.5, 0, 0), false},
		{"point on surface", vecmath.New(0, 1, 0), vecmath.New(0, 1, 0), true},
		{"point inside", vecmath.New(0, 0.5, 0), vecmath.New(0, 0.5, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.SegmentHits(tt.p1, tt.p2); got != tt.want {
				t.Errorf("SegmentHits(%v, %v) = %v, want %v", tt.p1, tt.p2, got, tt.want)
			}
		})
	}
}

func TestBody_Contains(t *testing.T) {
	b := &Body{Pos: vecmath.New(10, 10, 0), Radius: 2}

	if !b.Contains(vecmath.New(11, 11, 0)) {
		t.Error("interior point not contained")
	}
	if !b.Contains(vecmath.New(12, 10, 0)) {
		t.Error("surface point not contained")
	}
	if b.Contains(vecmath.New(13, 10, 0)) {
		t.Error("exterior point contained")
	}
}

func TestBody_Update(t *testing.T) {
	bounds := particles.DefaultBounds()

	tests := []struct {
		name    string
		pos     vecmath.Vec3
		vel     vecmath.Vec3
		drag    float64
		wantPos vecmath.Vec3
		wantVel vecmath.Vec3
	}{
		{
			name: "free", pos: vecmath.New(400, 400, 0), vel: vecmath.New(100, 0, 0), drag: 1,
			wantPos: vecmath.New(410, 400, 0), wantVel: vecmath.New(100, 0, 0),
		},
		{
			name: "right wall with drag", pos: vecmath.New(795, 400, 0), vel: vecmath.New(100, 0, 0), drag: 0.5,
			wantPos: vecmath.New(790, 400, 0), wantVel: vecmath.New(-50, 0, 0),
		},
		{
			name: "floor", pos: vecmath.New(400, 5, 0), vel: vecmath.New(0, -20, 0), drag: 1,
			wantPos: vecmath.New(400, 7, 0), wantVel: vecmath.New(0, 20, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Body{Pos: tt.pos, Vel: tt.vel, Radius: 10, Mass: 1}
			b.Update(0.1, forces.Clock{}, bounds, tt.drag)

			if !b.Pos.ApproxEqual(tt.wantPos, 1e-9) {
				t.Errorf("Pos = %v, want %v", b.Pos, tt.wantPos)
			}
			if !b.Vel.ApproxEqual(tt.wantVel, 1e-9) {
				t.Errorf("Vel = %v, want %v", b.Vel, tt.wantVel)
			}
		})
	}
}

func TestBody_Orbit(t *testing.T) {
	bounds := particles.DefaultBounds()
	b := &Body{Pos: vecmath.New(400, 400, 0), Radius: 10, Mass: 1, Orbiting: true}

	b.Update(0.01, forces.Clock{}, bounds, 1)
	if !b.Vel.ApproxEqual(vecmath.New(0, OrbitSpeed, 0), 1e-9) {
		t.Errorf("Vel at t=0 = %v, want (0, %v, 0)", b.Vel, OrbitSpeed)
	}
	if !b.Pos.ApproxEqual(vecmath.New(400, 403, 0), 1e-9) {
		t.Errorf("Pos = %v", b.Pos)
	}

	quarter := forces.Clock{Frame: 10, Elapsed: math.Pi / 2 / OrbitRate}
	b.Update(0.01, quarter, bounds, 1)
	if !b.Vel.ApproxEqual(vecmath.New(OrbitSpeed, 0, 0), 1e-9) {
		t.Errorf("Vel at quarter turn = %v, want (%v, 0, 0)", b.Vel, OrbitSpeed)
	}
}

func TestBody_Controls(t *testing.T) {
	b := &Body{Radius: 1, Mass: 1, Orbiting: true}

	b.Thrust(ThrustStep, 0)
	b.Thrust(0, -ThrustStep)
	if b.Orbiting {
		t.Error("thrust should cancel orbiting")
	}
	if b.Vel != vecmath.New(10, -10, 0) {
		t.Errorf("Vel = %v, want (10, -10, 0)", b.Vel)
	}

	b.SetOrbiting(true)
	b.Halt()
	if b.Orbiting || b.Vel != vecmath.Zero {
		t.Errorf("Halt left orbiting=%v vel=%v", b.Orbiting, b.Vel)
	}
}

func TestNewBody_Invalid(t *testing.T) {
	if _, err := NewBody(vecmath.Zero, 0, 1, particles.Red); !errors.Is(err, ErrInvalidBody) {
		t.Errorf("zero radius: got %v", err)
	}
	if _, err := NewBody(vecmath.Zero, 1, math.NaN(), particles.Red); !errors.Is(err, ErrInvalidBody) {
		t.Errorf("NaN mass: got %v", err)
	}
}
