package scene

import (
	"fmt"
	"math"

	"github.com/san-kum/seaweed/internal/forces"
	"github.com/san-kum/seaweed/internal/particles"
	"github.com/san-kum/seaweed/internal/vecmath"
)

const (
	// OrbitRate is the angular rate of an orbiting body in rad/s.
	OrbitRate  = 6.25
	OrbitSpeed = 300.0
	ThrustStep = 10.0
)

// Body is a rigid sphere swimming through the scene. The player and every
// fish are bodies; only the player carries the environment current.
type Body struct {
	Pos    vecmath.Vec3
	Vel    vecmath.Vec3
	Radius float64
	Mass   float64
	Color  particles.Color

	Player   bool
	Orbiting bool
}

func NewBody(pos vecmath.Vec3, radius, mass float64, c particles.Color) (*Body, error) {
	if !(radius > 0) {
		return nil, fmt.Errorf("%w: radius must be positive, got %v", ErrInvalidBody, radius)
	}
	if !(mass > 0) {
		return nil, fmt.Errorf("%w: mass must be positive, got %v", ErrInvalidBody, mass)
	}
	return &Body{Pos: pos, Radius: radius, Mass: mass, Color: c}, nil
}

// Update moves the body one frame. An orbiting body has its velocity set
// from the clock first; then any velocity component pointing at a touched
// wall is flipped, drag is applied, and the position advances.
func (b *Body) Update(dt float64, clk forces.Clock, bounds particles.Bounds, drag float64) {
	if b.Orbiting {
		a := clk.Elapsed * OrbitRate
		b.Vel = vecmath.New(math.Sin(a)*OrbitSpeed, math.Cos(a)*OrbitSpeed, 0)
	}

	if touches(b.Pos.X, b.Radius, bounds.Min.X, bounds.Max.X) {
		b.Vel.X = -b.Vel.X
	}
	if touches(b.Pos.Y, b.Radius, bounds.Min.Y, bounds.Max.Y) {
		b.Vel.Y = -b.Vel.Y
	}
	if touches(b.Pos.Z, b.Radius, bounds.Min.Z, bounds.Max.Z) {
		b.Vel.Z = -b.Vel.Z
	}

	b.Vel.ScaleAssign(drag)
	b.Pos.AddAssign(b.Vel.Scale(dt))
}

func touches(v, r, lo, hi float64) bool {
	if hi <= lo {
		return false
	}
	return v+r >= hi || v-r <= lo
}

func (b *Body) Contains(p vecmath.Vec3) bool {
	d := b.Pos.Sub(p)
	return d.Dot(d) <= b.Radius*b.Radius
}

// SegmentHits reports whether the segment p1-p2 crosses the body's surface,
// i.e. a root of |p1 + t(p2-p1) - Pos|^2 = r^2 lies in [0, 1]. A segment
// lying wholly inside the sphere does not count.
func (b *Body) SegmentHits(p1, p2 vecmath.Vec3) bool {
	d := p2.Sub(p1)
	f := p1.Sub(b.Pos)

	a := d.Dot(d)
	if a == 0 {
		return math.Abs(f.Dot(f)-b.Radius*b.Radius) < 1e-12
	}
	bb := 2 * f.Dot(d)
	c := f.Dot(f) - b.Radius*b.Radius

	disc := bb*bb - 4*a*c
	if disc < 0 {
		return false
	}
	disc = math.Sqrt(disc)
	t1 := (-bb - disc) / (2 * a)
	t2 := (-bb + disc) / (2 * a)
	return (t1 >= 0 && t1 <= 1) || (t2 >= 0 && t2 <= 1)
}

// Thrust nudges the velocity and cancels orbiting.
func (b *Body) Thrust(dx, dy float64) {
	b.Orbiting = false
	b.Vel.AddAssign(vecmath.New(dx, dy, 0))
}

func (b *Body) Halt() {
	b.Orbiting = false
	b.Vel = vecmath.Zero
}

func (b *Body) SetOrbiting(on bool) { b.Orbiting = on }

func (b *Body) KineticEnergy() float64 {
	return 0.5 * b.Mass * b.Vel.Dot(b.Vel)
}

func (b *Body) IsValid() bool {
	return b.Pos.IsFinite() && b.Vel.IsFinite()
}
