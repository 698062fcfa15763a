package particles

import "github.com/san-kum/seaweed/internal/vecmath"

// Joint is a damped spring between particles A and B of the owning system.
//
// RestLength is recorded but the force law treats zero separation as
// equilibrium.
type Joint struct {
	A, B       int
	Stiffness  float64
	Damping    float64
	RestLength float64
	Color      Color
}

// Force returns -k*x - c*v for x = B.Pos - A.Pos and v = B.Vel - A.Vel.
// The result acts on B; A receives its negation.
func (j Joint) Force(ps []Particle) vecmath.Vec3 {
	a, b := &ps[j.A], &ps[j.B]
	x := b.Pos.Sub(a.Pos)
	v := b.Vel.Sub(a.Vel)
	return x.Scale(-j.Stiffness).Sub(v.Scale(j.Damping))
}

// Apply adds the spring force pair to both endpoints.
func (j Joint) Apply(ps []Particle) {
	f := j.Force(ps)
	ps[j.A].ApplyForce(f.Neg())
	ps[j.B].ApplyForce(f)
}

// Extension returns the current distance between the endpoints minus RestLength.
func (j Joint) Extension(ps []Particle) float64 {
	return ps[j.B].Pos.Sub(ps[j.A].Pos).Magnitude() - j.RestLength
}

func (j Joint) Render(ps []Particle, r Renderer) {
	r.DrawLine(ps[j.A].Pos, ps[j.B].Pos, j.Color)
}
