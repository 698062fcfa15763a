package particles

import (
	"math"
	"testing"

	"github.com/san-kum/seaweed/internal/vecmath"
)

func twoParticles(t *testing.T) []Particle {
	t.Helper()
	return []Particle{
		mustParticle(t, Params{Pos: vecmath.New(0, 0, 0), Vel: vecmath.New(1, 0, 0), Mass: 2}),
		mustParticle(t, Params{Pos: vecmath.New(3, 4, 0), Vel: vecmath.New(0, 1, 0), Mass: 1}),
	}
}

func TestJoint_Force(t *testing.T) {
	ps := twoParticles(t)
	j := Joint{A: 0, B: 1, Stiffness: 2, Damping: 0.5}

	// x = (3, 4, 0), v = (-1, 1, 0)
	want := vecmath.New(-5.5, -8.5, 0)
	if got := j.Force(ps); !got.ApproxEqual(want, tol) {
		t.Errorf("Force = %v, want %v", got, want)
	}
}

func TestJoint_AntiSymmetric(t *testing.T) {
	ps := twoParticles(t)
	tests := []struct {
		name string
		k, c float64
	}{
		{"spring only", 1.8, 0},
		{"damper only", 0, 5},
		{"lattice defaults", DefaultStiffness, DefaultDamping},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forward := Joint{A: 0, B: 1, Stiffness: tt.k, Damping: tt.c}.Force(ps)
			backward := Joint{A: 1, B: 0, Stiffness: tt.k, Damping: tt.c}.Force(ps)
			if !forward.Neg().ApproxEqual(backward, tol) {
				t.Errorf("forward %v, backward %v", forward, backward)
			}
		})
	}
}

func TestJoint_IgnoresRestLength(t *testing.T) {
	ps := twoParticles(t)
	a := Joint{A: 0, B: 1, Stiffness: 1, Damping: 1, RestLength: 0}.Force(ps)
	b := Joint{A: 0, B: 1, Stiffness: 1, Damping: 1, RestLength: 5}.Force(ps)
	if a != b {
		t.Errorf("rest length changed the force: %v vs %v", a, b)
	}
}

func TestJoint_ApplyConservesMomentum(t *testing.T) {
	ps := twoParticles(t)
	j := Joint{A: 0, B: 1, Stiffness: 3, Damping: 0.7}
	j.Apply(ps)

	net := ps[0].Acc.Scale(ps[0].Mass).Add(ps[1].Acc.Scale(ps[1].Mass))
	if !net.ApproxEqual(vecmath.Zero, tol) {
		t.Errorf("net force on the pair = %v, want zero", net)
	}

	// B is pulled back towards A.
	if ps[1].Acc.Dot(ps[1].Pos.Sub(ps[0].Pos)) >= 0 {
		t.Errorf("spring pushes B away from A: acc %v", ps[1].Acc)
	}
}

func TestJoint_Extension(t *testing.T) {
	ps := twoParticles(t)
	j := Joint{A: 0, B: 1, RestLength: 2}
	if got := j.Extension(ps); math.Abs(got-3) > tol {
		t.Errorf("Extension = %v, want 3", got)
	}
}
