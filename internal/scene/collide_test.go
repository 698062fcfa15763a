package scene

import (
	"math"
	"testing"

	"github.com/san-kum/seaweed/internal/forces"
	"github.com/san-kum/seaweed/internal/particles"
	"github.com/san-kum/seaweed/internal/vecmath"
)

// A 2x2 lattice at (100, 0) with 100 spacing: particles 0 (100,0), 1 (100,100),
// 2 (200,0), 3 (200,100); joints in order 0-1, 0-2, 1-3, 2-3, 0-3, 2-1.
func collisionScene(t *testing.T) *Scene {
	t.Helper()
	opts := DefaultOptions()
	opts.Seaweed = 1
	opts.Fish.Count = 0
	opts.Field = forces.None{}
	opts.Lattice.GridSize = 2
	opts.Lattice.ColumnSpacing = 100
	opts.Lattice.RowSpacing = 100
	opts.Player.Radius = 10

	s, err := New(opts)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestCollide_Impulses(t *testing.T) {
	const (
		speed = 50.0
		mass  = 20.0
	)
	d := DefaultCollisionDamping
	push := mass * DefaultDt

	tests := []struct {
		name     string
		pos      vecmath.Vec3
		want     [4][]float64 // X of every impulse queued per particle
		wantVelX float64
	}{
		{
			name:     "one joint",
			pos:      vecmath.New(100, 50, 0),
			want:     [4][]float64{{speed * push}, {speed * push}, nil, nil},
			wantVelX: speed * d,
		},
		{
			name: "three joints share an endpoint",
			pos:  vecmath.New(100, 0, 0),
			want: [4][]float64{
				{speed * push, speed * d * push, speed * d * d * push},
				{speed * push},
				{speed * d * push},
				{speed * d * d * push},
			},
			wantVelX: speed * d * d * d,
		},
		{
			name:     "miss",
			pos:      vecmath.New(150, 25, 0),
			want:     [4][]float64{nil, nil, nil, nil},
			wantVelX: speed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := collisionScene(t)
			s.player.Mass = mass
			s.player.Pos = tt.pos
			s.player.Vel = vecmath.New(speed, 0, 0)

			s.collide(s.player, true)

			l := s.systems.Systems()[0].(*particles.Lattice)
			for i, want := range tt.want {
				got := l.Particle(i).PendingImpulses()
				if len(got) != len(want) {
					t.Fatalf("particle %d: %d impulses queued, want %d", i, len(got), len(want))
				}
				for k, x := range want {
					if math.Abs(got[k].X-x) > 1e-9 || got[k].Y != 0 || got[k].Z != 0 {
						t.Errorf("particle %d impulse %d = %v, want (%v, 0, 0)", i, k, got[k], x)
					}
				}
			}

			if math.Abs(s.player.Vel.X-tt.wantVelX) > 1e-9 {
				t.Errorf("player Vel.X = %v, want %v", s.player.Vel.X, tt.wantVelX)
			}
		})
	}
}
