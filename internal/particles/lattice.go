package particles

import "github.com/san-kum/seaweed/internal/vecmath"

const (
	DefaultGridSize      = 10
	DefaultColumnSpacing = 10.0
	DefaultRowSpacing    = 1.0
	DefaultMass          = 2.0
	DefaultTimer         = 90.0
	DefaultSize          = 1.0
	DefaultStiffness     = 1.8
	DefaultDamping       = 5.0
	DefaultRestLength    = 10.0
	DefaultBuoyancy      = 28.0
)

// LatticeParams configures a spring-mass lattice.
type LatticeParams struct {
	GridSize      int
	ColumnSpacing float64
	RowSpacing    float64
	Mass          float64
	Timer         float64
	Size          float64
	Color         Color
	Stiffness     float64
	Damping       float64
	RestLength    float64
	Buoyancy      vecmath.Vec3
}

func DefaultLatticeParams() LatticeParams {
	return LatticeParams{
		GridSize:      DefaultGridSize,
		ColumnSpacing: DefaultColumnSpacing,
		RowSpacing:    DefaultRowSpacing,
		Mass:          DefaultMass,
		Timer:         DefaultTimer,
		Size:          DefaultSize,
		Color:         Green,
		Stiffness:     DefaultStiffness,
		Damping:       DefaultDamping,
		RestLength:    DefaultRestLength,
		Buoyancy:      vecmath.New(0, DefaultBuoyancy, 0),
	}
}

func (p LatticeParams) Validate() error {
	if p.GridSize < 1 {
		return &ConfigError{Field: "grid size", Value: float64(p.GridSize)}
	}
	if err := requirePositive("mass", p.Mass); err != nil {
		return err
	}
	if err := requirePositive("size", p.Size); err != nil {
		return err
	}
	if err := requireNonNegative("stiffness", p.Stiffness); err != nil {
		return err
	}
	return requireNonNegative("damping", p.Damping)
}

// Lattice is an N x N grid of particles anchored at Origin and joined by
// structural and shear springs. Its particles never expire.
type Lattice struct {
	Base

	params LatticeParams
	joints []Joint
}

// NewLattice lays out the grid and its joints. Particle (i, j) sits at
// origin + (i*ColumnSpacing, j*RowSpacing, 0) and has index i*N + j.
func NewLattice(origin vecmath.Vec3, params LatticeParams, bounds Bounds) (*Lattice, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	n := params.GridSize
	l := &Lattice{
		Base:   Base{Origin: origin, Bounds: bounds, particles: make([]Particle, 0, n*n)},
		params: params,
		joints: make([]Joint, 0, 2*n*(n-1)+2*(n-1)*(n-1)),
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			p, err := New(Params{
				Pos:   origin.Add(vecmath.New(float64(i)*params.ColumnSpacing, float64(j)*params.RowSpacing, 0)),
				Mass:  params.Mass,
				Timer: params.Timer,
				Size:  params.Size,
				Color: params.Color,
			})
			if err != nil {
				return nil, err
			}
			l.Add(p)

			if i > 0 {
				l.link(l.index(i-1, j), l.index(i, j))
			}
			if j > 0 {
				l.link(l.index(i, j-1), l.index(i, j))
			}
			if i > 0 && j > 0 {
				l.link(l.index(i-1, j-1), l.index(i, j))
				l.link(l.index(i, j-1), l.index(i-1, j))
			}
		}
	}

	return l, nil
}

func (l *Lattice) index(i, j int) int { return i*l.params.GridSize + j }

func (l *Lattice) link(a, b int) {
	l.joints = append(l.joints, Joint{
		A:          a,
		B:          b,
		Stiffness:  l.params.Stiffness,
		Damping:    l.params.Damping,
		RestLength: l.params.RestLength,
		Color:      l.params.Color,
	})
}

func (l *Lattice) Params() LatticeParams { return l.params }

func (l *Lattice) Joints() []Joint { return l.joints }

// Update accumulates buoyancy, environment, impulse and spring forces, then
// integrates every particle.
func (l *Lattice) Update(dt float64) {
	l.accumulate(l.params.Buoyancy)
	for _, j := range l.joints {
		j.Apply(l.particles)
	}
	l.Base.Update(dt)
}

func (l *Lattice) Render(r Renderer) {
	l.Base.Render(r)
	for _, j := range l.joints {
		j.Render(l.particles, r)
	}
}

// Cleanup is a no-op: removing a particle would invalidate joint indices.
func (l *Lattice) Cleanup() {}

// Done is always false; a lattice lives as long as the scene.
func (l *Lattice) Done() bool { return false }
