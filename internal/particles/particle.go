package particles

import "github.com/san-kum/seaweed/internal/vecmath"

// Params describes a particle at creation.
type Params struct {
	Pos, Vel, Acc vecmath.Vec3
	Mass          float64
	Timer         float64
	Size          float64
	Color         Color
}

// Particle is a point mass integrated every frame under accumulated forces.
type Particle struct {
	Pos, Vel, Acc vecmath.Vec3
	Mass          float64
	Locked        bool
	Timer         float64

	// EnvironmentForce is applied every frame until overwritten by the driver.
	EnvironmentForce vecmath.Vec3

	Size  float64
	Color Color

	impulses []vecmath.Vec3
}

// New validates p and returns the particle it describes. Mass and size must
// be positive.
func New(p Params) (Particle, error) {
	if err := requirePositive("mass", p.Mass); err != nil {
		return Particle{}, err
	}
	if err := requirePositive("size", p.Size); err != nil {
		return Particle{}, err
	}
	return Particle{
		Pos:   p.Pos,
		Vel:   p.Vel,
		Acc:   p.Acc,
		Mass:  p.Mass,
		Timer: p.Timer,
		Size:  p.Size,
		Color: p.Color,
	}, nil
}

func (p *Particle) ApplyForce(f vecmath.Vec3) {
	p.Acc.AddAssign(f.Div(p.Mass))
}

// ApplyForces sums fs and applies the total with a single division by mass.
func (p *Particle) ApplyForces(fs []vecmath.Vec3) {
	var sum vecmath.Vec3
	for _, f := range fs {
		sum.AddAssign(f)
	}
	p.Acc.AddAssign(sum.Div(p.Mass))
}

// QueueImpulse appends an external force to be applied on the next update.
func (p *Particle) QueueImpulse(f vecmath.Vec3) {
	p.impulses = append(p.impulses, f)
}

// PendingImpulses returns the queued forces in arrival order. The slice is
// owned by the particle.
func (p *Particle) PendingImpulses() []vecmath.Vec3 {
	return p.impulses
}

// DrainImpulses applies every queued force once and empties the queue.
func (p *Particle) DrainImpulses() {
	if len(p.impulses) == 0 {
		return
	}
	p.ApplyForces(p.impulses)
	clear(p.impulses)
	p.impulses = p.impulses[:0]
}

func (p *Particle) Expired() bool { return p.Timer <= 0 }

// Update advances the particle by dt: boundary handling, timer countdown,
// then semi-implicit Euler integration unless the particle is locked.
// Touching the floor of b locks the particle permanently.
func (p *Particle) Update(dt float64, b Bounds) {
	if !p.Locked {
		p.constrain(b)
	}

	if p.Timer > 0 {
		p.Timer -= dt
	}

	if p.Locked {
		return
	}
	p.Vel.AddAssign(p.Acc.Scale(dt))
	p.Pos.AddAssign(p.Vel.Scale(dt))
}

func (p *Particle) constrain(b Bounds) {
	bounce(&p.Pos.X, &p.Vel.X, b.Min.X, b.Max.X)
	if bounce(&p.Pos.Y, &p.Vel.Y, b.Min.Y, b.Max.Y) {
		p.Locked = true
	}
	bounce(&p.Pos.Z, &p.Vel.Z, b.Min.Z, b.Max.Z)
}

func (p *Particle) Render(r Renderer) {
	r.DrawPoint(p.Pos, p.Size, p.Color)
}

// KineticEnergy returns 0.5 * m * |v|^2.
func (p *Particle) KineticEnergy() float64 {
	return 0.5 * p.Mass * p.Vel.Dot(p.Vel)
}

// IsValid reports whether the particle's kinematic state is finite.
func (p *Particle) IsValid() bool {
	return p.Pos.IsFinite() && p.Vel.IsFinite() && p.Acc.IsFinite()
}
