package particles

import "github.com/san-kum/seaweed/internal/vecmath"

// System is a particle system driven once per frame by the orchestrator.
// Concrete systems build their topology in their constructor.
type System interface {
	// Update computes forces and integrates every particle by dt seconds.
	Update(dt float64)

	// Render draws the current state. It must not mutate the system.
	Render(r Renderer)

	// Cleanup removes expired particles where the system allows it.
	Cleanup()

	// Done reports whether the system can be discarded.
	Done() bool
}

// Populated is implemented by systems that expose their particles for
// inspection.
type Populated interface {
	Particles() []Particle
}

// Linked is implemented by systems whose particles are joined by springs.
// The collision driver uses it to reach joint endpoints.
type Linked interface {
	System
	Joints() []Joint
	Particle(i int) *Particle
}

// Base owns an ordered set of particles inside a bounded domain and provides
// the default System behaviour. Variants embed it and override what they need.
type Base struct {
	Origin vecmath.Vec3
	Bounds Bounds

	particles []Particle
}

func NewBase(origin vecmath.Vec3, bounds Bounds) *Base {
	return &Base{Origin: origin, Bounds: bounds}
}

func (b *Base) Add(p Particle) int {
	b.particles = append(b.particles, p)
	return len(b.particles) - 1
}

// Particles returns the live particle slice. It is invalidated by Cleanup.
func (b *Base) Particles() []Particle { return b.particles }

func (b *Base) Particle(i int) *Particle { return &b.particles[i] }

func (b *Base) Len() int { return len(b.particles) }

// Update integrates every particle without computing forces.
func (b *Base) Update(dt float64) {
	for i := range b.particles {
		b.particles[i].Update(dt, b.Bounds)
	}
}

func (b *Base) Render(r Renderer) {
	for i := range b.particles {
		b.particles[i].Render(r)
	}
}

// Cleanup drops particles whose timer has run out, keeping survivors in order.
func (b *Base) Cleanup() {
	n := 0
	for i := range b.particles {
		if !b.particles[i].Expired() {
			b.particles[n] = b.particles[i]
			n++
		}
	}
	clear(b.particles[n:])
	b.particles = b.particles[:n]
}

func (b *Base) Done() bool { return len(b.particles) == 0 }

// accumulate resets accelerations and applies the standing and queued
// external forces shared by every force-driven variant.
func (b *Base) accumulate(buoyancy vecmath.Vec3) {
	for i := range b.particles {
		p := &b.particles[i]
		p.Acc = vecmath.Zero
		p.ApplyForce(buoyancy)
		p.ApplyForce(p.EnvironmentForce)
	}
	for i := range b.particles {
		b.particles[i].DrainImpulses()
	}
}
