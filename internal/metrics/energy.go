package metrics

import "github.com/san-kum/seaweed/internal/particles"

// KineticEnergy is the total particle kinetic energy, averaged over frames.
type KineticEnergy struct {
	name    string
	last    float64
	total   float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(systems *particles.Collection, t float64) {
	ke := 0.0
	systems.Each(func(p *particles.Particle) {
		ke += p.KineticEnergy()
	})
	e.last = ke
	e.total += ke
	e.samples++
}

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

// Last is the energy of the most recent frame.
func (e *KineticEnergy) Last() float64 { return e.last }

func (e *KineticEnergy) Reset() {
	e.last = 0
	e.total = 0
	e.samples = 0
}

// MaxSpeed is the highest particle speed seen since the last reset.
type MaxSpeed struct {
	name string
	max  float64
}

func NewMaxSpeed() *MaxSpeed {
	return &MaxSpeed{name: "max_speed"}
}

func (m *MaxSpeed) Name() string { return m.name }

func (m *MaxSpeed) Observe(systems *particles.Collection, t float64) {
	systems.Each(func(p *particles.Particle) {
		if s := p.Vel.Magnitude(); s > m.max {
			m.max = s
		}
	})
}

func (m *MaxSpeed) Value() float64 { return m.max }

func (m *MaxSpeed) Reset() { m.max = 0 }
