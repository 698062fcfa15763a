package metrics

import "github.com/san-kum/seaweed/internal/particles"

// ParticleCount is the number of live particles in the latest frame.
type ParticleCount struct {
	name  string
	count int
}

func NewParticleCount() *ParticleCount {
	return &ParticleCount{name: "particles"}
}

func (c *ParticleCount) Name() string { return c.name }

func (c *ParticleCount) Observe(systems *particles.Collection, t float64) {
	c.count = systems.ParticleCount()
}

func (c *ParticleCount) Value() float64 { return float64(c.count) }

func (c *ParticleCount) Reset() { c.count = 0 }

// LockedFraction is the share of live particles pinned to the floor in the
// latest frame.
type LockedFraction struct {
	name   string
	locked int
	total  int
}

func NewLockedFraction() *LockedFraction {
	return &LockedFraction{name: "locked_fraction"}
}

func (l *LockedFraction) Name() string { return l.name }

func (l *LockedFraction) Observe(systems *particles.Collection, t float64) {
	l.locked, l.total = 0, 0
	systems.Each(func(p *particles.Particle) {
		l.total++
		if p.Locked {
			l.locked++
		}
	})
}

func (l *LockedFraction) Value() float64 {
	if l.total == 0 {
		return 0
	}
	return float64(l.locked) / float64(l.total)
}

func (l *LockedFraction) Reset() {
	l.locked = 0
	l.total = 0
}
