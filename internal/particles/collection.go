package particles

// UpdateSystems advances every system by dt in order.
func UpdateSystems(systems []System, dt float64) {
	for _, s := range systems {
		s.Update(dt)
	}
}

// CleanupSystems runs Cleanup on every system, then drops the systems that
// report Done. Survivors keep their relative order. The returned slice
// reuses the input's backing array.
func CleanupSystems(systems []System) []System {
	for _, s := range systems {
		s.Cleanup()
	}

	n := 0
	for _, s := range systems {
		if !s.Done() {
			systems[n] = s
			n++
		}
	}
	clear(systems[n:])
	return systems[:n]
}

// Collection owns the ordered set of particle systems in a scene.
type Collection struct {
	systems []System
}

func NewCollection(systems ...System) *Collection {
	return &Collection{systems: append([]System(nil), systems...)}
}

// Add appends s. It must only be called between frames.
func (c *Collection) Add(s System) {
	c.systems = append(c.systems, s)
}

func (c *Collection) Update(dt float64) { UpdateSystems(c.systems, dt) }

// Cleanup compacts the collection and returns how many systems were removed.
func (c *Collection) Cleanup() int {
	before := len(c.systems)
	c.systems = CleanupSystems(c.systems)
	return before - len(c.systems)
}

func (c *Collection) Render(r Renderer) {
	for _, s := range c.systems {
		s.Render(r)
	}
}

func (c *Collection) Systems() []System { return c.systems }

func (c *Collection) Len() int { return len(c.systems) }

// Each calls fn for every particle of every system that exposes its particles.
func (c *Collection) Each(fn func(p *Particle)) {
	for _, s := range c.systems {
		pop, ok := s.(Populated)
		if !ok {
			continue
		}
		ps := pop.Particles()
		for i := range ps {
			fn(&ps[i])
		}
	}
}

func (c *Collection) ParticleCount() int {
	n := 0
	c.Each(func(*Particle) { n++ })
	return n
}
