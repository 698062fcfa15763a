package metrics

import (
	"math"

	"github.com/san-kum/seaweed/internal/particles"
)

// Strain is the mean absolute spring extension relative to rest length
// across every linked system, in the latest frame.
type Strain struct {
	name  string
	value float64
}

func NewStrain() *Strain {
	return &Strain{name: "strain"}
}

func (s *Strain) Name() string { return s.name }

func (s *Strain) Observe(systems *particles.Collection, t float64) {
	sum, n := 0.0, 0
	for _, sys := range systems.Systems() {
		linked, ok := sys.(particles.Linked)
		if !ok {
			continue
		}
		pop, ok := sys.(particles.Populated)
		if !ok {
			continue
		}
		ps := pop.Particles()
		for _, j := range linked.Joints() {
			sum += math.Abs(j.Extension(ps))
			n++
		}
	}
	if n == 0 {
		s.value = 0
		return
	}
	s.value = sum / float64(n)
}

func (s *Strain) Value() float64 { return s.value }

func (s *Strain) Reset() { s.value = 0 }

// Stability is the fraction of frames in which every particle was finite
// and slower than the threshold.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(systems *particles.Collection, t float64) {
	s.samples++
	bad := false
	systems.Each(func(p *particles.Particle) {
		if !p.IsValid() || p.Vel.Magnitude() > s.threshold {
			bad = true
		}
	})
	if bad {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
