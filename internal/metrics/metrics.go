// Package metrics provides per-frame observers that summarize the particle
// systems of a scene.
package metrics

import "github.com/san-kum/seaweed/internal/particles"

type Metric interface {
	Name() string
	Observe(systems *particles.Collection, t float64)
	Value() float64
	Reset()
}

// Standard returns the metrics reported by a headless run.
func Standard() []Metric {
	return []Metric{
		NewKineticEnergy(),
		NewParticleCount(),
		NewLockedFraction(),
		NewMaxSpeed(),
		NewStrain(),
		NewStability(1e4),
	}
}
