package particles

import (
	"math"
	"math/rand"

	"github.com/san-kum/seaweed/internal/vecmath"
)

// BurstParams configures a spray of short-lived buoyant particles.
type BurstParams struct {
	Count    int
	Spread   float64
	MinSpeed float64
	MaxSpeed float64
	MinTimer float64
	MaxTimer float64
	Mass     float64
	Size     float64
	Color    Color
	Buoyancy vecmath.Vec3
}

func DefaultBurstParams() BurstParams {
	return BurstParams{
		Count:    24,
		Spread:   math.Pi / 4,
		MinSpeed: 50,
		MaxSpeed: 150,
		MinTimer: 1,
		MaxTimer: 3,
		Mass:     0.5,
		Size:     2,
		Color:    Cyan,
		Buoyancy: vecmath.New(0, 20, 0),
	}
}

func (p BurstParams) Validate() error {
	if p.Count < 1 {
		return &ConfigError{Field: "count", Value: float64(p.Count)}
	}
	if err := requirePositive("mass", p.Mass); err != nil {
		return err
	}
	if err := requirePositive("size", p.Size); err != nil {
		return err
	}
	if p.MaxSpeed < p.MinSpeed {
		return &ConfigError{Field: "max speed", Value: p.MaxSpeed}
	}
	if p.MaxTimer < p.MinTimer {
		return &ConfigError{Field: "max timer", Value: p.MaxTimer}
	}
	return nil
}

// Burst is a cloud of bubbles fanned upward from Origin. Each bubble expires
// when its timer runs out and the system is done once all have expired.
type Burst struct {
	Base

	buoyancy vecmath.Vec3
}

// NewBurst emits params.Count particles whose upward velocity is tilted by
// random angles in [-Spread, Spread] about the X and Z axes.
func NewBurst(origin vecmath.Vec3, params BurstParams, bounds Bounds, rng *rand.Rand) (*Burst, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	b := &Burst{
		Base:     Base{Origin: origin, Bounds: bounds, particles: make([]Particle, 0, params.Count)},
		buoyancy: params.Buoyancy,
	}

	for i := 0; i < params.Count; i++ {
		vel := vecmath.UnitY.
			Rotate(vecmath.UnitX, uniform(rng, -params.Spread, params.Spread)).
			Rotate(vecmath.UnitZ, uniform(rng, -params.Spread, params.Spread)).
			Scale(uniform(rng, params.MinSpeed, params.MaxSpeed))

		p, err := New(Params{
			Pos:   origin,
			Vel:   vel,
			Mass:  params.Mass,
			Timer: uniform(rng, params.MinTimer, params.MaxTimer),
			Size:  params.Size,
			Color: params.Color,
		})
		if err != nil {
			return nil, err
		}
		b.Add(p)
	}

	return b, nil
}

func (b *Burst) Update(dt float64) {
	b.accumulate(b.buoyancy)
	b.Base.Update(dt)
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
