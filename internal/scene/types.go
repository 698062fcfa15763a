package scene

import (
	"fmt"
	"log/slog"

	"github.com/san-kum/seaweed/internal/forces"
	"github.com/san-kum/seaweed/internal/particles"
	"github.com/san-kum/seaweed/internal/vecmath"
)

const (
	DefaultDt               = 0.025
	DefaultDrag             = 0.999
	DefaultCollisionDamping = 0.9999
	DefaultSeaweed          = 6
	DefaultSeaweedSpacing   = 100.0
)

// Metric accumulates a scalar over the frames of a run.
type Metric interface {
	Name() string
	Observe(systems *particles.Collection, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every completed frame.
type Observer interface {
	OnFrame(s *Scene)
}

// Canvas is a render target that can also draw bodies.
type Canvas interface {
	particles.Renderer
	DrawCircle(center vecmath.Vec3, radius float64, c particles.Color)
}

type BodyParams struct {
	Radius float64
	Mass   float64
	Color  particles.Color
}

// FishParams describes the randomly generated fish school. Fish spawn inside
// Margin of the side walls and in the lower three quarters of the domain.
type FishParams struct {
	Count       int
	MinRadius   float64
	MaxRadius   float64
	MinMass     float64
	MaxMass     float64
	MinSpeed    float64
	MaxSpeed    float64
	OrbitChance float64
	Margin      float64
}

type Options struct {
	Dt               float64
	Bounds           particles.Bounds
	Drag             float64
	CollisionDamping float64

	// Field drives the environment force the player pass writes into
	// every joint endpoint. Nil means no current.
	Field forces.Field

	Seaweed        int
	SeaweedSpacing float64
	Lattice        particles.LatticeParams
	Bubbles        particles.BurstParams
	Player         BodyParams
	Fish           FishParams

	Seed          int64
	ValidateState bool
	Logger        *slog.Logger
}

func DefaultOptions() Options {
	return Options{
		Dt:               DefaultDt,
		Bounds:           particles.DefaultBounds(),
		Drag:             DefaultDrag,
		CollisionDamping: DefaultCollisionDamping,
		Field:            forces.Sawtooth{Period: 4, Gain: 0.025},
		Seaweed:          DefaultSeaweed,
		SeaweedSpacing:   DefaultSeaweedSpacing,
		Lattice:          particles.DefaultLatticeParams(),
		Bubbles:          particles.DefaultBurstParams(),
		Player:           BodyParams{Radius: 40, Mass: 20, Color: particles.Red},
		Fish: FishParams{
			Count:       7,
			MinRadius:   10,
			MaxRadius:   30,
			MinMass:     10,
			MaxMass:     30,
			MinSpeed:    150,
			MaxSpeed:    250,
			OrbitChance: 0.5,
			Margin:      50,
		},
		Seed: 1,
	}
}

func (o Options) Validate() error {
	switch {
	case !(o.Dt > 0):
		return fmt.Errorf("%w: dt must be positive, got %v", ErrInvalidOptions, o.Dt)
	case !(o.Bounds.Width() > 0) || !(o.Bounds.Height() > 0):
		return fmt.Errorf("%w: bounds must have positive width and height", ErrInvalidOptions)
	case !(o.Drag > 0) || o.Drag > 1:
		return fmt.Errorf("%w: drag must be in (0, 1], got %v", ErrInvalidOptions, o.Drag)
	case !(o.CollisionDamping > 0) || o.CollisionDamping > 1:
		return fmt.Errorf("%w: collision damping must be in (0, 1], got %v", ErrInvalidOptions, o.CollisionDamping)
	case o.Seaweed < 0:
		return fmt.Errorf("%w: seaweed count must not be negative", ErrInvalidOptions)
	case o.Fish.Count < 0:
		return fmt.Errorf("%w: fish count must not be negative", ErrInvalidOptions)
	case o.Fish.MinRadius > o.Fish.MaxRadius || o.Fish.MinMass > o.Fish.MaxMass || o.Fish.MinSpeed > o.Fish.MaxSpeed:
		return fmt.Errorf("%w: fish ranges must have min <= max", ErrInvalidOptions)
	}
	if err := o.Lattice.Validate(); err != nil {
		return fmt.Errorf("%w: lattice: %w", ErrInvalidOptions, err)
	}
	if err := o.Bubbles.Validate(); err != nil {
		return fmt.Errorf("%w: bubbles: %w", ErrInvalidOptions, err)
	}
	return nil
}

// Result summarizes a headless run.
type Result struct {
	Frames  int
	Time    float64
	Metrics map[string]float64
	History map[string][]float64
}
