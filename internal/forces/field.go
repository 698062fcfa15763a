// Package forces provides the simulation clock and the environment force
// fields the driver writes into particles between frames.
package forces

import (
	"errors"
	"fmt"
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/san-kum/seaweed/internal/vecmath"
)

var ErrUnknownField = errors.New("forces: unknown environment field")

const (
	KindNone     = "none"
	KindSawtooth = "sawtooth"
	KindPerlin   = "perlin"
)

// Field is an environment force evaluated at a position and time.
type Field interface {
	At(pos vecmath.Vec3, clk Clock) vecmath.Vec3
}

type None struct{}

func (None) At(vecmath.Vec3, Clock) vecmath.Vec3 { return vecmath.Zero }

// Sawtooth pushes along X with a magnitude that ramps with the elapsed
// milliseconds inside each period and a sign that flips every frame.
type Sawtooth struct {
	Period float64
	Gain   float64
}

func (s Sawtooth) At(_ vecmath.Vec3, clk Clock) vecmath.Vec3 {
	if s.Period <= 0 {
		return vecmath.Zero
	}
	ramp := math.Mod(clk.Elapsed, s.Period) * 1000
	sign := 1.0
	if clk.Frame%2 == 0 {
		sign = -1
	}
	return vecmath.New(ramp*sign*s.Gain, 0, 0)
}

// Perlin is a smooth current along X sampled from 2D noise over
// (position, time).
type Perlin struct {
	Strength float64
	Scale    float64
	Speed    float64

	noise *perlin.Perlin
}

func NewPerlin(seed int64, strength, scale, speed float64) *Perlin {
	return &Perlin{
		Strength: strength,
		Scale:    scale,
		Speed:    speed,
		noise:    perlin.NewPerlin(2, 2, 3, seed),
	}
}

func (p *Perlin) At(pos vecmath.Vec3, clk Clock) vecmath.Vec3 {
	n := p.noise.Noise2D(pos.X*p.Scale, clk.Elapsed*p.Speed)
	return vecmath.New(n*p.Strength, 0, 0)
}

// Options collects the parameters of every field kind.
type Options struct {
	Period   float64
	Gain     float64
	Strength float64
	Scale    float64
	Speed    float64
	Seed     int64
}

// New builds the field named kind.
func New(kind string, opts Options) (Field, error) {
	switch kind {
	case KindNone, "":
		return None{}, nil
	case KindSawtooth:
		return Sawtooth{Period: opts.Period, Gain: opts.Gain}, nil
	case KindPerlin:
		return NewPerlin(opts.Seed, opts.Strength, opts.Scale, opts.Speed), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, kind)
	}
}

func Kinds() []string { return []string{KindNone, KindSawtooth, KindPerlin} }
