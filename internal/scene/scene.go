// Package scene drives the particle systems: it owns the clock, the bodies
// swimming through the seaweed, the collision pass and the per-frame ordering.
package scene

import (
	"context"
	"io"
	"log/slog"
	"math/rand"

	"github.com/san-kum/seaweed/internal/forces"
	"github.com/san-kum/seaweed/internal/particles"
	"github.com/san-kum/seaweed/internal/vecmath"
)

// Scene is single-threaded. Spawning and controls are only valid between
// calls to Step.
type Scene struct {
	opts  Options
	field forces.Field
	log   *slog.Logger

	rng     *rand.Rand
	clock   forces.Clock
	systems *particles.Collection
	player  *Body
	fish    []*Body

	metrics   []Metric
	observers []Observer
}

func New(opts Options) (*Scene, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	s := &Scene{
		opts:      opts,
		field:     opts.Field,
		log:       opts.Logger,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
	if s.field == nil {
		s.field = forces.None{}
	}
	if s.log == nil {
		s.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scene) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Scene) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Reset rebuilds the initial population from the seed and rewinds the clock.
func (s *Scene) Reset() error {
	s.rng = rand.New(rand.NewSource(s.opts.Seed))
	s.clock.Reset()
	s.systems = particles.NewCollection()

	for i := 0; i < s.opts.Seaweed; i++ {
		origin := vecmath.New(s.opts.Bounds.Min.X+float64(i+1)*s.opts.SeaweedSpacing, s.opts.Bounds.Min.Y, 0)
		l, err := particles.NewLattice(origin, s.opts.Lattice, s.opts.Bounds)
		if err != nil {
			return err
		}
		s.systems.Add(l)
	}

	p := s.opts.Player
	player, err := NewBody(s.opts.Bounds.Center(), p.Radius, p.Mass, p.Color)
	if err != nil {
		return err
	}
	player.Player = true
	s.player = player

	s.fish = s.fish[:0]
	for i := 0; i < s.opts.Fish.Count; i++ {
		f, err := s.newFish()
		if err != nil {
			return err
		}
		s.fish = append(s.fish, f)
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	s.log.Debug("scene reset",
		"seed", s.opts.Seed,
		"systems", s.systems.Len(),
		"particles", s.systems.ParticleCount(),
		"fish", len(s.fish))
	return nil
}

func (s *Scene) newFish() (*Body, error) {
	fp := s.opts.Fish
	b := s.opts.Bounds

	pos := vecmath.New(
		between(s.rng, b.Min.X+fp.Margin, b.Max.X-fp.Margin),
		between(s.rng, b.Min.Y+fp.Margin, b.Min.Y+0.75*b.Height()-fp.Margin),
		0,
	)
	color := particles.Color{R: s.rng.Float64(), G: s.rng.Float64(), B: s.rng.Float64(), A: 1}

	f, err := NewBody(pos, between(s.rng, fp.MinRadius, fp.MaxRadius), between(s.rng, fp.MinMass, fp.MaxMass), color)
	if err != nil {
		return nil, err
	}

	if s.rng.Float64() < fp.OrbitChance {
		f.Orbiting = true
	} else {
		f.Vel = vecmath.New(between(s.rng, fp.MinSpeed, fp.MaxSpeed), between(s.rng, fp.MinSpeed, fp.MaxSpeed), 0)
	}
	return f, nil
}

func between(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// Step advances the scene by one frame: collisions, system update, cleanup,
// body motion, clock, then validation and observers.
func (s *Scene) Step() error {
	dt := s.opts.Dt

	s.collide(s.player, true)
	for _, f := range s.fish {
		s.collide(f, false)
	}

	s.systems.Update(dt)
	if n := s.systems.Cleanup(); n > 0 {
		s.log.Debug("systems culled", "count", n, "frame", s.clock.Frame)
	}

	s.player.Update(dt, s.clock, s.opts.Bounds, s.opts.Drag)
	for _, f := range s.fish {
		f.Update(dt, s.clock, s.opts.Bounds, s.opts.Drag)
	}

	s.clock.Advance(dt)

	if s.opts.ValidateState {
		if err := s.validate(); err != nil {
			s.log.Warn("unstable frame", "err", err)
			return err
		}
	}

	for _, m := range s.metrics {
		m.Observe(s.systems, s.clock.Elapsed)
	}
	for _, o := range s.observers {
		o.OnFrame(s)
	}
	return nil
}

// collide runs one body against every joint of every linked system. The
// player pass also refreshes the environment force of each joint endpoint.
func (s *Scene) collide(b *Body, env bool) {
	for _, sys := range s.systems.Systems() {
		linked, ok := sys.(particles.Linked)
		if !ok {
			continue
		}
		for _, j := range linked.Joints() {
			pa, pb := linked.Particle(j.A), linked.Particle(j.B)

			if env {
				pa.EnvironmentForce = s.field.At(pa.Pos, s.clock)
				pb.EnvironmentForce = s.field.At(pb.Pos, s.clock)
			}

			if b.SegmentHits(pa.Pos, pb.Pos) {
				push := b.Vel.Scale(b.Mass * s.opts.Dt)
				pa.QueueImpulse(push)
				pb.QueueImpulse(push)
				b.Vel.ScaleAssign(s.opts.CollisionDamping)
			}
		}
	}
}

func (s *Scene) validate() error {
	var bad bool
	s.systems.Each(func(p *particles.Particle) {
		if !p.IsValid() {
			bad = true
		}
	})
	if bad {
		return &FrameError{Frame: s.clock.Frame, Time: s.clock.Elapsed, Reason: "invalid particle state (NaN/Inf)"}
	}

	if !s.player.IsValid() {
		return &FrameError{Frame: s.clock.Frame, Time: s.clock.Elapsed, Reason: "invalid player state (NaN/Inf)"}
	}
	for _, f := range s.fish {
		if !f.IsValid() {
			return &FrameError{Frame: s.clock.Frame, Time: s.clock.Elapsed, Reason: "invalid fish state (NaN/Inf)"}
		}
	}
	return nil
}

// SpawnLattice anchors a new seaweed lattice at origin.
func (s *Scene) SpawnLattice(origin vecmath.Vec3) error {
	l, err := particles.NewLattice(origin, s.opts.Lattice, s.opts.Bounds)
	if err != nil {
		return err
	}
	s.systems.Add(l)
	s.log.Debug("lattice spawned", "x", origin.X, "y", origin.Y, "systems", s.systems.Len())
	return nil
}

// SpawnBubbles releases a burst of bubbles at origin.
func (s *Scene) SpawnBubbles(origin vecmath.Vec3) error {
	b, err := particles.NewBurst(origin, s.opts.Bubbles, s.opts.Bounds, s.rng)
	if err != nil {
		return err
	}
	s.systems.Add(b)
	s.log.Debug("bubbles spawned", "x", origin.X, "y", origin.Y, "count", b.Len())
	return nil
}

// Render draws the systems first, then the fish, then the player on top.
func (s *Scene) Render(c Canvas) {
	s.systems.Render(c)
	for _, f := range s.fish {
		c.DrawCircle(f.Pos, f.Radius, f.Color)
	}
	c.DrawCircle(s.player.Pos, s.player.Radius, s.player.Color)
}

// Run steps the scene headless for the given number of frames, applying
// script events as they fall due. A nil script is allowed.
func (s *Scene) Run(ctx context.Context, frames int, script *Script) (*Result, error) {
	result := &Result{
		Metrics: make(map[string]float64),
		History: make(map[string][]float64),
	}
	for _, m := range s.metrics {
		result.History[m.Name()] = make([]float64, 0, frames)
	}

	var err error
	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			err = ctx.Err()
		default:
		}
		if err != nil {
			break
		}

		if script != nil {
			if err = script.ApplyDue(s); err != nil {
				break
			}
		}

		if err = s.Step(); err != nil {
			break
		}

		result.Frames++
		for _, m := range s.metrics {
			result.History[m.Name()] = append(result.History[m.Name()], m.Value())
		}
	}

	result.Time = s.clock.Elapsed
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, err
}

func (s *Scene) Player() *Body                  { return s.player }
func (s *Scene) Fish() []*Body                  { return s.fish }
func (s *Scene) Systems() *particles.Collection { return s.systems }
func (s *Scene) Clock() forces.Clock            { return s.clock }
func (s *Scene) Bounds() particles.Bounds       { return s.opts.Bounds }
func (s *Scene) Options() Options               { return s.opts }
func (s *Scene) Metrics() []Metric              { return s.metrics }
