package scene_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/seaweed/internal/forces"
	"github.com/san-kum/seaweed/internal/particles"
	"github.com/san-kum/seaweed/internal/scene"
	"github.com/san-kum/seaweed/internal/vecmath"
)

type frameCounter struct{ n int }

func (f *frameCounter) Name() string                           { return "frames" }
func (f *frameCounter) Observe(*particles.Collection, float64) { f.n++ }
func (f *frameCounter) Value() float64                         { return float64(f.n) }
func (f *frameCounter) Reset()                                 { f.n = 0 }

type frameRecorder struct{ frames []uint64 }

func (r *frameRecorder) OnFrame(s *scene.Scene) { r.frames = append(r.frames, s.Clock().Frame) }

type countingCanvas struct{ points, lines, circles int }

func (c *countingCanvas) DrawPoint(vecmath.Vec3, float64, particles.Color)     { c.points++ }
func (c *countingCanvas) DrawLine(vecmath.Vec3, vecmath.Vec3, particles.Color) { c.lines++ }
func (c *countingCanvas) DrawCircle(vecmath.Vec3, float64, particles.Color)    { c.circles++ }

func mustScene(opts scene.Options) *scene.Scene {
	s, err := scene.New(opts)
	Expect(err).NotTo(HaveOccurred())
	return s
}

func lattice(s *scene.Scene, i int) *particles.Lattice {
	l, ok := s.Systems().Systems()[i].(*particles.Lattice)
	Expect(ok).To(BeTrue())
	return l
}

func sumVelX(l *particles.Lattice) float64 {
	sum := 0.0
	for _, p := range l.Particles() {
		sum += p.Vel.X
	}
	return sum
}

var _ = Describe("Scene", func() {
	var opts scene.Options

	BeforeEach(func() {
		opts = scene.DefaultOptions()
	})

	Describe("New", func() {
		It("builds the default reef", func() {
			s := mustScene(opts)

			Expect(s.Systems().Len()).To(Equal(6))
			Expect(s.Systems().ParticleCount()).To(Equal(600))
			Expect(s.Fish()).To(HaveLen(7))
			Expect(s.Player().Player).To(BeTrue())
			Expect(s.Player().Pos).To(Equal(vecmath.New(400, 400, 0)))
			Expect(s.Player().Radius).To(Equal(40.0))
			Expect(s.Player().Mass).To(Equal(20.0))
		})

		It("anchors the lattices along the floor", func() {
			s := mustScene(opts)
			for i := 0; i < 6; i++ {
				Expect(lattice(s, i).Origin).To(Equal(vecmath.New(float64(i+1)*100, 0, 0)))
			}
		})

		It("draws fish from the configured ranges", func() {
			s := mustScene(opts)
			for _, f := range s.Fish() {
				Expect(f.Pos.X).To(BeNumerically(">=", 50))
				Expect(f.Pos.X).To(BeNumerically("<=", 750))
				Expect(f.Pos.Y).To(BeNumerically(">=", 50))
				Expect(f.Pos.Y).To(BeNumerically("<=", 550))
				Expect(f.Radius).To(BeNumerically(">=", 10))
				Expect(f.Radius).To(BeNumerically("<=", 30))
				Expect(f.Mass).To(BeNumerically(">=", 10))
				Expect(f.Mass).To(BeNumerically("<=", 30))
				Expect(f.Player).To(BeFalse())
				if !f.Orbiting {
					Expect(f.Vel.X).To(BeNumerically(">=", 150))
					Expect(f.Vel.Y).To(BeNumerically("<=", 250))
				}
			}
		})

		It("rejects invalid options", func() {
			opts.Dt = 0
			_, err := scene.New(opts)
			Expect(errors.Is(err, scene.ErrInvalidOptions)).To(BeTrue())

			opts = scene.DefaultOptions()
			opts.Lattice.GridSize = 0
			_, err = scene.New(opts)
			Expect(errors.Is(err, scene.ErrInvalidOptions)).To(BeTrue())
			Expect(errors.Is(err, particles.ErrInvalidConfig)).To(BeTrue())

			opts = scene.DefaultOptions()
			opts.Player.Radius = -1
			_, err = scene.New(opts)
			Expect(errors.Is(err, scene.ErrInvalidBody)).To(BeTrue())
		})

		It("is deterministic for a seed", func() {
			a, b := mustScene(opts), mustScene(opts)
			for i := 0; i < 50; i++ {
				Expect(a.Step()).To(Succeed())
				Expect(b.Step()).To(Succeed())
			}
			for i := range a.Fish() {
				Expect(a.Fish()[i].Pos).To(Equal(b.Fish()[i].Pos))
			}
			Expect(a.Player().Pos).To(Equal(b.Player().Pos))
		})

		It("rebuilds the same population on Reset", func() {
			s := mustScene(opts)
			start := *s.Fish()[0]

			Expect(s.SpawnLattice(vecmath.New(300, 0, 0))).To(Succeed())
			for i := 0; i < 10; i++ {
				Expect(s.Step()).To(Succeed())
			}
			Expect(s.Reset()).To(Succeed())

			Expect(s.Systems().Len()).To(Equal(6))
			Expect(s.Clock()).To(Equal(forces.Clock{}))
			Expect(*s.Fish()[0]).To(Equal(start))
		})
	})

	Describe("Step", func() {
		It("advances the clock by one frame", func() {
			s := mustScene(opts)
			Expect(s.Step()).To(Succeed())
			Expect(s.Clock().Frame).To(Equal(uint64(1)))
			Expect(s.Clock().Elapsed).To(BeNumerically("~", 0.025, 1e-12))
		})

		It("leaves no impulse pending after the update pass", func() {
			s := mustScene(opts)
			s.Player().Pos = vecmath.New(140, 5, 0)
			s.Player().Vel = vecmath.New(50, 0, 0)

			Expect(s.Step()).To(Succeed())
			s.Systems().Each(func(p *particles.Particle) {
				Expect(p.PendingImpulses()).To(BeEmpty())
			})
		})

		It("writes the environment current from the player pass", func() {
			s := mustScene(opts)
			Expect(s.Step()).To(Succeed())
			Expect(s.Step()).To(Succeed())

			// second frame: clock at frame 1, 25ms into the period
			p := lattice(s, 0).Particle(0)
			Expect(p.EnvironmentForce.X).To(BeNumerically("~", 0.625, 1e-9))
			Expect(p.EnvironmentForce.Y).To(Equal(0.0))
		})

		It("pushes seaweed the player swims through", func() {
			opts.Seaweed = 1
			opts.Fish.Count = 0
			opts.Field = forces.None{}

			still := mustScene(opts)
			still.Player().Pos = vecmath.New(140, 5, 0)

			moving := mustScene(opts)
			moving.Player().Pos = vecmath.New(140, 5, 0)
			moving.Player().Vel = vecmath.New(50, 0, 0)

			Expect(still.Step()).To(Succeed())
			Expect(moving.Step()).To(Succeed())

			Expect(sumVelX(lattice(moving, 0))).To(BeNumerically(">", sumVelX(lattice(still, 0))))
			Expect(moving.Player().Vel.X).To(BeNumerically("<", 50*scene.DefaultDrag))
		})

		It("notifies observers after each frame", func() {
			s := mustScene(opts)
			rec := &frameRecorder{}
			s.AddObserver(rec)

			for i := 0; i < 3; i++ {
				Expect(s.Step()).To(Succeed())
			}
			Expect(rec.frames).To(Equal([]uint64{1, 2, 3}))
		})
	})

	Describe("spawning", func() {
		It("adds a lattice at a point", func() {
			s := mustScene(opts)
			Expect(s.SpawnLattice(vecmath.New(300, 200, 0))).To(Succeed())
			Expect(s.Systems().Len()).To(Equal(7))
			Expect(s.Systems().ParticleCount()).To(Equal(700))
			Expect(lattice(s, 6).Origin).To(Equal(vecmath.New(300, 200, 0)))
		})

		It("culls a bubble burst once every bubble has expired", func() {
			opts.Seaweed = 0
			opts.Fish.Count = 0
			s := mustScene(opts)

			Expect(s.SpawnBubbles(vecmath.New(400, 400, 0))).To(Succeed())
			Expect(s.Systems().Len()).To(Equal(1))
			Expect(s.Systems().ParticleCount()).To(Equal(24))

			for i := 0; i < 130; i++ {
				Expect(s.Step()).To(Succeed())
			}
			Expect(s.Systems().Len()).To(Equal(0))
		})
	})

	Describe("strict validation", func() {
		poison := func(s *scene.Scene) {
			linked, ok := s.Systems().Systems()[0].(particles.Linked)
			Expect(ok).To(BeTrue())
			linked.Particle(5).Vel = vecmath.New(math.NaN(), 0, 0)
		}

		It("reports non-finite state as a FrameError", func() {
			opts.ValidateState = true
			s := mustScene(opts)
			poison(s)

			err := s.Step()
			Expect(errors.Is(err, scene.ErrUnstable)).To(BeTrue())

			var fe *scene.FrameError
			Expect(errors.As(err, &fe)).To(BeTrue())
			Expect(fe.Frame).To(Equal(uint64(1)))
		})

		It("stays silent when disabled", func() {
			s := mustScene(opts)
			poison(s)
			Expect(s.Step()).To(Succeed())
		})
	})

	Describe("Run", func() {
		It("steps the requested frames and records history", func() {
			s := mustScene(opts)
			s.AddMetric(&frameCounter{})

			res, err := s.Run(context.Background(), 40, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Frames).To(Equal(40))
			Expect(res.Time).To(BeNumerically("~", 1.0, 1e-9))
			Expect(res.History["frames"]).To(HaveLen(40))
			Expect(res.Metrics["frames"]).To(Equal(40.0))
		})

		It("stops when the context is cancelled", func() {
			s := mustScene(opts)
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			res, err := s.Run(ctx, 10, nil)
			Expect(errors.Is(err, context.Canceled)).To(BeTrue())
			Expect(res.Frames).To(Equal(0))
		})

		It("applies script events as they fall due", func() {
			opts.Fish.Count = 0
			s := mustScene(opts)
			script, err := scene.ParseScript([]byte(`
events:
  - at: 0
    action: lattice
    x: 700
  - at: 0.5
    action: thrust
    x: 10
`))
			Expect(err).NotTo(HaveOccurred())

			_, err = s.Run(context.Background(), 40, script)
			Expect(err).NotTo(HaveOccurred())
			Expect(script.Pending()).To(Equal(0))
			Expect(s.Systems().Len()).To(Equal(7))
			Expect(s.Player().Vel.X).To(BeNumerically(">", 0))
		})

		It("stops at the first unstable frame in strict mode", func() {
			opts.ValidateState = true
			s := mustScene(opts)
			linked := s.Systems().Systems()[0].(particles.Linked)
			linked.Particle(5).Vel = vecmath.New(math.Inf(1), 0, 0)

			res, err := s.Run(context.Background(), 10, nil)
			Expect(errors.Is(err, scene.ErrUnstable)).To(BeTrue())
			Expect(res.Frames).To(Equal(0))
		})
	})

	Describe("Render", func() {
		It("draws every particle, joint and body", func() {
			s := mustScene(opts)
			c := &countingCanvas{}
			s.Render(c)

			Expect(c.points).To(Equal(600))
			Expect(c.lines).To(Equal(6 * 342))
			Expect(c.circles).To(Equal(8))
		})
	})
})
