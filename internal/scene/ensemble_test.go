package scene_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/seaweed/internal/particles"
	"github.com/san-kum/seaweed/internal/scene"
)

type velocitySum struct{ v float64 }

func (m *velocitySum) Name() string   { return "vel_sum" }
func (m *velocitySum) Value() float64 { return m.v }
func (m *velocitySum) Reset()         { m.v = 0 }

func (m *velocitySum) Observe(c *particles.Collection, _ float64) {
	m.v = 0
	c.Each(func(p *particles.Particle) { m.v += p.Vel.X + p.Vel.Y })
}

var _ = Describe("Ensemble", func() {
	build := func(seed int64) (scene.Options, error) {
		opts := scene.DefaultOptions()
		opts.Fish.Count = 3
		opts.Seed = seed
		return opts, nil
	}
	newMetrics := func() []scene.Metric {
		return []scene.Metric{&frameCounter{}, &velocitySum{}}
	}

	It("runs one scene per seed", func() {
		e := scene.NewEnsemble(build, newMetrics, 3, 10)
		results, err := e.Run(context.Background(), 20)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(3))
		for _, r := range results {
			Expect(r.Frames).To(Equal(20))
			Expect(r.Metrics["frames"]).To(Equal(20.0))
		}
		Expect(e.Seed(2)).To(Equal(int64(12)))
	})

	It("matches a single run with the same seed", func() {
		results, err := scene.NewEnsemble(build, newMetrics, 2, 5).Run(context.Background(), 30)
		Expect(err).NotTo(HaveOccurred())

		opts, _ := build(6)
		s := mustScene(opts)
		for _, m := range newMetrics() {
			s.AddMetric(m)
		}
		single, err := s.Run(context.Background(), 30, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(results[1].Metrics["vel_sum"]).To(Equal(single.Metrics["vel_sum"]))
	})

	It("reports the failing seed", func() {
		boom := errors.New("boom")
		failing := func(seed int64) (scene.Options, error) {
			if seed == 2 {
				return scene.Options{}, boom
			}
			return build(seed)
		}

		_, err := scene.NewEnsemble(failing, nil, 3, 1).Run(context.Background(), 5)
		Expect(errors.Is(err, boom)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("seed 2"))
	})
})
