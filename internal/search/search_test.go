package search_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/lifeloop/internal/life"
	"github.com/san-kum/lifeloop/internal/search"
)

type recordingSink struct {
	frames []search.Frame
	err    error
}

func (r *recordingSink) Render(f search.Frame) error {
	r.frames = append(r.frames, f)
	return r.err
}

func smallConfig() search.Config {
	return search.Config{
		Width:          8,
		Height:         8,
		MaxGenerations: 500,
		MinLoopLength:  0,
		MaxAttempts:    2000,
		Seed:           1,
		Detector:       "index",
	}
}

var _ = Describe("Searcher", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Describe("New", func() {
		DescribeTable("rejects invalid configs",
			func(mutate func(*search.Config)) {
				cfg := smallConfig()
				mutate(&cfg)
				_, err := search.New(cfg, nil)
				Expect(err).To(MatchError(search.ErrInvalidConfig))
			},
			Entry("zero width", func(c *search.Config) { c.Width = 0 }),
			Entry("negative height", func(c *search.Config) { c.Height = -1 }),
			Entry("zero generations", func(c *search.Config) { c.MaxGenerations = 0 }),
			Entry("negative min loop", func(c *search.Config) { c.MinLoopLength = -1 }),
			Entry("negative attempts", func(c *search.Config) { c.MaxAttempts = -3 }),
			Entry("unknown detector", func(c *search.Config) { c.Detector = "bloom" }),
		)
	})

	Describe("Run", func() {
		It("returns a non-empty loop longer than the minimum", func() {
			s, err := search.New(smallConfig(), nil)
			Expect(err).NotTo(HaveOccurred())

			res, err := s.Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.LoopLength).To(BeNumerically(">", 0))
			Expect(res.DetectedAt - res.CycleStart).To(Equal(res.LoopLength))
			Expect(res.Loop).To(HaveLen(res.LoopLength))
			Expect(res.Loop[0].IsEmpty()).To(BeFalse())
			Expect(res.Populations).To(HaveLen(res.DetectedAt))
			Expect(res.Metrics).To(HaveKey("population"))
			Expect(s.Game().Status()).To(Equal(life.CycleFound))
		})

		It("reproduces the initial grid from the result seed", func() {
			s, err := search.New(smallConfig(), nil)
			Expect(err).NotTo(HaveOccurred())
			res, err := s.Run(ctx)
			Expect(err).NotTo(HaveOccurred())

			g := life.New(res.Width, res.Height)
			g.Randomize(life.NewRNG(res.Seed))
			Expect(g.Grid().Equal(res.Initial)).To(BeTrue())

			start, found := g.RunUntilCycle(smallConfig().MaxGenerations)
			Expect(found).To(BeTrue())
			Expect(start).To(Equal(res.CycleStart))
		})

		It("finds the same loop with either detector", func() {
			cfg := smallConfig()
			cfg.MinLoopLength = 1

			cfg.Detector = "scan"
			scan, err := search.New(cfg, nil)
			Expect(err).NotTo(HaveOccurred())
			cfg.Detector = "index"
			index, err := search.New(cfg, nil)
			Expect(err).NotTo(HaveOccurred())

			a, err := scan.Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			b, err := index.Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(a.Attempt).To(Equal(b.Attempt))
			Expect(a.CycleStart).To(Equal(b.CycleStart))
			Expect(a.LoopLength).To(Equal(b.LoopLength))
		})

		It("stops with ErrExhausted when no attempt is accepted", func() {
			cfg := smallConfig()
			cfg.MinLoopLength = 1 << 20
			cfg.MaxAttempts = 5

			s, err := search.New(cfg, nil)
			Expect(err).NotTo(HaveOccurred())

			var outcomes []search.Outcome
			s.AddObserver(search.ObserverFunc(func(a search.Attempt) {
				outcomes = append(outcomes, a.Outcome)
			}))

			_, err = s.Run(ctx)
			Expect(err).To(MatchError(search.ErrExhausted))
			Expect(s.Attempts()).To(Equal(5))
			Expect(outcomes).To(HaveLen(5))
			Expect(outcomes).NotTo(ContainElement(search.Accepted))
		})

		It("returns the context error when canceled", func() {
			s, err := search.New(smallConfig(), nil)
			Expect(err).NotTo(HaveOccurred())

			canceled, cancel := context.WithCancel(ctx)
			cancel()
			_, err = s.Run(canceled)
			Expect(errors.Is(err, context.Canceled)).To(BeTrue())
			Expect(s.Attempts()).To(Equal(0))
		})
	})

	Describe("Attempt", func() {
		It("numbers attempts and derives seeds from the base seed", func() {
			cfg := smallConfig()
			cfg.Seed = 100
			s, err := search.New(cfg, nil)
			Expect(err).NotTo(HaveOccurred())

			for i := 1; i <= 3; i++ {
				a, _, err := s.Attempt(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(a.Number).To(Equal(i))
				Expect(a.Seed).To(Equal(uint64(100 + i)))
			}
		})

		It("classifies an attempt whose cap is too small as exhausted", func() {
			cfg := smallConfig()
			cfg.MaxGenerations = 1
			cfg.Width, cfg.Height = 12, 12
			s, err := search.New(cfg, nil)
			Expect(err).NotTo(HaveOccurred())

			a, res, err := s.Attempt(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(a.Outcome).To(Equal(search.Exhausted))
			Expect(res).To(BeNil())
			Expect(a.Generations).To(Equal(1))
		})
	})

	Describe("Replay", func() {
		var (
			s   *search.Searcher
			res *search.Result
		)

		BeforeEach(func() {
			var err error
			s, err = search.New(smallConfig(), nil)
			Expect(err).NotTo(HaveOccurred())
			res, err = s.Run(ctx)
			Expect(err).NotTo(HaveOccurred())
		})

		It("renders consecutive generations starting at the cycle start", func() {
			sink := &recordingSink{}
			frames := 2*res.LoopLength + 1
			Expect(s.Replay(ctx, res, search.ReplayOptions{Frames: frames}, sink)).To(Succeed())

			Expect(sink.frames).To(HaveLen(frames))
			for i, f := range sink.frames {
				Expect(f.Generation).To(Equal(res.CycleStart + i))
				Expect(f.Phase).To(Equal(i % res.LoopLength))
				Expect(f.Grid.Equal(res.Loop[i%res.LoopLength])).To(BeTrue())
			}
		})

		It("starts from the initial grid when asked", func() {
			sink := &recordingSink{}
			Expect(s.Replay(ctx, res, search.ReplayOptions{FromInitial: true, Frames: 1}, sink)).To(Succeed())
			Expect(sink.frames[0].Generation).To(Equal(0))
			Expect(sink.frames[0].Grid.Equal(res.Initial)).To(BeTrue())
		})

		It("stops on sink errors", func() {
			boom := errors.New("boom")
			sink := &recordingSink{err: boom}
			Expect(s.Replay(ctx, res, search.ReplayOptions{}, sink)).To(MatchError(boom))
			Expect(sink.frames).To(HaveLen(1))
		})

		It("stops when the context is canceled", func() {
			timeout, cancel := context.WithTimeout(ctx, 30*time.Millisecond)
			defer cancel()
			sink := &recordingSink{}
			err := s.Replay(timeout, res, search.ReplayOptions{Delay: 5 * time.Millisecond}, sink)
			Expect(errors.Is(err, context.DeadlineExceeded)).To(BeTrue())
			Expect(sink.frames).NotTo(BeEmpty())
		})
	})
})
