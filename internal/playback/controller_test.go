package playback_test

import (
	"bytes"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/algoviz/internal/algorithms"
	"github.com/san-kum/algoviz/internal/playback"
	"github.com/san-kum/algoviz/internal/step"
	"github.com/san-kum/algoviz/internal/trace"
)

type fakeTicker struct {
	c       chan time.Time
	d       time.Duration
	stopped atomic.Bool
}

func (f *fakeTicker) C() <-chan time.Time { return f.c }
func (f *fakeTicker) Stop()               { f.stopped.Store(true) }

// fakeClock hands out tickers that only fire when the test says so.
type fakeClock struct {
	mu      sync.Mutex
	tickers []*fakeTicker
}

func (fc *fakeClock) NewTicker(d time.Duration) playback.Ticker {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	t := &fakeTicker{c: make(chan time.Time), d: d}
	fc.tickers = append(fc.tickers, t)
	return t
}

func (fc *fakeClock) Live() int {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	n := 0
	for _, t := range fc.tickers {
		if !t.stopped.Load() {
			n++
		}
	}
	return n
}

func (fc *fakeClock) Created() int {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return len(fc.tickers)
}

func (fc *fakeClock) Latest() *fakeTicker {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	if len(fc.tickers) == 0 {
		return nil
	}
	return fc.tickers[len(fc.tickers)-1]
}

// fire delivers one tick to t and reports whether anyone received it.
func fire(t *fakeTicker) bool {
	select {
	case t.c <- time.Now():
		return true
	case <-time.After(50 * time.Millisecond):
		return false
	}
}

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

var _ = Describe("Controller", func() {
	var (
		clock *fakeClock
		tr    *trace.Trace
		ctrl  *playback.Controller
	)

	BeforeEach(func() {
		clock = &fakeClock{}
		// bubble sort over [3,1,2]: six steps
		tr = trace.Generate(algorithms.IDBubbleSort, []float64{3, 1, 2}, nil)
		Expect(tr.Len()).To(Equal(6))

		var err error
		ctrl, err = playback.New(tr,
			playback.WithTickerFactory(clock.NewTicker),
			playback.WithSpeed(100*time.Millisecond),
			playback.WithLogger(quiet()),
		)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(ctrl.Close)
	})

	It("starts ready at the first step", func() {
		Expect(ctrl.State()).To(Equal(playback.Ready))
		Expect(ctrl.CurrentIndex()).To(Equal(0))
		Expect(ctrl.CurrentStep().Action()).To(Equal(step.ActionCompare))
		Expect(ctrl.CanStep()).To(BeTrue())
		Expect(ctrl.CanStepBack()).To(BeFalse())
		Expect(ctrl.Speed()).To(Equal(100 * time.Millisecond))
		Expect(ctrl.Len()).To(Equal(tr.Len()))
	})

	It("rejects a nil trace", func() {
		_, err := playback.New(nil)
		Expect(err).To(MatchError(playback.ErrNilTrace))
		Expect(ctrl.Load(nil)).To(MatchError(playback.ErrNilTrace))
	})

	Describe("manual stepping", func() {
		It("walks to the end and becomes finished", func() {
			for i := 1; i < tr.Len(); i++ {
				Expect(ctrl.Step()).To(BeTrue())
				Expect(ctrl.CurrentIndex()).To(Equal(i))
			}
			Expect(ctrl.State()).To(Equal(playback.Finished))
			Expect(ctrl.CurrentStep().Action()).To(Equal(step.ActionDone))
		})

		It("does nothing at the last index", func() {
			ctrl.Seek(tr.Len() - 1)
			Expect(ctrl.Step()).To(BeFalse())
			Expect(ctrl.CurrentIndex()).To(Equal(tr.Len() - 1))
			Expect(ctrl.CanStep()).To(BeFalse())
		})

		It("steps back out of finished", func() {
			ctrl.Seek(tr.Len() - 1)
			Expect(ctrl.StepBack()).To(BeTrue())
			Expect(ctrl.CurrentIndex()).To(Equal(tr.Len() - 2))
			Expect(ctrl.State()).To(Equal(playback.Ready))
		})

		It("does not step back past the start", func() {
			Expect(ctrl.StepBack()).To(BeFalse())
			Expect(ctrl.CurrentIndex()).To(Equal(0))
		})

		It("clamps seeks", func() {
			ctrl.Seek(99)
			Expect(ctrl.CurrentIndex()).To(Equal(tr.Len() - 1))
			ctrl.Seek(-3)
			Expect(ctrl.CurrentIndex()).To(Equal(0))
			Expect(ctrl.State()).To(Equal(playback.Ready))
		})
	})

	Describe("autoplay", func() {
		It("advances one step per tick", func() {
			ctrl.Play()
			Expect(ctrl.IsPlaying()).To(BeTrue())
			Expect(clock.Live()).To(Equal(1))

			Expect(fire(clock.Latest())).To(BeTrue())
			Eventually(ctrl.CurrentIndex).Should(Equal(1))
			Expect(fire(clock.Latest())).To(BeTrue())
			Eventually(ctrl.CurrentIndex).Should(Equal(2))
		})

		It("ignores manual steps while playing", func() {
			ctrl.Play()
			Expect(ctrl.Step()).To(BeFalse())
			Expect(ctrl.StepBack()).To(BeFalse())
			Expect(ctrl.CanStep()).To(BeFalse())
			Expect(ctrl.CurrentIndex()).To(Equal(0))
		})

		It("stops its ticker when it reaches the end", func() {
			ctrl.Play()
			for i := 1; i < tr.Len(); i++ {
				Expect(fire(clock.Latest())).To(BeTrue())
			}
			Eventually(ctrl.State).Should(Equal(playback.Finished))
			Expect(ctrl.CurrentIndex()).To(Equal(tr.Len() - 1))
			Expect(clock.Live()).To(Equal(0))
		})

		It("is a no-op from finished", func() {
			ctrl.Seek(tr.Len() - 1)
			Expect(ctrl.State()).To(Equal(playback.Finished))
			ctrl.Play()
			Expect(ctrl.State()).To(Equal(playback.Finished))
			Expect(clock.Created()).To(Equal(0))
		})

		It("does not start a second ticker when already playing", func() {
			ctrl.Play()
			ctrl.Play()
			Expect(clock.Created()).To(Equal(1))
		})

		It("never advances from a cancelled ticker", func() {
			ctrl.Play()
			old := clock.Latest()
			ctrl.Pause()
			Expect(ctrl.State()).To(Equal(playback.Ready))
			Expect(old.stopped.Load()).To(BeTrue())

			fire(old)
			Consistently(ctrl.CurrentIndex, 100*time.Millisecond).Should(Equal(0))
		})

		It("finishes when a seek lands on the last step", func() {
			ctrl.Play()
			ctrl.Seek(tr.Len() - 1)
			Expect(ctrl.State()).To(Equal(playback.Finished))
			Expect(clock.Live()).To(Equal(0))
		})

		It("keeps playing after a seek into the middle", func() {
			ctrl.Play()
			ctrl.Seek(3)
			Expect(ctrl.IsPlaying()).To(BeTrue())
			Expect(fire(clock.Latest())).To(BeTrue())
			Eventually(ctrl.CurrentIndex).Should(Equal(4))
		})
	})

	Describe("speed changes", func() {
		It("rejects non-positive durations", func() {
			Expect(ctrl.ChangeSpeed(0)).To(MatchError(playback.ErrInvalidSpeed))
			Expect(ctrl.ChangeSpeed(-time.Second)).To(MatchError(playback.ErrInvalidSpeed))
			Expect(ctrl.Speed()).To(Equal(100 * time.Millisecond))
		})

		It("only records the speed while paused", func() {
			Expect(ctrl.ChangeSpeed(time.Second)).To(Succeed())
			Expect(ctrl.Speed()).To(Equal(time.Second))
			Expect(clock.Created()).To(Equal(0))
		})

		It("restarts the ticker without moving the position", func() {
			ctrl.Play()
			Expect(fire(clock.Latest())).To(BeTrue())
			Eventually(ctrl.CurrentIndex).Should(Equal(1))
			old := clock.Latest()

			Expect(ctrl.ChangeSpeed(250 * time.Millisecond)).To(Succeed())
			Expect(ctrl.CurrentIndex()).To(Equal(1))
			Expect(ctrl.IsPlaying()).To(BeTrue())
			Expect(clock.Live()).To(Equal(1))
			Expect(old.stopped.Load()).To(BeTrue())
			Expect(clock.Latest().d).To(Equal(250 * time.Millisecond))

			fire(old)
			Consistently(ctrl.CurrentIndex, 100*time.Millisecond).Should(Equal(1))

			Expect(fire(clock.Latest())).To(BeTrue())
			Eventually(ctrl.CurrentIndex).Should(Equal(2))
		})
	})

	Describe("load and reset", func() {
		It("cancels playback on reset", func() {
			ctrl.Play()
			Expect(fire(clock.Latest())).To(BeTrue())
			Eventually(ctrl.CurrentIndex).Should(Equal(1))

			ctrl.Reset()
			Expect(ctrl.State()).To(Equal(playback.Ready))
			Expect(ctrl.CurrentIndex()).To(Equal(0))
			Expect(clock.Live()).To(Equal(0))
		})

		It("cancels playback on load and rewinds", func() {
			ctrl.Play()
			next := trace.Generate(algorithms.IDLinearSearch, []float64{4, 2, 7}, ptr(7))
			Expect(ctrl.Load(next)).To(Succeed())

			Expect(clock.Live()).To(Equal(0))
			Expect(ctrl.State()).To(Equal(playback.Ready))
			Expect(ctrl.CurrentIndex()).To(Equal(0))
			Expect(ctrl.Status().Len).To(Equal(4))
			Expect(ctrl.Trace()).To(BeIdenticalTo(next))
		})
	})

	It("treats a single-step trace as nothing to play", func() {
		one := trace.Generate(algorithms.IDBubbleSort, nil, nil)
		Expect(ctrl.Load(one)).To(Succeed())
		ctrl.Play()
		Expect(ctrl.State()).To(Equal(playback.Ready))
		Expect(ctrl.Step()).To(BeFalse())
		Expect(clock.Created()).To(Equal(0))
	})
})

var _ = Describe("Controller with a real ticker", func() {
	It("plays a trace to completion in order", func() {
		tr := trace.Generate(algorithms.IDInsertionSort, []float64{4, 3, 2, 1}, nil)

		var (
			mu   sync.Mutex
			seen []int
		)
		ctrl, err := playback.New(tr,
			playback.WithSpeed(time.Millisecond),
			playback.WithLogger(quiet()),
			playback.WithOnAdvance(func(s playback.Status) {
				mu.Lock()
				seen = append(seen, s.Index)
				mu.Unlock()
			}),
		)
		Expect(err).NotTo(HaveOccurred())
		defer ctrl.Close()

		ctrl.Play()
		Eventually(ctrl.State, time.Second).Should(Equal(playback.Finished))
		Expect(ctrl.CurrentIndex()).To(Equal(tr.Len() - 1))
		Expect(ctrl.CurrentStep().Action()).To(Equal(step.ActionDone))

		Eventually(func() int {
			mu.Lock()
			defer mu.Unlock()
			return len(seen)
		}).Should(Equal(tr.Len() - 1))
		mu.Lock()
		defer mu.Unlock()
		for i, idx := range seen {
			Expect(idx).To(Equal(i + 1))
		}
	})
})

func ptr(v float64) *float64 { return &v }
