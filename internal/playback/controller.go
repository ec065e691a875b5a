// Package playback replays a materialized trace forward, backward, paused or
// at a chosen cadence. The controller is the only writer of the current
// position and owns at most one live ticker at any instant.
package playback

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/san-kum/algoviz/internal/step"
	"github.com/san-kum/algoviz/internal/trace"
)

const DefaultSpeed = 500 * time.Millisecond

var (
	ErrInvalidSpeed = errors.New("playback: speed must be positive")
	ErrNilTrace     = errors.New("playback: nil trace")
)

type State int

const (
	Ready State = iota
	Playing
	Finished
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Playing:
		return "playing"
	case Finished:
		return "finished"
	}
	return "unknown"
}

// Status is a consistent view of the controller at one instant.
type Status struct {
	Index int
	Len   int
	State State
	Speed time.Duration
	Step  step.Step
}

// run is one live ticker plus the signal that retires its goroutine.
type run struct {
	ticker Ticker
	done   chan struct{}
}

type Controller struct {
	mu        sync.Mutex
	trace     *trace.Trace
	index     int
	state     State
	speed     time.Duration
	active    *run
	newTicker TickerFactory
	onAdvance func(Status)
	logger    *slog.Logger
}

type Option func(*Controller)

func WithSpeed(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.speed = d
		}
	}
}

func WithTickerFactory(f TickerFactory) Option { return func(c *Controller) { c.newTicker = f } }

func WithLogger(l *slog.Logger) Option { return func(c *Controller) { c.logger = l } }

// WithOnAdvance registers a hook called after every timer-driven advance.
// It runs outside the controller lock, so it may call back into the
// controller; by the time it runs the state may already have moved on.
func WithOnAdvance(fn func(Status)) Option { return func(c *Controller) { c.onAdvance = fn } }

func New(t *trace.Trace, opts ...Option) (*Controller, error) {
	if t == nil {
		return nil, ErrNilTrace
	}
	c := &Controller{
		trace:     t,
		speed:     DefaultSpeed,
		newTicker: NewRealTicker,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Load replaces the trace and rewinds to its first step.
func (c *Controller) Load(t *trace.Trace) error {
	if t == nil {
		return ErrNilTrace
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	c.trace = t
	c.index = 0
	c.state = Ready
	c.logger.Debug("trace loaded", "algorithm", t.Algorithm(), "steps", t.Len())
	return nil
}

// Play starts the ticker. It is a no-op unless the controller is Ready with
// steps left to show.
func (c *Controller) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Ready || c.index >= c.trace.Len()-1 {
		return
	}
	c.state = Playing
	c.startLocked()
	c.logger.Debug("playback started", "index", c.index, "speed", c.speed)
}

func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Playing {
		return
	}
	c.stopLocked()
	c.state = Ready
	c.logger.Debug("playback paused", "index", c.index)
}

// Step advances one position. It does nothing while playing or at the end.
func (c *Controller) Step() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Playing || c.index >= c.trace.Len()-1 {
		return false
	}
	c.index++
	c.settleLocked()
	return true
}

// StepBack rewinds one position outside of playback.
func (c *Controller) StepBack() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Playing || c.index == 0 {
		return false
	}
	c.index--
	c.settleLocked()
	return true
}

// Seek jumps to i, clamped into the trace. While playing, the ticker keeps
// its cadence unless the jump lands on the last step.
func (c *Controller) Seek(i int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	last := c.trace.Len() - 1
	c.index = max(0, min(i, last))
	if c.state == Playing {
		if c.index == last {
			c.stopLocked()
			c.state = Finished
		}
		return
	}
	c.settleLocked()
}

func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	c.index = 0
	c.state = Ready
}

// ChangeSpeed sets the cadence. While playing, the old ticker is stopped and
// a new one started under the same lock, so the position is untouched.
func (c *Controller) ChangeSpeed(d time.Duration) error {
	if d <= 0 {
		return ErrInvalidSpeed
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.speed = d
	if c.state == Playing {
		c.stopLocked()
		c.startLocked()
	}
	c.logger.Debug("speed changed", "speed", d, "state", c.state)
	return nil
}

// Close stops any live ticker. The controller stays usable.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Playing {
		c.state = Ready
	}
	c.stopLocked()
}

func (c *Controller) CurrentStep() step.Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.trace.At(c.index)
}

func (c *Controller) CurrentIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.trace.Len()
}

func (c *Controller) CanStep() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state != Playing && c.index < c.trace.Len()-1
}

func (c *Controller) CanStepBack() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state != Playing && c.index > 0
}

func (c *Controller) IsPlaying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == Playing
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Speed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speed
}

func (c *Controller) Trace() *trace.Trace {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.trace
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusLocked()
}

func (c *Controller) statusLocked() Status {
	return Status{
		Index: c.index,
		Len:   c.trace.Len(),
		State: c.state,
		Speed: c.speed,
		Step:  c.trace.At(c.index),
	}
}

// settleLocked derives Ready or Finished from the position after a manual move.
func (c *Controller) settleLocked() {
	if c.trace.Len() > 1 && c.index == c.trace.Len()-1 {
		c.state = Finished
	} else {
		c.state = Ready
	}
}

func (c *Controller) startLocked() {
	r := &run{ticker: c.newTicker(c.speed), done: make(chan struct{})}
	c.active = r
	go c.loop(r)
}

func (c *Controller) stopLocked() {
	if c.active == nil {
		return
	}
	c.active.ticker.Stop()
	close(c.active.done)
	c.active = nil
}

func (c *Controller) loop(r *run) {
	for {
		select {
		case <-r.done:
			return
		case <-r.ticker.C():
			if !c.tick(r) {
				return
			}
		}
	}
}

// tick advances on behalf of r. A retired run never moves the position.
func (c *Controller) tick(r *run) bool {
	c.mu.Lock()
	if c.active != r {
		c.mu.Unlock()
		return false
	}
	last := c.trace.Len() - 1
	if c.index < last {
		c.index++
	}
	if c.index >= last {
		c.stopLocked()
		c.state = Finished
		c.logger.Debug("playback finished", "steps", c.trace.Len())
	}
	st := c.statusLocked()
	alive := c.active == r
	hook := c.onAdvance
	c.mu.Unlock()

	if hook != nil {
		hook(st)
	}
	return alive
}
