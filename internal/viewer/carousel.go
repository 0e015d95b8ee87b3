package viewer

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Phase is the externally visible carousel state.
type Phase string

const (
	PhasePlaying       Phase = "playing"
	PhasePaused        Phase = "paused"
	PhaseTransitioning Phase = "transitioning"
)

// CarouselConfig parameterizes one slideshow widget.
type CarouselConfig struct {
	Name               string
	Interval           time.Duration
	TransitionDuration time.Duration
	// ResumeDelay is how long autoplay stays off after a manual move.
	// Zero or negative means autoplay only comes back through Play.
	ResumeDelay time.Duration
	Autoplay    bool
}

const defaultCarouselInterval = 5 * time.Second

type CarouselState struct {
	Name          string `json:"name"`
	Index         int    `json:"index"`
	Length        int    `json:"length"`
	Autoplay      bool   `json:"autoplay"`
	Transitioning bool   `json:"transitioning"`
	Phase         Phase  `json:"phase"`
}

type timerKind int

const (
	timerNone timerKind = iota
	timerAdvance
	timerResume
)

// Carousel rotates an index over a sequence of length n, either on a timer
// or on demand. It is safe for concurrent use; every transition is
// serialized by the carousel's mutex and at most one timer is armed at a
// time.
type Carousel struct {
	cfg    CarouselConfig
	clock  Clock
	logger *zap.Logger

	mu             sync.Mutex
	n              int
	index          int
	autoplay       bool
	transitionEnds time.Time
	timer          Timer
	kind           timerKind
	gen            uint64
	closed         bool
	onChange       func(CarouselState)
}

type CarouselOption func(*Carousel)

func WithClock(clock Clock) CarouselOption {
	return func(c *Carousel) { c.clock = clock }
}

func WithLogger(logger *zap.Logger) CarouselOption {
	return func(c *Carousel) { c.logger = logger }
}

// WithOnChange registers fn to receive a snapshot after every change. fn is
// called without the carousel lock held.
func WithOnChange(fn func(CarouselState)) CarouselOption {
	return func(c *Carousel) { c.onChange = fn }
}

// NewCarousel creates a carousel over n items and arms the autoplay timer
// when cfg.Autoplay is set and there is something to rotate.
func NewCarousel(cfg CarouselConfig, n int, opts ...CarouselOption) *Carousel {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultCarouselInterval
	}
	if n < 0 {
		n = 0
	}
	c := &Carousel{
		cfg:      cfg,
		clock:    SystemClock(),
		logger:   zap.NewNop(),
		n:        n,
		autoplay: cfg.Autoplay,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.mu.Lock()
	if c.autoplay && c.n >= 2 {
		c.scheduleLocked(c.cfg.Interval, timerAdvance)
	}
	c.mu.Unlock()
	return c
}

func (c *Carousel) Name() string { return c.cfg.Name }

func (c *Carousel) State() CarouselState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Carousel) Next() {
	c.manual(func() { c.index = (c.index + 1) % c.n })
}

func (c *Carousel) Prev() {
	c.manual(func() { c.index = (c.index - 1 + c.n) % c.n })
}

// GoTo jumps to i, clamped into [0, n).
func (c *Carousel) GoTo(i int) {
	c.manual(func() {
		switch {
		case i < 0:
			c.index = 0
		case i >= c.n:
			c.index = c.n - 1
		default:
			c.index = i
		}
	})
}

// Play turns autoplay on and restarts the interval from now.
func (c *Carousel) Play() {
	c.update(func() bool {
		c.autoplay = true
		c.cancelLocked()
		if c.n >= 2 {
			c.scheduleLocked(c.cfg.Interval, timerAdvance)
		}
		return true
	})
}

// Pause turns autoplay off. A pending resume is dropped too: an explicit
// pause outlives the resume delay.
func (c *Carousel) Pause() {
	c.update(func() bool {
		c.autoplay = false
		c.cancelLocked()
		return true
	})
}

func (c *Carousel) Toggle() {
	c.mu.Lock()
	playing := c.autoplay
	c.mu.Unlock()
	if playing {
		c.Pause()
		return
	}
	c.Play()
}

// SetLength rebinds the carousel to a sequence of length n and resets the
// index to 0.
func (c *Carousel) SetLength(n int) {
	if n < 0 {
		n = 0
	}
	c.update(func() bool {
		resuming := c.kind == timerResume
		c.cancelLocked()
		c.n = n
		c.index = 0
		c.transitionEnds = time.Time{}
		if c.n < 2 {
			return true
		}
		switch {
		case c.autoplay:
			c.scheduleLocked(c.cfg.Interval, timerAdvance)
		case resuming:
			c.scheduleLocked(c.cfg.ResumeDelay, timerResume)
		}
		return true
	})
}

// Close stops every timer. A closed carousel ignores all further calls.
func (c *Carousel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.cancelLocked()
	c.logger.Debug("carousel closed", zap.String("carousel", c.cfg.Name))
}

func (c *Carousel) manual(move func()) {
	c.update(func() bool {
		if c.n < 2 {
			return false
		}
		move()
		c.beginTransitionLocked()
		c.autoplay = false
		c.cancelLocked()
		if c.cfg.ResumeDelay > 0 {
			c.scheduleLocked(c.cfg.ResumeDelay, timerResume)
		}
		return true
	})
}

// update runs fn under the lock and publishes the resulting state when fn
// reports a change.
func (c *Carousel) update(fn func() bool) {
	c.mu.Lock()
	if c.closed || !fn() {
		c.mu.Unlock()
		return
	}
	st := c.stateLocked()
	notify := c.onChange
	c.mu.Unlock()

	if notify != nil {
		notify(st)
	}
}

func (c *Carousel) fire(gen uint64) {
	c.update(func() bool {
		if gen != c.gen {
			// superseded after the timer had already fired
			return false
		}
		kind := c.kind
		c.timer = nil
		c.kind = timerNone
		if c.n < 2 {
			return false
		}
		switch kind {
		case timerAdvance:
			if !c.autoplay {
				return false
			}
			c.index = (c.index + 1) % c.n
			c.beginTransitionLocked()
		case timerResume:
			c.autoplay = true
			c.logger.Debug("carousel autoplay resumed", zap.String("carousel", c.cfg.Name))
		default:
			return false
		}
		c.scheduleLocked(c.cfg.Interval, timerAdvance)
		return true
	})
}

func (c *Carousel) scheduleLocked(d time.Duration, kind timerKind) {
	c.cancelLocked()
	c.gen++
	gen := c.gen
	c.kind = kind
	c.timer = c.clock.AfterFunc(d, func() { c.fire(gen) })
}

func (c *Carousel) cancelLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.kind = timerNone
	c.gen++
}

func (c *Carousel) beginTransitionLocked() {
	if c.cfg.TransitionDuration > 0 {
		c.transitionEnds = c.clock.Now().Add(c.cfg.TransitionDuration)
	}
}

func (c *Carousel) stateLocked() CarouselState {
	st := CarouselState{
		Name:          c.cfg.Name,
		Index:         c.index,
		Length:        c.n,
		Autoplay:      c.autoplay,
		Transitioning: c.clock.Now().Before(c.transitionEnds),
	}
	switch {
	case st.Transitioning:
		st.Phase = PhaseTransitioning
	case st.Autoplay:
		st.Phase = PhasePlaying
	default:
		st.Phase = PhasePaused
	}
	return st
}
