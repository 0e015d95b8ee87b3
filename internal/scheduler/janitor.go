package scheduler

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Sweeper is one periodic cleanup task. It returns how many entries it
// removed.
type Sweeper interface {
	Sweep() int
}

// SweepFunc adapts a function to Sweeper.
type SweepFunc func() int

func (f SweepFunc) Sweep() int { return f() }

// Janitor runs a set of named sweepers on a fixed interval: expired viewer
// sessions, stale rate-limit windows.
type Janitor struct {
	interval time.Duration
	logger   *zap.Logger
	tasks    map[string]Sweeper

	mu      sync.Mutex
	ticker  *time.Ticker
	stop    chan struct{}
	stopped chan struct{}
}

func NewJanitor(interval time.Duration, logger *zap.Logger) *Janitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Janitor{
		interval: interval,
		logger:   logger,
		tasks:    make(map[string]Sweeper),
	}
}

// Register adds a sweeper. It must be called before Start.
func (j *Janitor) Register(name string, s Sweeper) {
	j.tasks[name] = s
}

// Start launches the sweep loop. A second Start is a no-op.
func (j *Janitor) Start() {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.ticker != nil || j.interval <= 0 {
		return
	}

	j.ticker = time.NewTicker(j.interval)
	j.stop = make(chan struct{})
	j.stopped = make(chan struct{})
	j.logger.Info("janitor started", zap.Duration("interval", j.interval), zap.Int("tasks", len(j.tasks)))

	go j.loop(j.ticker, j.stop, j.stopped)
}

func (j *Janitor) loop(ticker *time.Ticker, stop, stopped chan struct{}) {
	defer close(stopped)
	for {
		select {
		case <-ticker.C:
			j.RunOnce()
		case <-stop:
			return
		}
	}
}

// RunOnce runs every sweeper immediately and returns the removal counts.
func (j *Janitor) RunOnce() map[string]int {
	out := make(map[string]int, len(j.tasks))
	for name, task := range j.tasks {
		n := task.Sweep()
		out[name] = n
		if n > 0 {
			j.logger.Debug("janitor sweep", zap.String("task", name), zap.Int("removed", n))
		}
	}
	return out
}

// Stop halts the loop and waits for an in-progress sweep to finish.
func (j *Janitor) Stop() {
	j.mu.Lock()
	if j.ticker == nil {
		j.mu.Unlock()
		return
	}
	j.ticker.Stop()
	close(j.stop)
	stopped := j.stopped
	j.ticker = nil
	j.mu.Unlock()

	<-stopped
	j.logger.Info("janitor stopped")
}
