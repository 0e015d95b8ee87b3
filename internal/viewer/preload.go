package viewer

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Loader fetches one image reference. A returned error marks the image as
// failed; it never blocks the gate.
type Loader interface {
	Load(ctx context.Context, ref string) error
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, ref string) error

func (f LoaderFunc) Load(ctx context.Context, ref string) error { return f(ctx, ref) }

// PreloadResult is the settled outcome for one reference.
type PreloadResult struct {
	Ref string `json:"ref"`
	Err error  `json:"-"`
}

func (r PreloadResult) OK() bool { return r.Err == nil }

type PreloadOptions struct {
	// Concurrency caps simultaneous loads; zero or negative means unlimited.
	Concurrency int
	// Timeout bounds each individual load.
	Timeout time.Duration
	Logger  *zap.Logger
}

// PreloadGate is a one-shot barrier over a fixed list of images. It opens
// exactly once, after every load has either succeeded or failed.
type PreloadGate struct {
	refs   []string
	loader Loader
	opts   PreloadOptions

	start   sync.Once
	done    chan struct{}
	loaded  atomic.Bool
	mu      sync.Mutex
	results []PreloadResult
	waiters []func()
}

func NewPreloadGate(refs []string, loader Loader, opts PreloadOptions) *PreloadGate {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	cp := make([]string, len(refs))
	copy(cp, refs)
	return &PreloadGate{
		refs:   cp,
		loader: loader,
		opts:   opts,
		done:   make(chan struct{}),
	}
}

// Start launches the loads in the background. Calling it again is a no-op.
func (g *PreloadGate) Start(ctx context.Context) {
	g.start.Do(func() {
		go g.run(ctx)
	})
}

func (g *PreloadGate) run(ctx context.Context) {
	results := make([]PreloadResult, len(g.refs))
	eg := new(errgroup.Group)
	if g.opts.Concurrency > 0 {
		eg.SetLimit(g.opts.Concurrency)
	}
	for i, ref := range g.refs {
		i, ref := i, ref
		eg.Go(func() error {
			results[i] = PreloadResult{Ref: ref, Err: g.loadOne(ctx, ref)}
			return nil
		})
	}
	_ = eg.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			g.opts.Logger.Warn("preload failed", zap.String("ref", r.Ref), zap.Error(r.Err))
		}
	}
	g.opts.Logger.Info("preload settled",
		zap.Int("images", len(results)),
		zap.Int("failed", failed))

	g.mu.Lock()
	g.results = results
	g.loaded.Store(true)
	waiters := g.waiters
	g.waiters = nil
	close(g.done)
	g.mu.Unlock()

	for _, fn := range waiters {
		fn()
	}
}

func (g *PreloadGate) loadOne(ctx context.Context, ref string) error {
	if g.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.opts.Timeout)
		defer cancel()
	}
	return g.loader.Load(ctx, ref)
}

// Loaded reports whether the gate has opened.
func (g *PreloadGate) Loaded() bool { return g.loaded.Load() }

// Done is closed when the gate opens.
func (g *PreloadGate) Done() <-chan struct{} { return g.done }

// Wait blocks until the gate opens or ctx ends.
func (g *PreloadGate) Wait(ctx context.Context) error {
	select {
	case <-g.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// OnLoaded registers fn to run once when the gate opens. If the gate is
// already open fn runs immediately.
func (g *PreloadGate) OnLoaded(fn func()) {
	g.mu.Lock()
	if !g.loaded.Load() {
		g.waiters = append(g.waiters, fn)
		g.mu.Unlock()
		return
	}
	g.mu.Unlock()
	fn()
}

// Results returns the per-image outcomes, or nil before the gate opens.
func (g *PreloadGate) Results() []PreloadResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.results == nil {
		return nil
	}
	out := make([]PreloadResult, len(g.results))
	copy(out, g.results)
	return out
}
