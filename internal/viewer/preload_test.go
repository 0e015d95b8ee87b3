package viewer_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maxito7/studio_backend/internal/viewer"
)

// gatedLoader blocks each ref until released, then returns the configured
// outcome.
type gatedLoader struct {
	release map[string]chan error
	settled chan string
}

func newGatedLoader(refs []string) *gatedLoader {
	l := &gatedLoader{
		release: make(map[string]chan error, len(refs)),
		settled: make(chan string, len(refs)),
	}
	for _, r := range refs {
		l.release[r] = make(chan error, 1)
	}
	return l
}

func (l *gatedLoader) Load(ctx context.Context, ref string) error {
	defer func() { l.settled <- ref }()
	select {
	case err := <-l.release[ref]:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestPreloadGateSettlesAfterPartialFailure(t *testing.T) {
	refs := []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg", "e.jpg"}
	loader := newGatedLoader(refs)
	gate := viewer.NewPreloadGate(refs, loader, viewer.PreloadOptions{})

	var fired atomic.Int32
	gate.OnLoaded(func() { fired.Add(1) })

	gate.Start(context.Background())
	gate.Start(context.Background())

	for _, ok := range []string{"a.jpg", "c.jpg", "e.jpg"} {
		loader.release[ok] <- nil
	}
	for i := 0; i < 3; i++ {
		<-loader.settled
	}
	assert.False(t, gate.Loaded(), "two loads still pending")
	select {
	case <-gate.Done():
		t.Fatal("gate opened before every load settled")
	default:
	}

	boom := errors.New("404")
	loader.release["b.jpg"] <- boom
	loader.release["d.jpg"] <- boom

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, gate.Wait(ctx))
	assert.True(t, gate.Loaded())
	assert.Equal(t, int32(1), fired.Load())

	results := gate.Results()
	require.Len(t, results, 5)
	var failed []string
	for _, r := range results {
		if !r.OK() {
			failed = append(failed, r.Ref)
		}
	}
	assert.Equal(t, []string{"b.jpg", "d.jpg"}, failed)

	gate.OnLoaded(func() { fired.Add(1) })
	assert.Equal(t, int32(2), fired.Load(), "late subscriber runs immediately")
}

func TestPreloadGateEmpty(t *testing.T) {
	gate := viewer.NewPreloadGate(nil, viewer.LoaderFunc(func(context.Context, string) error {
		t.Fatal("loader must not be called")
		return nil
	}), viewer.PreloadOptions{})
	gate.Start(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, gate.Wait(ctx))
	assert.Empty(t, gate.Results())
}

func TestPreloadGateTimeoutCountsAsFailure(t *testing.T) {
	hang := viewer.LoaderFunc(func(ctx context.Context, _ string) error {
		<-ctx.Done()
		return ctx.Err()
	})
	gate := viewer.NewPreloadGate([]string{"slow.jpg"}, hang, viewer.PreloadOptions{
		Timeout: 10 * time.Millisecond,
	})
	gate.Start(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, gate.Wait(ctx))
	require.Len(t, gate.Results(), 1)
	assert.ErrorIs(t, gate.Results()[0].Err, context.DeadlineExceeded)
}

func TestPreloadGateConcurrencyLimit(t *testing.T) {
	var (
		mu      sync.Mutex
		running int
		peak    int
	)
	loader := viewer.LoaderFunc(func(context.Context, string) error {
		mu.Lock()
		running++
		if running > peak {
			peak = running
		}
		mu.Unlock()
		time.Sleep(2 * time.Millisecond)
		mu.Lock()
		running--
		mu.Unlock()
		return nil
	})
	refs := make([]string, 12)
	for i := range refs {
		refs[i] = string(rune('a'+i)) + ".jpg"
	}
	gate := viewer.NewPreloadGate(refs, loader, viewer.PreloadOptions{Concurrency: 3})
	gate.Start(context.Background())
	require.NoError(t, gate.Wait(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, peak, 3)
}

func TestPreloadGateWaitHonoursContext(t *testing.T) {
	gate := viewer.NewPreloadGate([]string{"x.jpg"}, viewer.LoaderFunc(func(context.Context, string) error {
		return nil
	}), viewer.PreloadOptions{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, gate.Wait(ctx), context.Canceled)
	assert.Nil(t, gate.Results())
}
