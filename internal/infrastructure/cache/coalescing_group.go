package cache

import (
	"context"
	"sync"
	"time"
)

// flight is one in-progress (or recently finished) call
type flight[T any] struct {
	done      chan struct{}
	val       T
	err       error
	startedAt time.Time
}

// CoalescingGroup merges concurrent calls for the same key into one in-flight
// operation and shares its result. Entries expire after a TTL so a call that
// died without cleanup cannot block the key forever, and finished results
// linger for a short release delay to absorb near-simultaneous duplicates.
//
// The group only protects a single process; callers must still rely on a
// database uniqueness constraint for cross-instance correctness.
type CoalescingGroup[T any] struct {
	mu           sync.Mutex
	flights      map[string]*flight[T]
	ttl          time.Duration
	releaseDelay time.Duration
	now          func() time.Time
}

// NewCoalescingGroup creates a group with the given in-flight TTL and
// post-completion release delay
func NewCoalescingGroup[T any](ttl, releaseDelay time.Duration) *CoalescingGroup[T] {
	return &CoalescingGroup[T]{
		flights:      make(map[string]*flight[T]),
		ttl:          ttl,
		releaseDelay: releaseDelay,
		now:          time.Now,
	}
}

// NewCoalescingGroupWithClock creates a group with an injected clock for tests
func NewCoalescingGroupWithClock[T any](ttl, releaseDelay time.Duration, now func() time.Time) *CoalescingGroup[T] {
	g := NewCoalescingGroup[T](ttl, releaseDelay)
	g.now = now
	return g
}

// Do executes fn for the key, or awaits and returns the result of an already
// in-flight execution. shared=true means this call joined another call's work.
func (g *CoalescingGroup[T]) Do(ctx context.Context, key string, fn func() (T, error)) (val T, shared bool, err error) {
	g.mu.Lock()
	if f, ok := g.flights[key]; ok && g.now().Sub(f.startedAt) < g.ttl {
		g.mu.Unlock()
		select {
		case <-f.done:
			return f.val, true, f.err
		case <-ctx.Done():
			var zero T
			return zero, true, ctx.Err()
		}
	}

	f := &flight[T]{
		done:      make(chan struct{}),
		startedAt: g.now(),
	}
	g.flights[key] = f
	g.mu.Unlock()

	f.val, f.err = fn()
	close(f.done)

	// Keep the finished flight around briefly so stragglers share the result
	// instead of starting legitimate-looking duplicate work.
	time.AfterFunc(g.releaseDelay, func() {
		g.mu.Lock()
		if g.flights[key] == f {
			delete(g.flights, key)
		}
		g.mu.Unlock()
	})

	return f.val, false, f.err
}

// Forget drops the entry for a key immediately (for tests)
func (g *CoalescingGroup[T]) Forget(key string) {
	g.mu.Lock()
	delete(g.flights, key)
	g.mu.Unlock()
}

// Len returns the number of tracked flights (for tests/monitoring)
func (g *CoalescingGroup[T]) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.flights)
}
