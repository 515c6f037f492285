package session

import (
	"context"
	"errors"
	"sync"
	"time"
)

// DefaultCooldown keeps the audio control busy after a request settles
const DefaultCooldown = time.Second

// ErrBusy is returned by Run while a pronunciation is playing
var ErrBusy = errors.New("pronunciation already in progress")

// Gate allows one pronunciation at a time. It stays closed for the whole
// request and for a cooldown after it settles.
type Gate struct {
	mu        sync.Mutex
	playing   bool
	releasing bool
	cooldown  time.Duration
	schedule  Scheduler
	onChange  func(playing bool)
}

// GateOption configures a Gate
type GateOption func(*Gate)

// WithGateScheduler replaces time.AfterFunc
func WithGateScheduler(s Scheduler) GateOption {
	return func(g *Gate) {
		g.schedule = s
	}
}

// NewGate creates an open gate
func NewGate(cooldown time.Duration, opts ...GateOption) *Gate {
	g := &Gate{cooldown: cooldown, schedule: AfterFunc}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// OnChange registers a callback fired when the playing flag flips
func (g *Gate) OnChange(fn func(playing bool)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onChange = fn
}

// Playing reports whether the gate is closed
func (g *Gate) Playing() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.playing
}

// TryAcquire closes the gate, returning false if it already was
func (g *Gate) TryAcquire() bool {
	g.mu.Lock()
	if g.playing {
		g.mu.Unlock()
		return false
	}
	g.playing = true
	onChange := g.onChange
	g.mu.Unlock()

	if onChange != nil {
		onChange(true)
	}
	return true
}

// Release opens the gate once the cooldown has passed
func (g *Gate) Release() {
	g.mu.Lock()
	if !g.playing || g.releasing {
		g.mu.Unlock()
		return
	}
	g.releasing = true
	cooldown, schedule := g.cooldown, g.schedule
	g.mu.Unlock()

	schedule(cooldown, func() {
		g.mu.Lock()
		g.playing = false
		g.releasing = false
		onChange := g.onChange
		g.mu.Unlock()

		if onChange != nil {
			onChange(false)
		}
	})
}

// Run acquires the gate, calls fn in the caller's goroutine and releases
// the gate when fn returns, whatever its result
func (g *Gate) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	if !g.TryAcquire() {
		return ErrBusy
	}
	defer g.Release()
	return fn(ctx)
}
