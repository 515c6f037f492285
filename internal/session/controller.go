package session

import (
	"math/rand/v2"
	"sync"
	"time"
)

// DefaultFlipDelay lets the card turn back to its front before the word
// changes
const DefaultFlipDelay = 200 * time.Millisecond

// State is a snapshot of the controller
type State struct {
	Index   int
	Len     int
	Flipped bool
}

// Progress returns the position through the deck as a percentage
func (s State) Progress() float64 {
	if s.Len <= 0 {
		return 0
	}
	return float64(s.Index+1) / float64(s.Len) * 100
}

// NextIndex returns the index after i, wrapping to 0
func NextIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	return (i + 1) % n
}

// PrevIndex returns the index before i, wrapping to n-1
func PrevIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	return (i - 1 + n) % n
}

// RandomIndex returns a uniformly random index in [0, n). It may return
// the current index.
func RandomIndex(n int, rng *rand.Rand) int {
	if n <= 0 {
		return 0
	}
	if rng == nil {
		return rand.IntN(n)
	}
	return rng.IntN(n)
}

// Controller owns the current index and flipped flag
type Controller struct {
	mu       sync.Mutex
	index    int
	length   int
	flipped  bool
	delay    time.Duration
	schedule Scheduler
	rng      *rand.Rand
	onChange func(State)
}

// Option configures a Controller
type Option func(*Controller)

// WithDelay sets the pause between unflipping and changing the card
func WithDelay(d time.Duration) Option {
	return func(c *Controller) {
		c.delay = d
	}
}

// WithScheduler replaces time.AfterFunc
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) {
		c.schedule = s
	}
}

// WithRand sets the random source used by Shuffle
func WithRand(rng *rand.Rand) Option {
	return func(c *Controller) {
		c.rng = rng
	}
}

// WithStart sets the initial index; out of range values are ignored
func WithStart(i int) Option {
	return func(c *Controller) {
		if i >= 0 && i < c.length {
			c.index = i
		}
	}
}

// NewController creates a controller over a deck of length cards
func NewController(length int, opts ...Option) *Controller {
	c := &Controller{
		length:   length,
		delay:    DefaultFlipDelay,
		schedule: AfterFunc,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnChange registers the callback fired after every state change. It is
// called without the controller lock held, from whichever goroutine made
// the change.
func (c *Controller) OnChange(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// State returns the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Controller) snapshot() State {
	return State{Index: c.index, Len: c.length, Flipped: c.flipped}
}

// Flip toggles between front and back
func (c *Controller) Flip() {
	c.update(func() {
		c.flipped = !c.flipped
	})
}

// Next shows the following card, wrapping after the last
func (c *Controller) Next() {
	c.move(func(i, n int) int { return NextIndex(i, n) })
}

// Previous shows the preceding card, wrapping before the first
func (c *Controller) Previous() {
	c.move(func(i, n int) int { return PrevIndex(i, n) })
}

// Shuffle shows a random card
func (c *Controller) Shuffle() {
	c.move(func(_, n int) int { return RandomIndex(n, c.rng) })
}

// Jump shows card i immediately; out of range values are ignored
func (c *Controller) Jump(i int) {
	c.mu.Lock()
	if i < 0 || i >= c.length {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	c.update(func() {
		c.flipped = false
		c.index = i
	})
}

// move unflips at once and changes the index after the delay. Each call
// applies its step to the index current at the time it fires.
func (c *Controller) move(step func(i, n int) int) {
	c.update(func() {
		c.flipped = false
	})

	c.mu.Lock()
	delay, schedule := c.delay, c.schedule
	c.mu.Unlock()

	schedule(delay, func() {
		c.update(func() {
			c.index = step(c.index, c.length)
		})
	})
}

func (c *Controller) update(fn func()) {
	c.mu.Lock()
	fn()
	state := c.snapshot()
	onChange := c.onChange
	c.mu.Unlock()

	if onChange != nil {
		onChange(state)
	}
}
