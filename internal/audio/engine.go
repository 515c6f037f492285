package audio

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"go.uber.org/zap"
)

const (
	// DefaultSampleRate is the rate the output device is opened at
	DefaultSampleRate = 48000
	// DefaultBufferDuration is the speaker buffer length
	DefaultBufferDuration = 100 * time.Millisecond

	resampleQuality = 4
)

// ErrNotRunning is returned when playback is requested but the output
// device could not be opened
var ErrNotRunning = errors.New("audio output is not running")

// State is the output context state
type State int

const (
	// StateSuspended means the device has not been opened yet
	StateSuspended State = iota
	// StateRunning means the device is open and accepting streams
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	default:
		return "suspended"
	}
}

// Engine is the audio output context. Use Default for the process-wide
// instance.
type Engine struct {
	mu         sync.Mutex
	out        Output
	rate       beep.SampleRate
	bufferSize time.Duration
	state      State
	logger     *zap.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithOutput replaces the speaker output
func WithOutput(out Output) Option {
	return func(e *Engine) { e.out = out }
}

// WithSampleRate sets the device sample rate
func WithSampleRate(rate int) Option {
	return func(e *Engine) {
		if rate > 0 {
			e.rate = beep.SampleRate(rate)
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates an engine in the suspended state. Nothing touches the
// device until Unlock or Play.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		out:        SpeakerOutput{},
		rate:       DefaultSampleRate,
		bufferSize: DefaultBufferDuration,
		state:      StateSuspended,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var (
	defaultEngine *Engine
	defaultOnce   sync.Once
)

// Default returns the process-wide engine, creating it on first use.
// Options only take effect on that first call.
func Default(opts ...Option) *Engine {
	defaultOnce.Do(func() {
		defaultEngine = NewEngine(opts...)
	})
	return defaultEngine
}

// State returns the current output state
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// SampleRate returns the device sample rate
func (e *Engine) SampleRate() int {
	return int(e.rate)
}

// Unlock makes sure the output is running and pushes a one-sample silent
// stream through it. Both steps are best effort; failures are logged.
func (e *Engine) Unlock() {
	if err := e.resume(); err != nil {
		e.logger.Warn("Audio output resume failed", zap.Error(err))
	}

	if e.State() != StateRunning {
		e.logger.Warn("Silent sample skipped", zap.Stringer("state", StateSuspended))
		return
	}
	e.out.Play(beep.Silence(1))
	e.logger.Debug("Audio output unlocked")
}

// resume opens the device if it is still suspended
func (e *Engine) resume() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == StateRunning {
		return nil
	}

	if err := e.out.Init(e.rate, e.rate.N(e.bufferSize)); err != nil {
		return fmt.Errorf("failed to open audio output at %d Hz: %w", int(e.rate), err)
	}
	e.state = StateRunning
	e.logger.Info("Audio output running", zap.Int("sample_rate", int(e.rate)))
	return nil
}

// Play schedules immediate playback of buf through a gain node. gain is
// added to unity (0 keeps the level). The returned channel is closed when
// the buffer has been fully streamed.
func (e *Engine) Play(buf *Buffer, gain float64) (<-chan struct{}, error) {
	if err := e.resume(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotRunning, err)
	}

	var s beep.Streamer = buf.Streamer()
	if src := beep.SampleRate(buf.SampleRate); src != e.rate {
		s = beep.Resample(resampleQuality, src, e.rate, s)
	}

	done := make(chan struct{})
	node := &effects.Gain{Streamer: s, Gain: gain}
	e.out.Play(beep.Seq(node, beep.Callback(func() { close(done) })))

	e.logger.Debug("Playback scheduled",
		zap.Int("frames", buf.Len()),
		zap.Duration("duration", buf.Duration()),
		zap.Float64("gain", gain))

	return done, nil
}
