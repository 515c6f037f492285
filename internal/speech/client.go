package speech

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"codeberg.org/snonux/lingoflash/internal/audio"
)

// Player is the part of the audio engine the client needs
type Player interface {
	Unlock()
	Play(buf *audio.Buffer, gain float64) (<-chan struct{}, error)
}

// Client speaks vocabulary words through a provider and a player
type Client struct {
	provider Provider
	player   Player
	gain     float64
	timeout  time.Duration
	logger   *zap.Logger
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithGain sets the playback gain added to unity, 0 keeps the level
func WithGain(gain float64) ClientOption {
	return func(c *Client) {
		c.gain = gain
	}
}

// WithTimeout bounds a single synthesis request
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithClientLogger sets the logger
func WithClientLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a speech client
func NewClient(provider Provider, player Player, opts ...ClientOption) *Client {
	c := &Client{
		provider: provider,
		player:   player,
		gain:     0,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Provider returns the provider in use
func (c *Client) Provider() Provider {
	return c.provider
}

// Unlock resumes the audio output; call it from a user gesture before the
// first Speak
func (c *Client) Unlock() {
	c.player.Unlock()
}

// Speak synthesizes the word and starts playback. It returns once playback
// has been scheduled, not when it has finished.
func (c *Client) Speak(ctx context.Context, word string) error {
	_, err := c.speak(ctx, word)
	return err
}

// SpeakAndWait is like Speak but blocks until playback has finished
func (c *Client) SpeakAndWait(ctx context.Context, word string) error {
	done, err := c.speak(ctx, word)
	if err != nil {
		return err
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Client) speak(ctx context.Context, word string) (<-chan struct{}, error) {
	if err := ValidateText(word); err != nil {
		return nil, err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	speech, err := c.provider.Synthesize(ctx, word)
	if err != nil {
		c.logger.Error("Speech synthesis failed",
			zap.String("word", word),
			zap.String("provider", c.provider.Name()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to synthesize %q: %w", word, err)
	}
	if speech == nil || len(speech.PCM) == 0 {
		c.logger.Warn("No audio data returned", zap.String("word", word))
		return nil, ErrNoAudio
	}

	if len(speech.PCM)%2 != 0 {
		c.logger.Warn("Odd byte length for 16-bit PCM, trimming last byte",
			zap.String("word", word),
			zap.Int("bytes", len(speech.PCM)))
	}

	channels := speech.Channels
	if channels == 0 {
		channels = 1
	}
	buf, err := audio.DecodePCM(speech.PCM, speech.SampleRate, channels)
	if err != nil {
		return nil, fmt.Errorf("failed to decode audio for %q: %w", word, err)
	}

	c.logger.Debug("Speech synthesized",
		zap.String("word", word),
		zap.String("provider", c.provider.Name()),
		zap.Duration("latency", time.Since(start)),
		zap.Duration("length", buf.Duration()))

	done, err := c.player.Play(buf, c.gain)
	if err != nil {
		c.logger.Error("Audio playback failed", zap.String("word", word), zap.Error(err))
		return nil, fmt.Errorf("failed to play %q: %w", word, err)
	}
	return done, nil
}
