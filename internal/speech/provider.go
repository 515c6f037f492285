package speech

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrNoAudio is returned when a backend answers without an audio payload
	ErrNoAudio = errors.New("no audio data returned")
	// ErrServiceUnavailable is returned while the circuit breaker is open
	ErrServiceUnavailable = errors.New("speech service unavailable")
)

// Speech is raw signed 16-bit little-endian PCM
type Speech struct {
	PCM        []byte
	SampleRate int
	Channels   int
}

// Provider defines the interface for text-to-speech backends
type Provider interface {
	// Synthesize returns spoken audio for a vocabulary word
	Synthesize(ctx context.Context, word string) (*Speech, error)

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and available
	IsAvailable() error
}

// Config holds configuration for all providers
type Config struct {
	Provider string // "gemini", "openai", "gcp" or "espeak"
	Fallback string // optional second provider, "" for none

	// Gemini settings
	GeminiKey   string
	GeminiModel string
	GeminiVoice string

	// OpenAI settings
	OpenAIKey         string
	OpenAIModel       string // "tts-1", "tts-1-hd", or "gpt-4o-mini-tts"
	OpenAIVoice       string
	OpenAISpeed       float64 // 0.25 to 4.0
	OpenAIInstruction string  // only honoured by gpt-4o-mini-tts

	// Google Cloud Text-to-Speech settings (credentials via ADC)
	GCPLanguage string
	GCPVoice    string

	// espeak-ng settings
	ESpeak *ESpeakConfig

	// Breaker trips after this many consecutive failures; 0 disables it
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

// DefaultProviderConfig returns default configuration
func DefaultProviderConfig() *Config {
	return &Config{
		Provider:          "gemini",
		GeminiModel:       DefaultGeminiModel,
		GeminiVoice:       DefaultGeminiVoice,
		OpenAIModel:       "gpt-4o-mini-tts",
		OpenAIVoice:       "alloy",
		OpenAISpeed:       1.0,
		OpenAIInstruction: "Speak slowly and clearly for language learners, with standard English pronunciation.",
		GCPLanguage:       "en-US",
		GCPVoice:          "en-US-Neural2-F",
		ESpeak:            DefaultESpeakConfig(),
		BreakerFailures:   5,
		BreakerTimeout:    30 * time.Second,
	}
}

// NewProvider builds the configured provider, including the optional
// fallback and circuit breaker
func NewProvider(config *Config, logger *zap.Logger) (Provider, error) {
	if config == nil {
		config = DefaultProviderConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	primary, err := newSingleProvider(config.Provider, config)
	if err != nil {
		return nil, err
	}
	if config.BreakerFailures > 0 {
		primary = NewBreaker(primary, config.BreakerFailures, config.BreakerTimeout, logger)
	}

	if config.Fallback == "" || config.Fallback == config.Provider {
		return primary, nil
	}

	fallback, err := newSingleProvider(config.Fallback, config)
	if err != nil {
		return nil, fmt.Errorf("fallback provider: %w", err)
	}
	return NewProviderWithFallback(primary, fallback, logger), nil
}

func newSingleProvider(name string, config *Config) (Provider, error) {
	switch name {
	case "gemini":
		if config.GeminiKey == "" {
			return nil, fmt.Errorf("Gemini API key is required")
		}
		return NewGeminiProvider(config)

	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return NewOpenAIProvider(config)

	case "gcp":
		return NewGCPProvider(config), nil

	case "espeak":
		return NewESpeakProvider(config.ESpeak), nil

	default:
		return nil, fmt.Errorf("unknown speech provider: %s", name)
	}
}

// ProviderWithFallback wraps a primary provider with a fallback option
type ProviderWithFallback struct {
	primary  Provider
	fallback Provider
	logger   *zap.Logger
}

// NewProviderWithFallback creates a provider that falls back to secondary if primary fails
func NewProviderWithFallback(primary, fallback Provider, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProviderWithFallback{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Synthesize tries primary provider first, falls back to secondary on error
func (p *ProviderWithFallback) Synthesize(ctx context.Context, word string) (*Speech, error) {
	speech, err := p.primary.Synthesize(ctx, word)
	if err == nil {
		return speech, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	p.logger.Warn("Primary speech provider failed, using fallback",
		zap.String("primary", p.primary.Name()),
		zap.String("fallback", p.fallback.Name()),
		zap.Error(err))

	return p.fallback.Synthesize(ctx, word)
}

// Name returns the provider name
func (p *ProviderWithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", p.primary.Name(), p.fallback.Name())
}

// IsAvailable checks if at least one provider is available
func (p *ProviderWithFallback) IsAvailable() error {
	primaryErr := p.primary.IsAvailable()
	if primaryErr == nil {
		return nil
	}

	fallbackErr := p.fallback.IsAvailable()
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("both providers unavailable: primary=%v, fallback=%v",
		primaryErr, fallbackErr)
}
