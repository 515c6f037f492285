package speech

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// ESpeakConfig holds configuration for espeak-ng audio generation
type ESpeakConfig struct {
	Voice     string // Voice variant (e.g., "en-us", "en-gb", "en-us+f3")
	Speed     int    // Speech speed in words per minute (default: 140)
	Pitch     int    // Pitch adjustment, 0 to 99 (default: 50)
	Amplitude int    // Volume/amplitude, 0 to 200 (default: 100)
	WordGap   int    // Gap between words in 10ms units (default: 0)
}

// DefaultESpeakConfig returns the default configuration for a US English voice
func DefaultESpeakConfig() *ESpeakConfig {
	return &ESpeakConfig{
		Voice:     "en-us",
		Speed:     140,
		Pitch:     50,
		Amplitude: 100,
		WordGap:   0,
	}
}

// ESpeakProvider is the offline provider backed by the espeak-ng binary
type ESpeakProvider struct {
	config *ESpeakConfig
	run    func(ctx context.Context, args []string) ([]byte, error)
}

// NewESpeakProvider creates a new espeak-ng provider
func NewESpeakProvider(config *ESpeakConfig) *ESpeakProvider {
	if config == nil {
		config = DefaultESpeakConfig()
	}
	return &ESpeakProvider{config: config, run: runESpeak}
}

// Synthesize renders the word to WAV on stdout and strips the header
func (p *ESpeakProvider) Synthesize(ctx context.Context, word string) (*Speech, error) {
	if err := ValidateText(word); err != nil {
		return nil, err
	}

	out, err := p.run(ctx, p.args(Normalize(word)))
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrNoAudio
	}

	return ParseWAV(out)
}

func (p *ESpeakProvider) args(text string) []string {
	args := []string{
		"-v", p.config.Voice,
		"-s", fmt.Sprintf("%d", clamp(p.config.Speed, 80, 450)),
		"-p", fmt.Sprintf("%d", clamp(p.config.Pitch, 0, 99)),
		"-a", fmt.Sprintf("%d", clamp(p.config.Amplitude, 0, 200)),
	}
	if p.config.WordGap > 0 {
		args = append(args, "-g", fmt.Sprintf("%d", p.config.WordGap))
	}
	return append(args, "--stdout", text)
}

// Name returns the provider name
func (p *ESpeakProvider) Name() string {
	return "espeak"
}

// IsAvailable checks if espeak-ng is installed
func (p *ESpeakProvider) IsAvailable() error {
	return checkESpeakInstalled()
}

func runESpeak(ctx context.Context, args []string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "espeak-ng", args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("espeak-ng failed: %w\nOutput: %s", err, stderr.String())
	}
	return stdout.Bytes(), nil
}

// checkESpeakInstalled verifies that espeak-ng is available on the system
func checkESpeakInstalled() error {
	cmd := exec.Command("espeak-ng", "--version")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("espeak-ng is not installed or not in PATH: %w", err)
	}
	return nil
}

// ListVoices returns common English voice variants
func ListVoices() []string {
	return []string{
		"en-us",    // Default American English voice
		"en-us+m3", // American male voice 3
		"en-us+f3", // American female voice 3
		"en-gb",    // British English
		"en-gb+f2", // British female voice 2
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
