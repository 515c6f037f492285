package testutil

import (
	"context"
	"encoding/binary"
	"sync"

	"codeberg.org/snonux/lingoflash/internal/audio"
	"codeberg.org/snonux/lingoflash/internal/speech"
)

// MockProvider implements speech.Provider for testing
type MockProvider struct {
	mu sync.Mutex

	ProviderName string
	Speech       *speech.Speech
	Err          error
	AvailableErr error

	// Block, when set, holds every Synthesize call until it is closed or
	// the context ends
	Block chan struct{}

	Calls []string
}

// Synthesize records the word and returns the configured result
func (m *MockProvider) Synthesize(ctx context.Context, word string) (*speech.Speech, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, word)
	block := m.Block
	m.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Speech != nil {
		return m.Speech, nil
	}
	return &speech.Speech{PCM: GeneratePCM(240), SampleRate: 24000, Channels: 1}, nil
}

// Name returns the configured name or "mock"
func (m *MockProvider) Name() string {
	if m.ProviderName == "" {
		return "mock"
	}
	return m.ProviderName
}

// IsAvailable returns AvailableErr
func (m *MockProvider) IsAvailable() error {
	return m.AvailableErr
}

// CallCount returns how many times Synthesize was called
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockPlayer implements speech.Player and records what it was asked to play
type MockPlayer struct {
	mu sync.Mutex

	Err     error
	Unlocks int
	Played  []*audio.Buffer
	Gains   []float64
}

// Unlock counts unlock calls
func (m *MockPlayer) Unlock() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Unlocks++
}

// Play records the buffer and reports playback as already finished
func (m *MockPlayer) Play(buf *audio.Buffer, gain float64) (<-chan struct{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	m.Played = append(m.Played, buf)
	m.Gains = append(m.Gains, gain)

	done := make(chan struct{})
	close(done)
	return done, nil
}

// PlayCount returns how many buffers were played
func (m *MockPlayer) PlayCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Played)
}

// GeneratePCM returns n frames of a quiet mono 16-bit ramp
func GeneratePCM(n int) []byte {
	data := make([]byte, n*2)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(int16(i%100*10)))
	}
	return data
}
