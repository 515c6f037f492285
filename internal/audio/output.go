package audio

import (
	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// Output is the platform sink the engine plays through. The production
// implementation is the beep speaker; tests use a recording fake.
type Output interface {
	// Init opens the device at the given sample rate
	Init(rate beep.SampleRate, bufferSize int) error

	// Play queues streamers for immediate playback
	Play(s ...beep.Streamer)
}

// SpeakerOutput plays through github.com/faiface/beep/speaker
type SpeakerOutput struct{}

// Init implements Output
func (SpeakerOutput) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}

// Play implements Output
func (SpeakerOutput) Play(s ...beep.Streamer) {
	speaker.Play(s...)
}
