package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
)

// pcmScale maps int16 samples onto [-1, 1]
const pcmScale = 32768.0

// ErrInvalidFormat is returned for a non-positive sample rate or channel count
var ErrInvalidFormat = errors.New("invalid audio format")

// Buffer is decoded, normalised audio ready for playback
type Buffer struct {
	SampleRate int
	samples    [][]float64 // one slice per channel
}

// DecodePCM converts signed 16-bit little-endian PCM into a Buffer.
// A trailing odd byte and a trailing incomplete frame are dropped.
// Empty input yields a zero-length buffer.
func DecodePCM(data []byte, sampleRate, channels int) (*Buffer, error) {
	if sampleRate < 1 || channels < 1 {
		return nil, fmt.Errorf("%w: rate=%d channels=%d", ErrInvalidFormat, sampleRate, channels)
	}

	if len(data)%2 != 0 {
		data = data[:len(data)-1]
	}

	frames := len(data) / 2 / channels
	samples := make([][]float64, channels)
	for c := range samples {
		samples[c] = make([]float64, frames)
	}

	for i := 0; i < frames; i++ {
		for c := 0; c < channels; c++ {
			off := (i*channels + c) * 2
			v := int16(binary.LittleEndian.Uint16(data[off : off+2]))
			samples[c][i] = float64(v) / pcmScale
		}
	}

	return &Buffer{SampleRate: sampleRate, samples: samples}, nil
}

// Channels returns the channel count
func (b *Buffer) Channels() int {
	return len(b.samples)
}

// Len returns the number of frames
func (b *Buffer) Len() int {
	if len(b.samples) == 0 {
		return 0
	}
	return len(b.samples[0])
}

// Channel returns the samples of channel c
func (b *Buffer) Channel(c int) []float64 {
	return b.samples[c]
}

// Duration returns the playback length
func (b *Buffer) Duration() time.Duration {
	return beep.SampleRate(b.SampleRate).D(b.Len())
}

// Format returns the beep format describing the buffer
func (b *Buffer) Format() beep.Format {
	return beep.Format{
		SampleRate:  beep.SampleRate(b.SampleRate),
		NumChannels: b.Channels(),
		Precision:   2,
	}
}

// Streamer returns a fresh stream over the buffer. Mono buffers feed both
// speaker channels.
func (b *Buffer) Streamer() beep.StreamSeeker {
	return &bufferStreamer{buf: b}
}

type bufferStreamer struct {
	buf *Buffer
	pos int
}

func (s *bufferStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	total := s.buf.Len()
	if s.pos >= total {
		return 0, false
	}

	stereo := s.buf.Channels() > 1
	for n < len(samples) && s.pos < total {
		left := s.buf.samples[0][s.pos]
		right := left
		if stereo {
			right = s.buf.samples[1][s.pos]
		}
		samples[n][0], samples[n][1] = left, right
		n++
		s.pos++
	}
	return n, true
}

func (s *bufferStreamer) Err() error { return nil }

func (s *bufferStreamer) Len() int { return s.buf.Len() }

func (s *bufferStreamer) Position() int { return s.pos }

func (s *bufferStreamer) Seek(p int) error {
	if p < 0 || p > s.buf.Len() {
		return fmt.Errorf("seek position %d out of range [0, %d]", p, s.buf.Len())
	}
	s.pos = p
	return nil
}

// EncodeWAV writes the buffer as 16-bit PCM WAV
func EncodeWAV(w io.WriteSeeker, b *Buffer) error {
	if err := wav.Encode(w, b.Streamer(), b.Format()); err != nil {
		return fmt.Errorf("failed to encode wav: %w", err)
	}
	return nil
}
