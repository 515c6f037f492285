package speech

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeWAV(t *testing.T, rate, channels int, pcm []byte, dataSize uint32) []byte {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(36+len(pcm))))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	for _, v := range []any{
		uint32(16), uint16(1), uint16(channels), uint32(rate),
		uint32(rate * channels * 2), uint16(channels * 2), uint16(16),
	} {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, v))
	}
	buf.WriteString("data")
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, dataSize))
	buf.Write(pcm)
	return buf.Bytes()
}

func TestParseWAV(t *testing.T) {
	pcm := []byte{0x00, 0x40, 0x00, 0xc0}

	t.Run("regular header", func(t *testing.T) {
		speech, err := ParseWAV(makeWAV(t, 22050, 1, pcm, uint32(len(pcm))))
		require.NoError(t, err)
		assert.Equal(t, 22050, speech.SampleRate)
		assert.Equal(t, 1, speech.Channels)
		assert.Equal(t, pcm, speech.PCM)
	})

	t.Run("streamed header with unknown size", func(t *testing.T) {
		speech, err := ParseWAV(makeWAV(t, 22050, 1, pcm, 0xffffffff))
		require.NoError(t, err)
		assert.Equal(t, pcm, speech.PCM)
	})

	t.Run("not a wav", func(t *testing.T) {
		_, err := ParseWAV([]byte("ID3 definitely an mp3"))
		assert.Error(t, err)
	})

	t.Run("no data chunk", func(t *testing.T) {
		data := makeWAV(t, 24000, 1, nil, 0)
		_, err := ParseWAV(data[:len(data)-8])
		assert.ErrorIs(t, err, ErrNoAudio)
	})
}
