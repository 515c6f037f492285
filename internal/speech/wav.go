package speech

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// ParseWAV extracts the 16-bit PCM payload from a RIFF/WAVE container.
// espeak-ng streams WAV with zeroed size fields, so a data chunk that runs
// past the end of the input is cut at the end of the input.
func ParseWAV(data []byte) (*Speech, error) {
	if len(data) < 12 || !bytes.Equal(data[0:4], []byte("RIFF")) || !bytes.Equal(data[8:12], []byte("WAVE")) {
		return nil, fmt.Errorf("not a WAV stream")
	}

	var (
		speech    Speech
		haveFmt   bool
		bitsPerSm uint16
	)

	pos := 12
	for pos+8 <= len(data) {
		id := string(data[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		body := pos + 8

		switch id {
		case "fmt ":
			if body+16 > len(data) {
				return nil, fmt.Errorf("truncated fmt chunk")
			}
			format := binary.LittleEndian.Uint16(data[body : body+2])
			speech.Channels = int(binary.LittleEndian.Uint16(data[body+2 : body+4]))
			speech.SampleRate = int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			bitsPerSm = binary.LittleEndian.Uint16(data[body+14 : body+16])
			if format != 1 || bitsPerSm != 16 {
				return nil, fmt.Errorf("unsupported WAV encoding: format %d, %d bits", format, bitsPerSm)
			}
			haveFmt = true

		case "data":
			if !haveFmt {
				return nil, fmt.Errorf("data chunk before fmt chunk")
			}
			end := body + size
			if size == 0 || end > len(data) || end < body {
				end = len(data)
			}
			speech.PCM = data[body:end]
			return &speech, nil
		}

		pos = body + size + size%2
	}

	return nil, ErrNoAudio
}
