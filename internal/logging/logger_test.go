package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewTeesToExtraWriters(t *testing.T) {
	var stderr, viewer bytes.Buffer
	logger := newLogger(&stderr, false, &viewer, nil)

	logger.Info("Audio output running", zap.Int("sample_rate", 48000))
	logger.Debug("hidden at info level")

	assert.Contains(t, stderr.String(), "Audio output running")
	assert.Contains(t, viewer.String(), "Audio output running")
	assert.Contains(t, viewer.String(), `"sample_rate": 48000`)
	assert.NotContains(t, stderr.String(), "hidden at info level")
}

func TestNewVerbose(t *testing.T) {
	var stderr bytes.Buffer
	logger := newLogger(&stderr, true)

	logger.Debug("Playback scheduled")
	assert.Contains(t, stderr.String(), "Playback scheduled")
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))

	logger := zap.NewExample()
	assert.Same(t, logger, OrNop(logger))
}
