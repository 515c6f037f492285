// Package audio wraps the process-wide audio output. It owns a single
// lazily initialised output context, knows how to unlock it before the
// first real playback, and turns raw 16-bit PCM into playable buffers.
package audio
