// Package speech turns a vocabulary word into spoken audio. Providers talk
// to a text-to-speech backend and return raw 16-bit PCM; the Client
// decodes that PCM through the audio engine and plays it.
package speech
