// Package models lists the Gemini models available to an API key and
// highlights the ones that can synthesize speech.
package models
