// Package session holds the transient review state: which card is shown,
// whether it is flipped, and whether a pronunciation is playing.
package session
