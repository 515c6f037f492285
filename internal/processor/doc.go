// Package processor contains the application logic behind each command
// line mode. It loads the deck, builds the speech provider from flags and
// configuration, and coordinates pronunciation, listing, Anki export and
// the GUI.
package processor
