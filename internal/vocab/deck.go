package vocab

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyDeck is returned when a deck has no cards
	ErrEmptyDeck = errors.New("deck has no cards")
	// ErrDuplicateID is returned when two cards share an identifier
	ErrDuplicateID = errors.New("duplicate card id")
	// ErrEmptyWord is returned when a card has no word
	ErrEmptyWord = errors.New("card word is empty")
)

// Card is a single vocabulary entry
type Card struct {
	ID         int    `yaml:"id"`
	Word       string `yaml:"word"`
	Phonetics  string `yaml:"phonetics"`
	Type       string `yaml:"type"` // n, adj, idiom, ...
	Definition string `yaml:"definition"`
	Example    string `yaml:"example"`
}

// Deck is an ordered, read-only sequence of cards
type Deck struct {
	name  string
	cards []Card
}

// New validates cards and returns a deck holding its own copy of them
func New(name string, cards []Card) (*Deck, error) {
	if len(cards) == 0 {
		return nil, ErrEmptyDeck
	}

	seen := make(map[int]int, len(cards))
	for i, c := range cards {
		if strings.TrimSpace(c.Word) == "" {
			return nil, fmt.Errorf("card #%d (id %d): %w", i+1, c.ID, ErrEmptyWord)
		}
		if prev, ok := seen[c.ID]; ok {
			return nil, fmt.Errorf("cards #%d and #%d share id %d: %w", prev+1, i+1, c.ID, ErrDuplicateID)
		}
		seen[c.ID] = i
	}

	owned := make([]Card, len(cards))
	copy(owned, cards)

	return &Deck{name: name, cards: owned}, nil
}

// Name returns the deck name
func (d *Deck) Name() string {
	return d.name
}

// Len returns the number of cards
func (d *Deck) Len() int {
	return len(d.cards)
}

// At returns the card at position i. It panics when i is out of range,
// like a slice index would.
func (d *Deck) At(i int) Card {
	return d.cards[i]
}

// Cards returns a copy of all cards in order
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// IndexOf returns the position of the card with the given id, or -1
func (d *Deck) IndexOf(id int) int {
	for i, c := range d.cards {
		if c.ID == id {
			return i
		}
	}
	return -1
}
