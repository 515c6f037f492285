package vocab

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// deckFile is the on-disk layout of a YAML deck
type deckFile struct {
	Name  string `yaml:"name"`
	Cards []Card `yaml:"cards"`
}

// Load reads a deck from a YAML file. The deck name defaults to the file
// name without extension.
func Load(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deck file: %w", err)
	}

	return Parse(data, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
}

// Parse decodes a YAML deck document
func Parse(data []byte, fallbackName string) (*Deck, error) {
	var f deckFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse deck: %w", err)
	}

	name := f.Name
	if name == "" {
		name = fallbackName
	}

	return New(name, f.Cards)
}

// LoadOrDefault loads the deck at path, or returns the built-in deck when
// path is empty
func LoadOrDefault(path string) (*Deck, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}
