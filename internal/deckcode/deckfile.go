package deckcode

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DeckFile represents the top-level YAML structure.
type DeckFile struct {
	Decks []DeckEntry `yaml:"decks"`
}

// DeckEntry is a named deck string.
type DeckEntry struct {
	Name string `yaml:"name"`
	Code string `yaml:"code"`
}

// ParseDeckFileData parses YAML deck file contents.
func ParseDeckFileData(data []byte) (*DeckFile, error) {
	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("parse deck YAML: %w", err)
	}
	return &df, nil
}

// ParseDeckFile reads and parses a YAML deck file.
func ParseDeckFile(path string) (*DeckFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDeckFileData(data)
}

// DeckByNumber returns the Nth deck (1-indexed) from the deck file.
func DeckByNumber(path string, n int) (DeckEntry, error) {
	df, err := ParseDeckFile(path)
	if err != nil {
		return DeckEntry{}, err
	}
	if n < 1 || n > len(df.Decks) {
		return DeckEntry{}, fmt.Errorf("deck %d not found (have %d decks)", n, len(df.Decks))
	}
	return df.Decks[n-1], nil
}
