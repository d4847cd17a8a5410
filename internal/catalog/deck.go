package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DeckFile represents the top-level YAML structure for deck lists.
type DeckFile struct {
	Decks []DeckEntry `yaml:"decks"`
}

// DeckEntry represents a single named deck.
type DeckEntry struct {
	Name         string      `yaml:"name"`
	Headquarters string      `yaml:"headquarters"`
	Cards        []CardCount `yaml:"cards"`
}

// CardCount references a catalog card and how many copies the deck runs.
type CardCount struct {
	ID    string `yaml:"id"`
	Count int    `yaml:"count"`
}

// DeckList is a resolved deck: the headquarters template plus the main deck
// templates in list order (one slot per copy).
type DeckList struct {
	Name         string
	Headquarters *CardType
	Cards        []*CardType
}

// ParseDeckFile parses a YAML deck file and resolves every entry against the
// catalog, returning decks keyed by name.
func ParseDeckFile(path string, c *Catalog) (map[string]*DeckList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDecks(data, c)
}

// ParseDecks resolves YAML deck data against the catalog.
func ParseDecks(data []byte, c *Catalog) (map[string]*DeckList, error) {
	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("parse deck YAML: %w", err)
	}

	decks := make(map[string]*DeckList, len(df.Decks))
	for _, entry := range df.Decks {
		hq, ok := c.Lookup(entry.Headquarters)
		if !ok {
			return nil, fmt.Errorf("deck %s: unknown headquarters %s", entry.Name, entry.Headquarters)
		}
		if hq.Category != CategoryHeadquarters {
			return nil, fmt.Errorf("deck %s: card %s is not a headquarters", entry.Name, entry.Headquarters)
		}

		list := &DeckList{Name: entry.Name, Headquarters: hq}
		for _, cc := range entry.Cards {
			ct, ok := c.Lookup(cc.ID)
			if !ok {
				return nil, fmt.Errorf("deck %s: unknown card %s", entry.Name, cc.ID)
			}
			if ct.Category == CategoryHeadquarters {
				return nil, fmt.Errorf("deck %s: headquarters %s cannot be a main-deck card", entry.Name, cc.ID)
			}
			for i := 0; i < cc.Count; i++ {
				list.Cards = append(list.Cards, ct)
			}
		}
		decks[entry.Name] = list
	}
	return decks, nil
}
