package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog holds the published card templates in load order.
type Catalog struct {
	ordered []*CardType
	byID    map[string]*CardType
}

// catalogFile represents the top-level YAML structure.
type catalogFile struct {
	Cards []CardType `yaml:"cards"`
}

// New builds a catalog from already-constructed templates. Templates are
// validated and published by reference; callers must not mutate them after.
func New(cards []*CardType) (*Catalog, error) {
	c := &Catalog{
		ordered: make([]*CardType, 0, len(cards)),
		byID:    make(map[string]*CardType, len(cards)),
	}
	for _, ct := range cards {
		if ct == nil {
			return nil, fmt.Errorf("catalog: nil card template")
		}
		if err := ct.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[ct.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate card id %s", ct.ID)
		}
		c.ordered = append(c.ordered, ct)
		c.byID[ct.ID] = ct
	}
	return c, nil
}

// Load parses a YAML catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses YAML catalog data.
func Parse(data []byte) (*Catalog, error) {
	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}
	cards := make([]*CardType, len(cf.Cards))
	for i := range cf.Cards {
		cards[i] = &cf.Cards[i]
	}
	return New(cards)
}

// Lookup returns the template with the given id.
func (c *Catalog) Lookup(id string) (*CardType, bool) {
	ct, ok := c.byID[id]
	return ct, ok
}

// Cards returns the templates in load order.
func (c *Catalog) Cards() []*CardType {
	out := make([]*CardType, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Len returns the number of published templates.
func (c *Catalog) Len() int {
	return len(c.ordered)
}
