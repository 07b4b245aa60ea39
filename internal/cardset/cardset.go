// Package cardset loads user-authored card set files: a named
// collection of cards with their image references and shapes. Set files
// are written in TOML or YAML and act as the card database a decklist
// is resolved against.
package cardset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/decksmith/decksmith/internal/card"
)

// File mirrors the on-disk layout of a set file. Set-level back and
// shape apply to every card that does not override them.
type File struct {
	Name        string               `toml:"name" yaml:"name"`
	Description string               `toml:"description" yaml:"description"`
	Back        string               `toml:"back" yaml:"back"`
	Shape       string               `toml:"shape" yaml:"shape"`
	Cards       map[string]CardEntry `toml:"cards" yaml:"cards"`
}

// CardEntry is one card in a set file.
type CardEntry struct {
	Front string `toml:"front" yaml:"front"`
	Back  string `toml:"back" yaml:"back"`
	Shape string `toml:"shape" yaml:"shape"`
}

// Set is a loaded card set. It resolves names case-insensitively.
type Set struct {
	Name  string
	cards map[string]setCard
}

var errNoImage = errors.New("no image reference configured")

// Load reads a set file. The format follows the file extension: .toml,
// .yaml or .yml. Two cards whose names differ only in case are rejected
// because lookup could not tell them apart.
func Load(path string) (*Set, error) {
	file, err := decodeFile(path)
	if err != nil {
		return nil, err
	}

	set := &Set{
		Name:  file.Name,
		cards: make(map[string]setCard, len(file.Cards)),
	}
	for name, entry := range file.Cards {
		key := foldName(name)
		if dup, ok := set.cards[key]; ok {
			return nil, fmt.Errorf("set %s: cards %q and %q differ only in case", path, dup.name, name)
		}
		set.cards[key] = newSetCard(name, entry, file)
	}
	return set, nil
}

// Resolve implements card.Resolver.
func (s *Set) Resolve(name string) (card.Card, error) {
	c, ok := s.cards[foldName(name)]
	if !ok {
		return nil, &card.Error{
			Name:  name,
			Facet: card.FacetLookup,
			Err:   fmt.Errorf("not in set %q", s.Name),
		}
	}
	return c, nil
}

// Len returns the number of cards in the set.
func (s *Set) Len() int {
	return len(s.cards)
}

func decodeFile(path string) (File, error) {
	var file File
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.DecodeFile(path, &file); err != nil {
			return File{}, fmt.Errorf("parsing set file %s: %w", path, err)
		}
	case ".yaml", ".yml":
		raw, err := os.ReadFile(path)
		if err != nil {
			return File{}, fmt.Errorf("reading set file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return File{}, fmt.Errorf("parsing set file %s: %w", path, err)
		}
	default:
		return File{}, fmt.Errorf("unsupported set file format: %s (supported: .toml, .yaml)", ext)
	}
	return file, nil
}

func foldName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// setCard resolves its images and shape against the set-level defaults
// at capability-call time, so an incomplete entry only fails when a
// build actually needs the missing facet.
type setCard struct {
	name  string
	front string
	back  string
	shape string
}

func newSetCard(name string, entry CardEntry, file File) setCard {
	c := setCard{
		name:  name,
		front: entry.Front,
		back:  entry.Back,
		shape: entry.Shape,
	}
	if c.back == "" {
		c.back = file.Back
	}
	if c.shape == "" {
		c.shape = file.Shape
	}
	return c
}

func (c setCard) Name() string {
	return c.name
}

func (c setCard) FrontImage() (string, error) {
	if c.front == "" {
		return "", &card.Error{Name: c.name, Facet: card.FacetFrontImage, Err: errNoImage}
	}
	return c.front, nil
}

func (c setCard) BackImage() (string, error) {
	if c.back == "" {
		return "", &card.Error{Name: c.name, Facet: card.FacetBackImage, Err: errNoImage}
	}
	return c.back, nil
}

// Shape parses the configured shape name. Cards without one default to
// standard rounded rectangles.
func (c setCard) Shape() (card.Shape, error) {
	if c.shape == "" {
		return card.RoundedRectangle, nil
	}
	shape, err := card.ParseShape(c.shape)
	if err != nil {
		return 0, &card.Error{Name: c.name, Facet: card.FacetShape, Err: err}
	}
	return shape, nil
}
