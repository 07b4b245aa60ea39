// Package deck turns abstract cards into placed cards: concrete descriptors
// with every visual property resolved, ready for sheet packing.
package deck

import (
	"errors"
	"fmt"

	"github.com/decksmith/decksmith/internal/card"
)

// PlacedCard is one physical card slot in the deck, with its image
// references and shape resolved.
type PlacedCard struct {
	Name     string
	FrontURL string
	BackURL  string
	Shape    card.Shape
}

// GroupKey identifies the cards that can share a sheet: those with the same
// back image and the same shape.
type GroupKey struct {
	BackURL string
	Shape   card.Shape
}

// Group returns the sheet-sharing key for the card. It is a pure function of
// the card's back image and shape.
func (p PlacedCard) Group() GroupKey {
	return GroupKey{BackURL: p.BackURL, Shape: p.Shape}
}

// Normalize resolves every card in order by calling its own capability
// methods. The first failure aborts with an error naming the card and the
// failing facet. Output order matches input order, and repeated cards stay
// repeated: a deck holds one slot per listed copy.
func Normalize(cards []card.Card) ([]PlacedCard, error) {
	placed := make([]PlacedCard, 0, len(cards))
	for _, c := range cards {
		name := c.Name()

		front, err := c.FrontImage()
		if err != nil {
			return nil, capabilityError(name, card.FacetFrontImage, err)
		}
		if front == "" {
			return nil, &card.Error{Name: name, Facet: card.FacetFrontImage, Err: errors.New("empty image reference")}
		}

		back, err := c.BackImage()
		if err != nil {
			return nil, capabilityError(name, card.FacetBackImage, err)
		}
		if back == "" {
			return nil, &card.Error{Name: name, Facet: card.FacetBackImage, Err: errors.New("empty image reference")}
		}

		shape, err := c.Shape()
		if err != nil {
			return nil, capabilityError(name, card.FacetShape, err)
		}
		if !shape.Valid() {
			return nil, &card.Error{Name: name, Facet: card.FacetShape, Err: fmt.Errorf("unsupported shape code %d", int(shape))}
		}

		placed = append(placed, PlacedCard{
			Name:     name,
			FrontURL: front,
			BackURL:  back,
			Shape:    shape,
		})
	}
	return placed, nil
}

// capabilityError keeps an implementation's own *card.Error intact and
// wraps anything else so the card name and facet are never lost.
func capabilityError(name, facet string, err error) error {
	var cerr *card.Error
	if errors.As(err, &cerr) {
		return err
	}
	return &card.Error{Name: name, Facet: facet, Err: err}
}
