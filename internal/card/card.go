package card

import (
	"fmt"
	"strings"
)

// Card is the capability contract for anything that can sit in a deck.
// Implementations decide where names and images come from; the rest of the
// tool only ever talks to this interface.
type Card interface {
	// Name returns the card's display name.
	Name() string
	// FrontImage returns the URL or path of the card's front face.
	FrontImage() (string, error)
	// BackImage returns the URL or path of the card's back face.
	BackImage() (string, error)
	// Shape returns the card's physical shape.
	Shape() (Shape, error)
}

// Resolver turns a card name into a Card. It is the lookup half of the
// contract: decklist parsing hands every name to a Resolver, and card
// sources (set files, Scryfall, ...) implement it.
type Resolver interface {
	Resolve(name string) (Card, error)
}

// Shape enumerates the card shapes Tabletop Simulator supports. The integer
// values are the save-file type codes and must not be reordered.
type Shape int

const (
	RoundedRectangle Shape = iota
	Rectangle
	RoundedHexagon
	Hexagon
	Circle
)

var shapeNames = map[Shape]string{
	RoundedRectangle: "RoundedRectangle",
	Rectangle:        "Rectangle",
	RoundedHexagon:   "RoundedHexagon",
	Hexagon:          "Hexagon",
	Circle:           "Circle",
}

func (s Shape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// Valid reports whether s is one of the known shape codes.
func (s Shape) Valid() bool {
	_, ok := shapeNames[s]
	return ok
}

// ParseShape converts a shape name into a Shape. Matching is
// case-insensitive and accepts a few common shorthands.
func ParseShape(name string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "roundedrectangle", "rounded-rectangle", "rounded_rectangle", "rounded":
		return RoundedRectangle, nil
	case "rectangle", "rect":
		return Rectangle, nil
	case "roundedhexagon", "rounded-hexagon", "rounded_hexagon":
		return RoundedHexagon, nil
	case "hexagon", "hex":
		return Hexagon, nil
	case "circle", "round":
		return Circle, nil
	}
	return 0, fmt.Errorf("unknown card shape: %q", name)
}

// Facet names for Error. Each identifies the capability call that failed.
const (
	FacetLookup     = "lookup"
	FacetFrontImage = "front image"
	FacetBackImage  = "back image"
	FacetShape      = "shape"
)

// Error reports that one of a card's capabilities failed. It always carries
// the card's name and the facet (lookup, front image, back image, shape)
// that could not be resolved.
type Error struct {
	Name  string
	Facet string
	Err   error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("card %q: %s", e.Name, e.Facet)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}
