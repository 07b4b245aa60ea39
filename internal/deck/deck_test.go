package deck

import (
	"errors"
	"testing"

	"github.com/decksmith/decksmith/internal/card"
)

// stubCard lets each capability fail independently.
type stubCard struct {
	name     string
	front    string
	back     string
	shape    card.Shape
	frontErr error
	backErr  error
	shapeErr error
}

func (s stubCard) Name() string { return s.name }

func (s stubCard) FrontImage() (string, error) {
	if s.frontErr != nil {
		return "", s.frontErr
	}
	return s.front, nil
}

func (s stubCard) BackImage() (string, error) {
	if s.backErr != nil {
		return "", s.backErr
	}
	return s.back, nil
}

func (s stubCard) Shape() (card.Shape, error) {
	if s.shapeErr != nil {
		return 0, s.shapeErr
	}
	return s.shape, nil
}

func ok(name string, shape card.Shape) stubCard {
	return stubCard{
		name:  name,
		front: "https://img.test/" + name + ".png",
		back:  "https://img.test/back.png",
		shape: shape,
	}
}

func TestNormalizePreservesOrder(t *testing.T) {
	cards := []card.Card{
		ok("Alpha", card.Rectangle),
		ok("Beta", card.Circle),
		ok("Gamma", card.Rectangle),
	}

	placed, err := Normalize(cards)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if len(placed) != 3 {
		t.Fatalf("got %d placed cards, want 3", len(placed))
	}
	for i, want := range []string{"Alpha", "Beta", "Gamma"} {
		if placed[i].Name != want {
			t.Errorf("placed[%d].Name = %q, want %q", i, placed[i].Name, want)
		}
	}
}

func TestNormalizeKeepsDuplicates(t *testing.T) {
	c := ok("Opt", card.RoundedRectangle)
	placed, err := Normalize([]card.Card{c, c, c})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if len(placed) != 3 {
		t.Fatalf("got %d placed cards, want 3: duplicates are distinct slots", len(placed))
	}
}

func TestNormalizeFailures(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name      string
		card      stubCard
		wantFacet string
	}{
		{
			name:      "front image error",
			card:      stubCard{name: "A", frontErr: boom},
			wantFacet: card.FacetFrontImage,
		},
		{
			name:      "back image error",
			card:      stubCard{name: "B", front: "https://x/f.png", backErr: boom},
			wantFacet: card.FacetBackImage,
		},
		{
			name:      "shape error",
			card:      stubCard{name: "C", front: "https://x/f.png", back: "https://x/b.png", shapeErr: boom},
			wantFacet: card.FacetShape,
		},
		{
			name:      "empty front reference",
			card:      stubCard{name: "D", back: "https://x/b.png"},
			wantFacet: card.FacetFrontImage,
		},
		{
			name:      "unsupported shape code",
			card:      stubCard{name: "E", front: "https://x/f.png", back: "https://x/b.png", shape: card.Shape(42)},
			wantFacet: card.FacetShape,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize([]card.Card{tt.card})
			if err == nil {
				t.Fatal("expected error")
			}
			var cerr *card.Error
			if !errors.As(err, &cerr) {
				t.Fatalf("want *card.Error, got %T: %v", err, err)
			}
			if cerr.Name != tt.card.name {
				t.Errorf("error names card %q, want %q", cerr.Name, tt.card.name)
			}
			if cerr.Facet != tt.wantFacet {
				t.Errorf("error facet = %q, want %q", cerr.Facet, tt.wantFacet)
			}
		})
	}
}

func TestNormalizeKeepsTypedErrors(t *testing.T) {
	orig := &card.Error{Name: "Weird", Facet: card.FacetFrontImage, Err: errors.New("no scan")}
	c := stubCard{name: "Weird", frontErr: orig}

	_, err := Normalize([]card.Card{c})
	var cerr *card.Error
	if !errors.As(err, &cerr) {
		t.Fatalf("want *card.Error, got %T", err)
	}
	if cerr != orig {
		t.Error("implementation's own card.Error should pass through unwrapped")
	}
}

func TestGroupKey(t *testing.T) {
	a := PlacedCard{Name: "A", FrontURL: "f1", BackURL: "b", Shape: card.Rectangle}
	b := PlacedCard{Name: "B", FrontURL: "f2", BackURL: "b", Shape: card.Rectangle}
	c := PlacedCard{Name: "C", FrontURL: "f3", BackURL: "b", Shape: card.Circle}

	if a.Group() != b.Group() {
		t.Error("same back and shape should share a group")
	}
	if a.Group() == c.Group() {
		t.Error("different shapes should not share a group")
	}
}
