package tts

import (
	"fmt"

	"github.com/decksmith/decksmith/internal/deck"
	"github.com/decksmith/decksmith/internal/sheet"
)

// InvariantError reports an inconsistency between the placements and
// sheets handed to document assembly. It indicates a packing bug, not
// bad user input.
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string {
	return "deck assembly invariant violated: " + e.Reason
}

// buildObjectStates assembles the deck object and its contained card
// objects from packed sheets. Cards keep their input order in both
// DeckIDs and ContainedObjects.
func buildObjectStates(cards []deck.PlacedCard, placements []sheet.Placement, sheets []sheet.Sheet) (ObjectState, error) {
	if len(placements) != len(cards) {
		return ObjectState{}, &InvariantError{
			Reason: fmt.Sprintf("%d cards but %d placements", len(cards), len(placements)),
		}
	}

	byID := make(map[int]sheet.Sheet, len(sheets))
	customDeck := make(map[int]CustomDeckState, len(sheets))
	for _, sh := range sheets {
		byID[sh.ID] = sh
		customDeck[sh.ID] = newCustomDeckState(sh)
	}

	deckIDs := make([]int, 0, len(cards))
	contained := make([]ObjectState, 0, len(cards))
	for i, c := range cards {
		p := placements[i]
		sh, ok := byID[p.SheetID]
		if !ok {
			return ObjectState{}, &InvariantError{
				Reason: fmt.Sprintf("card %q placed on unknown sheet %d", c.Name, p.SheetID),
			}
		}
		id := p.SheetID*100 + p.Row*sh.Columns + p.Column
		deckIDs = append(deckIDs, id)

		obj := newObjectState("CardCustom")
		obj.Nickname = c.Name
		obj.CardID = id
		obj.Hands = true
		obj.CustomDeck = map[int]CustomDeckState{sh.ID: customDeck[sh.ID]}
		contained = append(contained, obj)
	}

	root := newObjectState("Deck")
	root.Transform.RotY = 180
	root.DeckIDs = deckIDs
	root.CustomDeck = customDeck
	root.ContainedObjects = contained
	return root, nil
}

// newCustomDeckState maps a packed sheet onto the simulator's sprite
// sheet record. FaceURL carries the first placed front reference; a
// compositing step that rendered the sheet replaces it with the
// finished image.
func newCustomDeckState(sh sheet.Sheet) CustomDeckState {
	var face string
	if len(sh.Faces) > 0 {
		face = sh.Faces[0]
	}
	return CustomDeckState{
		FaceURL:      face,
		BackURL:      sh.BackURL,
		NumWidth:     sh.Columns,
		NumHeight:    sh.Rows,
		BackIsHidden: true,
		Type:         int(sh.Shape),
	}
}
