package tts

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/decksmith/decksmith/internal/card"
	"github.com/decksmith/decksmith/internal/deck"
	"github.com/decksmith/decksmith/internal/sheet"
)

type testCard struct {
	name  string
	front string
	back  string
	shape card.Shape
}

func (c testCard) Name() string { return c.name }
func (c testCard) FrontImage() (string, error) { return c.front, nil }
func (c testCard) BackImage() (string, error) { return c.back, nil }
func (c testCard) Shape() (card.Shape, error) { return c.shape, nil }

type shapelessCard struct{ testCard }

func (c shapelessCard) Shape() (card.Shape, error) {
	return 0, errors.New("shape service down")
}

func sampleDeck() []card.Card {
	return []card.Card{
		testCard{"Lightning Bolt", "https://img.test/bolt.png", "https://img.test/back.png", card.RoundedRectangle},
		testCard{"Island", "https://img.test/island.png", "https://img.test/back.png", card.RoundedRectangle},
		testCard{"Island", "https://img.test/island.png", "https://img.test/back.png", card.RoundedRectangle},
		testCard{"Token", "https://img.test/token.png", "https://img.test/back.png", card.Circle},
	}
}

func TestNewWithDeckBuildsOneRecordPerCard(t *testing.T) {
	cards := sampleDeck()
	save, err := NewWithDeck(cards, sheet.DefaultConfig())
	if err != nil {
		t.Fatalf("NewWithDeck: %v", err)
	}

	if len(save.ObjectStates) != 1 {
		t.Fatalf("got %d top-level objects, want 1", len(save.ObjectStates))
	}
	root := save.ObjectStates[0]
	if root.Name != "Deck" {
		t.Errorf("root object name = %q, want Deck", root.Name)
	}
	if root.Transform.RotY != 180 {
		t.Errorf("deck rotY = %v, want 180", root.Transform.RotY)
	}
	if root.Hands {
		t.Error("deck must not be holdable in hands")
	}
	if len(root.ContainedObjects) != len(cards) {
		t.Fatalf("got %d contained cards, want %d", len(root.ContainedObjects), len(cards))
	}
	if len(root.DeckIDs) != len(cards) {
		t.Fatalf("got %d deck IDs, want %d", len(root.DeckIDs), len(cards))
	}

	for i, obj := range root.ContainedObjects {
		if obj.Name != "CardCustom" {
			t.Errorf("card %d object name = %q, want CardCustom", i, obj.Name)
		}
		if obj.Nickname != cards[i].Name() {
			t.Errorf("card %d nickname = %q, want %q", i, obj.Nickname, cards[i].Name())
		}
		if !obj.Hands {
			t.Errorf("card %d must be holdable in hands", i)
		}
		if obj.CardID != root.DeckIDs[i] {
			t.Errorf("card %d ID %d does not match DeckIDs entry %d", i, obj.CardID, root.DeckIDs[i])
		}
		sheetID := obj.CardID / 100
		if _, ok := root.CustomDeck[sheetID]; !ok {
			t.Errorf("card %d references sheet %d missing from the deck's CustomDeck", i, sheetID)
		}
		if _, ok := obj.CustomDeck[sheetID]; !ok {
			t.Errorf("card %d lacks its own CustomDeck entry for sheet %d", i, sheetID)
		}
	}

	// Duplicate Islands stay distinct records.
	if root.ContainedObjects[1].CardID == root.ContainedObjects[2].CardID {
		t.Error("duplicate cards collapsed onto one sheet cell")
	}
}

func TestNewWithDeckSingleCellSheets(t *testing.T) {
	// Capacity 1 gives every card its own sheet and the classic
	// hundred-series IDs.
	cards := sampleDeck()[:3]
	save, err := NewWithDeck(cards, sheet.Config{Capacity: 1, Columns: 1})
	if err != nil {
		t.Fatal(err)
	}

	root := save.ObjectStates[0]
	want := []int{100, 200, 300}
	if diff := cmp.Diff(want, root.DeckIDs); diff != "" {
		t.Errorf("deck IDs mismatch (-want +got):\n%s", diff)
	}
	for id, state := range root.CustomDeck {
		if state.NumWidth != 1 || state.NumHeight != 1 {
			t.Errorf("sheet %d grid = %dx%d, want 1x1", id, state.NumWidth, state.NumHeight)
		}
		if !state.BackIsHidden || state.UniqueBack {
			t.Errorf("sheet %d back flags = hidden %v, unique %v", id, state.BackIsHidden, state.UniqueBack)
		}
	}
}

func TestNewWithDeckSheetRecords(t *testing.T) {
	save, err := NewWithDeck(sampleDeck(), sheet.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	root := save.ObjectStates[0]
	if len(root.CustomDeck) != 2 {
		t.Fatalf("got %d sheet records, want 2", len(root.CustomDeck))
	}
	rounded := root.CustomDeck[1]
	if rounded.Type != int(card.RoundedRectangle) {
		t.Errorf("sheet 1 type = %d, want %d", rounded.Type, int(card.RoundedRectangle))
	}
	if rounded.NumWidth != 3 || rounded.NumHeight != 1 {
		t.Errorf("sheet 1 grid = %dx%d, want 3x1", rounded.NumWidth, rounded.NumHeight)
	}
	if rounded.FaceURL != "https://img.test/bolt.png" {
		t.Errorf("sheet 1 face = %q, want the first placed front", rounded.FaceURL)
	}
	circle := root.CustomDeck[2]
	if circle.Type != int(card.Circle) {
		t.Errorf("sheet 2 type = %d, want %d", circle.Type, int(card.Circle))
	}
}

func TestNewWithDeckDeterministic(t *testing.T) {
	s1, err := NewWithDeck(sampleDeck(), sheet.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	s2, err := NewWithDeck(sampleDeck(), sheet.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	ignoreGUIDs := cmpopts.IgnoreFields(ObjectState{}, "GUID")
	if diff := cmp.Diff(s1, s2, ignoreGUIDs); diff != "" {
		t.Errorf("save states differ between runs:\n%s", diff)
	}
}

func TestNewWithDeckPropagatesCardError(t *testing.T) {
	cards := []card.Card{
		sampleDeck()[0],
		shapelessCard{testCard{name: "Borken", front: "f", back: "b"}},
	}

	_, err := NewWithDeck(cards, sheet.DefaultConfig())
	var cerr *card.Error
	if !errors.As(err, &cerr) {
		t.Fatalf("want *card.Error, got %T: %v", err, err)
	}
	if cerr.Name != "Borken" || cerr.Facet != card.FacetShape {
		t.Errorf("error identifies %q/%s, want Borken/%s", cerr.Name, cerr.Facet, card.FacetShape)
	}
}

func TestNewWithDeckRejectsBadConfig(t *testing.T) {
	_, err := NewWithDeck(sampleDeck(), sheet.Config{Capacity: 4, Columns: 3})
	var cerr *sheet.ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("want *sheet.ConfigError, got %T: %v", err, err)
	}
}

func TestBuildRejectsUnknownSheet(t *testing.T) {
	cards := []deck.PlacedCard{{Name: "Stray", FrontURL: "f", BackURL: "b", Shape: card.Rectangle}}
	placements := []sheet.Placement{{SheetID: 99}}
	sheets := []sheet.Sheet{{ID: 1, Columns: 1, Rows: 1, Count: 1, Faces: []string{"f"}}}

	_, err := buildObjectStates(cards, placements, sheets)
	var ierr *InvariantError
	if !errors.As(err, &ierr) {
		t.Fatalf("want *InvariantError, got %T: %v", err, err)
	}
}

func TestSaveStateJSONFieldNames(t *testing.T) {
	save, err := NewWithDeck(sampleDeck(), sheet.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	out, err := save.JSON()
	if err != nil {
		t.Fatal(err)
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(out, &envelope); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"SaveName", "Gravity", "PlayArea", "TabStates", "XmlUI", "ObjectStates"} {
		if _, ok := envelope[key]; !ok {
			t.Errorf("envelope missing %q", key)
		}
	}

	var objects []map[string]json.RawMessage
	if err := json.Unmarshal(envelope["ObjectStates"], &objects); err != nil {
		t.Fatal(err)
	}
	root := objects[0]
	for _, key := range []string{"GUID", "GMNotes", "IgnoreFoW", "HideWhenFaceDown", "DeckIDs", "ColorDiffuse", "CustomDeck"} {
		if _, ok := root[key]; !ok {
			t.Errorf("deck object missing %q", key)
		}
	}

	var transform map[string]float64
	if err := json.Unmarshal(root["Transform"], &transform); err != nil {
		t.Fatal(err)
	}
	if transform["rotY"] != 180 || transform["scaleX"] != 1 {
		t.Errorf("transform = %v, want camelCase keys with rotY 180", transform)
	}

	var sheetsByID map[string]map[string]json.RawMessage
	if err := json.Unmarshal(root["CustomDeck"], &sheetsByID); err != nil {
		t.Fatal(err)
	}
	first, ok := sheetsByID["1"]
	if !ok {
		t.Fatalf("CustomDeck keys = %v, want sheet identifiers as strings", sheetsByID)
	}
	for _, key := range []string{"FaceURL", "BackURL", "NumWidth", "NumHeight", "BackIsHidden", "UniqueBack", "Type"} {
		if _, ok := first[key]; !ok {
			t.Errorf("sheet record missing %q", key)
		}
	}
}

func TestSaveStateJSONRoundTrip(t *testing.T) {
	save, err := NewWithDeck(sampleDeck(), sheet.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	out, err := save.JSON()
	if err != nil {
		t.Fatal(err)
	}

	var decoded SaveState
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(*save, decoded); diff != "" {
		t.Errorf("round trip changed the document:\n%s", diff)
	}
}

func TestWriteSavedObject(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "My Deck")

	if err := WriteSavedObject(base, []byte(`{}`), []byte("png")); err != nil {
		t.Fatalf("WriteSavedObject: %v", err)
	}
	contents, err := os.ReadFile(base + ".json")
	if err != nil || string(contents) != `{}` {
		t.Errorf("object file = %q, %v", contents, err)
	}
	icon, err := os.ReadFile(base + ".png")
	if err != nil || string(icon) != "png" {
		t.Errorf("icon file = %q, %v", icon, err)
	}
}

func TestWriteSavedObjectReplacesExtension(t *testing.T) {
	dir := t.TempDir()

	if err := WriteSavedObject(filepath.Join(dir, "deck.json"), []byte(`{}`), []byte("png")); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "deck.png")); err != nil {
		t.Errorf("icon not written next to the object: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "deck.json.json")); err == nil {
		t.Error("extension appended instead of replaced")
	}
}

func TestWriteSavedObjectNamesFailingWrite(t *testing.T) {
	dir := t.TempDir()

	t.Run("object", func(t *testing.T) {
		err := WriteSavedObject(filepath.Join(dir, "missing", "deck"), []byte(`{}`), []byte("png"))
		var werr *WriteError
		if !errors.As(err, &werr) {
			t.Fatalf("want *WriteError, got %T: %v", err, err)
		}
		if werr.Kind != WriteObject {
			t.Errorf("failing write = %q, want %q", werr.Kind, WriteObject)
		}
	})

	t.Run("icon", func(t *testing.T) {
		base := filepath.Join(dir, "deck")
		// Occupy the icon path so only the second write fails.
		if err := os.Mkdir(base+".png", 0o755); err != nil {
			t.Fatal(err)
		}
		err := WriteSavedObject(base, []byte(`{}`), []byte("png"))
		var werr *WriteError
		if !errors.As(err, &werr) {
			t.Fatalf("want *WriteError, got %T: %v", err, err)
		}
		if werr.Kind != WriteIcon {
			t.Errorf("failing write = %q, want %q", werr.Kind, WriteIcon)
		}
		if _, statErr := os.Stat(base + ".json"); statErr != nil {
			t.Errorf("object should have been written before the icon failed: %v", statErr)
		}
	})
}

func TestSavedObjectsDir(t *testing.T) {
	dir, err := SavedObjectsDir()
	if err != nil {
		t.Skipf("no saved objects directory on this platform: %v", err)
	}
	if filepath.Base(dir) != "Saved Objects" {
		t.Errorf("directory = %q, want a Saved Objects path", dir)
	}
}
