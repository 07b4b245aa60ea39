// Package tts builds Tabletop Simulator saved objects from card lists
// and writes them into the simulator's Saved Objects directory.
package tts

import (
	"encoding/json"

	"github.com/decksmith/decksmith/internal/card"
	"github.com/decksmith/decksmith/internal/deck"
	"github.com/decksmith/decksmith/internal/sheet"
)

// SaveState is the envelope at the top of every saved-object file. Only
// the fields needed for a deck of custom cards are modelled; the save
// format has more, all optional.
type SaveState struct {
	SaveName       string            `json:"SaveName"`
	Date           string            `json:"Date"`
	VersionNumber  string            `json:"VersionNumber"`
	GameMode       string            `json:"GameMode"`
	GameType       string            `json:"GameType"`
	GameComplexity string            `json:"GameComplexity"`
	Tags           []string          `json:"Tags"`
	Gravity        float64           `json:"Gravity"`
	PlayArea       float64           `json:"PlayArea"`
	Table          string            `json:"Table"`
	Sky            string            `json:"Sky"`
	Note           string            `json:"Note"`
	TabStates      map[string]string `json:"TabStates"`
	LuaScript      string            `json:"LuaScript"`
	LuaScriptState string            `json:"LuaScriptState"`
	XMLUI          string            `json:"XmlUI"`
	ObjectStates   []ObjectState     `json:"ObjectStates"`
}

// NewWithDeck builds the saved object for a deck of cards: image and
// shape references are resolved, the cards are packed onto sprite
// sheets, and the object graph is assembled. The first failing stage
// aborts construction and its error is returned unchanged.
func NewWithDeck(cards []card.Card, cfg sheet.Config) (*SaveState, error) {
	placed, err := deck.Normalize(cards)
	if err != nil {
		return nil, err
	}
	placements, sheets, err := sheet.Pack(placed, cfg)
	if err != nil {
		return nil, err
	}
	root, err := buildObjectStates(placed, placements, sheets)
	if err != nil {
		return nil, err
	}
	return &SaveState{
		Tags:         []string{},
		Gravity:      0.5,
		PlayArea:     0.5,
		TabStates:    map[string]string{},
		ObjectStates: []ObjectState{root},
	}, nil
}

// JSON serializes the save state the way the simulator writes its own
// files, indented with two spaces.
func (s *SaveState) JSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Write serializes the save state and stores it together with its icon
// under path. See WriteSavedObject for the file layout.
func (s *SaveState) Write(path string, icon []byte) error {
	contents, err := s.JSON()
	if err != nil {
		return err
	}
	return WriteSavedObject(path, contents, icon)
}
