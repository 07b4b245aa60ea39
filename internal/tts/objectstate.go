package tts

import "github.com/google/uuid"

// defaultDiffuse is the reflectance Tabletop Simulator assigns to
// untinted objects.
const defaultDiffuse = 0.713235259

// ObjectState describes one spawnable object in a save file. Only the
// fields a deck of custom cards touches are modelled; everything else
// in the format keeps its zero value.
type ObjectState struct {
	GUID                 string                  `json:"GUID"`
	Name                 string                  `json:"Name"`
	Transform            TransformState          `json:"Transform"`
	Nickname             string                  `json:"Nickname"`
	Description          string                  `json:"Description"`
	GMNotes              string                  `json:"GMNotes"`
	AltLookAngle         Vector3                 `json:"AltLookAngle"`
	ColorDiffuse         ColourState             `json:"ColorDiffuse"`
	LayoutGroupSortIndex int                     `json:"LayoutGroupSortIndex"`
	Value                int                     `json:"Value"`
	Locked               bool                    `json:"Locked"`
	Grid                 bool                    `json:"Grid"`
	Snap                 bool                    `json:"Snap"`
	IgnoreFoW            bool                    `json:"IgnoreFoW"`
	MeasureMovement      bool                    `json:"MeasureMovement"`
	DragSelectable       bool                    `json:"DragSelectable"`
	Autoraise            bool                    `json:"Autoraise"`
	Sticky               bool                    `json:"Sticky"`
	Tooltip              bool                    `json:"Tooltip"`
	GridProjection       bool                    `json:"GridProjection"`
	HideWhenFaceDown     bool                    `json:"HideWhenFaceDown"`
	Hands                bool                    `json:"Hands"`
	CardID               int                     `json:"CardID,omitempty"`
	SidewaysCard         bool                    `json:"SidewaysCard"`
	DeckIDs              []int                   `json:"DeckIDs,omitempty"`
	CustomDeck           map[int]CustomDeckState `json:"CustomDeck"`
	LuaScript            string                  `json:"LuaScript"`
	LuaScriptState       string                  `json:"LuaScriptState"`
	XMLUI                string                  `json:"XmlUI"`
	ContainedObjects     []ObjectState           `json:"ContainedObjects,omitempty"`
}

// CustomDeckState points a deck object at its sprite sheet. The map key
// it is stored under in ObjectState.CustomDeck is the sheet identifier
// that card IDs encode.
type CustomDeckState struct {
	FaceURL      string `json:"FaceURL"`
	BackURL      string `json:"BackURL"`
	NumWidth     int    `json:"NumWidth"`
	NumHeight    int    `json:"NumHeight"`
	BackIsHidden bool   `json:"BackIsHidden"`
	UniqueBack   bool   `json:"UniqueBack"`
	Type         int    `json:"Type"`
}

// TransformState is an object's position, rotation and scale.
type TransformState struct {
	PosX   float64 `json:"posX"`
	PosY   float64 `json:"posY"`
	PosZ   float64 `json:"posZ"`
	RotX   float64 `json:"rotX"`
	RotY   float64 `json:"rotY"`
	RotZ   float64 `json:"rotZ"`
	ScaleX float64 `json:"scaleX"`
	ScaleY float64 `json:"scaleY"`
	ScaleZ float64 `json:"scaleZ"`
}

// Vector3 is the simulator's three-component vector.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// ColourState is an RGB colour with components in [0, 1].
type ColourState struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

func defaultTransform() TransformState {
	return TransformState{ScaleX: 1, ScaleY: 1, ScaleZ: 1}
}

// newObjectState fills the flags the simulator expects on every spawned
// object. Callers override the handful of fields that differ between
// decks and the cards inside them.
func newObjectState(name string) ObjectState {
	return ObjectState{
		GUID:             uuid.NewString(),
		Name:             name,
		Transform:        defaultTransform(),
		ColorDiffuse:     ColourState{R: defaultDiffuse, G: defaultDiffuse, B: defaultDiffuse},
		Grid:             true,
		Snap:             true,
		DragSelectable:   true,
		Autoraise:        true,
		Sticky:           true,
		Tooltip:          true,
		HideWhenFaceDown: true,
	}
}
