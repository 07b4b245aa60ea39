// Package sheet assigns deck cards to fixed-capacity sprite-sheet grids.
// Cards sharing a back image and shape are grouped onto the same run of
// sheets; every card gets a deterministic (sheet, row, column) position.
package sheet

import (
	"fmt"

	"github.com/decksmith/decksmith/internal/card"
	"github.com/decksmith/decksmith/internal/deck"
)

// Config fixes the sheet geometry of the target tool.
type Config struct {
	// Capacity is the number of cells on a full sheet.
	Capacity int
	// Columns is the grid width in cells.
	Columns int
}

// DefaultConfig is the Tabletop Simulator custom-deck maximum: 70 cells in a
// 10x7 grid.
func DefaultConfig() Config {
	return Config{Capacity: 70, Columns: 10}
}

// ConfigError reports an unusable sheet geometry.
type ConfigError struct {
	Capacity int
	Columns  int
	Reason   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("sheet configuration capacity=%d columns=%d: %s", e.Capacity, e.Columns, e.Reason)
}

// Validate checks the geometry. Capacity must be a positive multiple of
// Columns so that every non-final sheet is a full rectangle.
func (c Config) Validate() error {
	if c.Columns <= 0 {
		return &ConfigError{Capacity: c.Capacity, Columns: c.Columns, Reason: "columns must be positive"}
	}
	if c.Capacity <= 0 {
		return &ConfigError{Capacity: c.Capacity, Columns: c.Columns, Reason: "capacity must be positive"}
	}
	if c.Capacity%c.Columns != 0 {
		return &ConfigError{Capacity: c.Capacity, Columns: c.Columns, Reason: "capacity must be a multiple of columns"}
	}
	return nil
}

// Sheet is one emitted sprite-sheet grid. ID is the global 1-based sheet
// number; the save format derives card IDs from it, so zero is never used.
// Columns and Rows describe the declared grid, Count the occupied cells;
// on the final sheet of a group the grid is trimmed so no declared cell
// lies outside the occupied area's bounding rows.
type Sheet struct {
	ID      int
	BackURL string
	Shape   card.Shape
	Faces   []string // front references in slot order
	Count   int
	Columns int
	Rows    int
}

// Placement is a card's assigned position. Row and Column are 0-based and
// unique within a sheet.
type Placement struct {
	SheetID int
	Row     int
	Column  int
}

// Pack distributes cards onto sheets. Grouping preserves first-seen group
// order and in-group input order; within a group, cards fill sheets of
// cfg.Capacity cells row by row. The returned placements are indexed by
// input card position. Packing is deterministic: identical input yields
// identical output.
func Pack(cards []deck.PlacedCard, cfg Config) ([]Placement, []Sheet, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	// First-seen key order, kept explicitly so map iteration order never
	// leaks into the result.
	var order []deck.GroupKey
	groups := make(map[deck.GroupKey][]int)
	for i, c := range cards {
		key := c.Group()
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], i)
	}

	placements := make([]Placement, len(cards))
	var sheets []Sheet
	for _, key := range order {
		members := groups[key]
		for start := 0; start < len(members); start += cfg.Capacity {
			end := start + cfg.Capacity
			if end > len(members) {
				end = len(members)
			}
			n := end - start

			// A partial final sheet keeps only the cells it needs.
			columns := cfg.Columns
			if n < columns {
				columns = n
			}
			rows := (n + columns - 1) / columns

			sh := Sheet{
				ID:      len(sheets) + 1,
				BackURL: key.BackURL,
				Shape:   key.Shape,
				Faces:   make([]string, 0, n),
				Count:   n,
				Columns: columns,
				Rows:    rows,
			}
			for slot, idx := range members[start:end] {
				placements[idx] = Placement{
					SheetID: sh.ID,
					Row:     slot / columns,
					Column:  slot % columns,
				}
				sh.Faces = append(sh.Faces, cards[idx].FrontURL)
			}
			sheets = append(sheets, sh)
		}
	}
	return placements, sheets, nil
}
