package cmd

import (
	"fmt"
	"os"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/decksmith/decksmith/internal/config"
	"github.com/decksmith/decksmith/internal/deck"
	"github.com/decksmith/decksmith/internal/decklist"
	"github.com/decksmith/decksmith/internal/sheet"
)

var layoutCmd = &cobra.Command{
	Use:   "layout [decklist]",
	Short: "Preview how a decklist packs onto sprite sheets",
	Long: `Layout resolves a decklist and shows the sprite sheets a build would
produce, without fetching images or writing anything. Each sheet is drawn
as its grid of card names.

Examples:
  decksmith layout burn.txt --set mtg.toml
  decksmith layout burn.txt --scryfall --capacity 40 --columns 8`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		listPath := args[0]

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %v", err)
		}

		resolver, err := resolverFromFlags(cmd, cfg)
		if err != nil {
			return err
		}

		entries, err := decklist.ParseFile(listPath, resolver)
		if err != nil {
			return err
		}
		cards := decklist.Expand(entries)
		if len(cards) == 0 {
			return fmt.Errorf("decklist %s contains no cards", listPath)
		}

		placed, err := deck.Normalize(cards)
		if err != nil {
			return err
		}
		placements, sheets, err := sheet.Pack(placed, sheetConfigFromFlags(cmd, cfg))
		if err != nil {
			return err
		}

		// Get terminal width
		width, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || width <= 0 {
			width = 80 // Default if we can't get terminal width
		}

		fmt.Println()
		for _, sh := range sheets {
			displaySheet(sh, sheetGrid(sh, placed, placements), width)
			fmt.Println()
		}
		fmt.Println(colorize.CyanString("Cards:  ") + colorize.HiWhiteString("%d", len(placed)))
		fmt.Println(colorize.CyanString("Sheets: ") + colorize.HiWhiteString("%d", len(sheets)))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(layoutCmd)
	addSourceFlags(layoutCmd)
	addSheetFlags(layoutCmd)
}

// sheetGrid arranges the names of the cards placed on one sheet into its
// row-by-column grid.
func sheetGrid(sh sheet.Sheet, cards []deck.PlacedCard, placements []sheet.Placement) [][]string {
	grid := make([][]string, sh.Rows)
	for r := range grid {
		grid[r] = make([]string, sh.Columns)
	}
	for i, p := range placements {
		if p.SheetID == sh.ID {
			grid[p.Row][p.Column] = cards[i].Name
		}
	}
	return grid
}

// displaySheet prints one sheet header and its grid of card names.
func displaySheet(sh sheet.Sheet, grid [][]string, width int) {
	fmt.Println(colorize.CyanString("Sheet %d: ", sh.ID) +
		colorize.HiWhiteString("%s · %dx%d · %d cards · back %s", sh.Shape, sh.Columns, sh.Rows, sh.Count, sh.BackURL))

	// Fit the cells to the terminal, keeping names readable.
	cellWidth := (width-2)/sh.Columns - 4
	if cellWidth < 8 {
		cellWidth = 8
	}
	if cellWidth > 24 {
		cellWidth = 24
	}

	for _, row := range grid {
		fmt.Print("  ")
		for _, name := range row {
			fmt.Printf("[ %-*s ]", cellWidth, truncateName(name, cellWidth))
		}
		fmt.Println()
	}
}

// truncateName shortens a card name to fit a grid cell.
func truncateName(name string, width int) string {
	runes := []rune(name)
	if len(runes) <= width {
		return name
	}
	return string(runes[:width-1]) + "…"
}
