package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/decksmith/decksmith/internal/config"
	"github.com/decksmith/decksmith/internal/decklist"
	"github.com/decksmith/decksmith/internal/icon"
	"github.com/decksmith/decksmith/internal/tts"
)

var buildCmd = &cobra.Command{
	Use:   "build [decklist]",
	Short: "Build a Tabletop Simulator saved object from a decklist",
	Long: `Build reads a plain-text decklist, resolves every card name against the
configured sources, packs the cards onto sprite sheets and writes the deck
into the Tabletop Simulator Saved Objects directory as a saved object with
a matching icon.

Examples:
  decksmith build burn.txt --set mtg.toml
  decksmith build burn.txt --scryfall --name "Boros Burn"
  decksmith build pauper.txt --scryfall --output ./out --icon cover.png`,
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
		slog.Debug("resolved decklist", "path", listPath, "entries", len(entries), "cards", len(cards))

		save, err := tts.NewWithDeck(cards, sheetConfigFromFlags(cmd, cfg))
		if err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(listPath), filepath.Ext(listPath))
		}
		save.ObjectStates[0].Nickname = name

		iconRef, _ := cmd.Flags().GetString("icon")
		if iconRef == "" {
			iconRef = cfg.Icon
		}
		iconBytes, err := icon.Resolve(iconRef)
		if err != nil {
			return fmt.Errorf("preparing deck icon: %v", err)
		}

		outDir, _ := cmd.Flags().GetString("output")
		if outDir == "" {
			outDir = cfg.SavedObjectsDir
		}
		if outDir == "" {
			outDir, err = tts.SavedObjectsDir()
			if err != nil {
				return err
			}
		}
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %v", err)
		}

		target := filepath.Join(outDir, name)
		if err := save.Write(target, iconBytes); err != nil {
			return err
		}
		slog.Debug("wrote saved object", "target", target)

		fmt.Println(colorize.GreenString("✅ Built deck '%s'", name))
		fmt.Print(colorize.CyanString("Cards:  "))
		fmt.Println(colorize.HiWhiteString("%d", len(cards)))
		fmt.Print(colorize.CyanString("Sheets: "))
		fmt.Println(colorize.HiWhiteString("%d", len(save.ObjectStates[0].CustomDeck)))
		fmt.Print(colorize.CyanString("Object: "))
		fmt.Println(colorize.HiWhiteString("%s.json", target))
		fmt.Print(colorize.CyanString("Icon:   "))
		fmt.Println(colorize.HiWhiteString("%s.png", target))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(buildCmd)
	addSourceFlags(buildCmd)
	addSheetFlags(buildCmd)
	buildCmd.Flags().StringP("name", "n", "", "Deck name (default: decklist file name)")
	buildCmd.Flags().StringP("output", "o", "", "Output directory (default: the Saved Objects directory)")
	buildCmd.Flags().String("icon", "", "Deck icon: image path or URL (default: built-in placeholder)")
}
