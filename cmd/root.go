package cmd

import (
	"errors"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/decksmith/decksmith/internal/card"
	"github.com/decksmith/decksmith/internal/cardset"
	"github.com/decksmith/decksmith/internal/config"
	"github.com/decksmith/decksmith/internal/scryfall"
	"github.com/decksmith/decksmith/internal/sheet"
)

var verbose bool

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "decksmith",
	Short: "Build Tabletop Simulator decks from plain-text decklists",
	Long: `Decksmith turns a plain-text decklist into a Tabletop Simulator saved object.
Card names are resolved against a set file or Scryfall, the cards are packed
onto sprite sheets, and the saved object is written into the simulator's
Saved Objects directory together with an icon.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Load .env file if present (ignore errors)
		_ = godotenv.Load()

		logLevel := slog.LevelInfo
		if verbose {
			logLevel = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
		slog.SetDefault(logger)
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")
}

// addSourceFlags registers the card source flags shared by the commands
// that resolve decklists.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("set", "s", "", "Set file to resolve cards against (path or set library name)")
	cmd.Flags().Bool("scryfall", false, "Resolve Magic: the Gathering card names through Scryfall")
}

// addSheetFlags registers the packing overrides.
func addSheetFlags(cmd *cobra.Command) {
	cmd.Flags().Int("capacity", 0, "Cards per sheet (default from config)")
	cmd.Flags().Int("columns", 0, "Sheet grid columns (default from config)")
}

// setPathFromFlags returns the set file named by --set or the configured
// default, or "" when neither is present.
func setPathFromFlags(cmd *cobra.Command, cfg *config.Config) (string, error) {
	name, _ := cmd.Flags().GetString("set")
	if name == "" {
		name = cfg.DefaultSet
	}
	if name == "" {
		return "", nil
	}
	return config.GetSetPath(name)
}

// resolverFromFlags assembles the card sources a command consults, in
// lookup order: the set file first, then Scryfall.
func resolverFromFlags(cmd *cobra.Command, cfg *config.Config) (card.Resolver, error) {
	var chain resolverChain

	setPath, err := setPathFromFlags(cmd, cfg)
	if err != nil {
		return nil, err
	}
	if setPath != "" {
		set, err := cardset.Load(setPath)
		if err != nil {
			return nil, err
		}
		chain = append(chain, set)
	}

	if useScryfall, _ := cmd.Flags().GetBool("scryfall"); useScryfall {
		chain = append(chain, scryfall.NewClient())
	}

	if len(chain) == 0 {
		return nil, errors.New("no card source: pass --set or --scryfall, or configure default_set")
	}
	return chain, nil
}

// sheetConfigFromFlags returns the packing configuration with any
// command-line overrides applied.
func sheetConfigFromFlags(cmd *cobra.Command, cfg *config.Config) sheet.Config {
	sheetCfg := cfg.SheetConfig()
	if capacity, _ := cmd.Flags().GetInt("capacity"); capacity > 0 {
		sheetCfg.Capacity = capacity
	}
	if columns, _ := cmd.Flags().GetInt("columns"); columns > 0 {
		sheetCfg.Columns = columns
	}
	return sheetCfg
}

// resolverChain tries each source in turn, moving on while a source
// does not know the name. Errors other than lookup misses abort.
type resolverChain []card.Resolver

func (rc resolverChain) Resolve(name string) (card.Card, error) {
	var err error
	for _, r := range rc {
		var c card.Card
		c, err = r.Resolve(name)
		if err == nil {
			return c, nil
		}
		var cerr *card.Error
		if !errors.As(err, &cerr) || cerr.Facet != card.FacetLookup {
			return nil, err
		}
	}
	return nil, err
}
