package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/decksmith/decksmith/internal/config"
	"github.com/decksmith/decksmith/internal/tts"
)

// pathCmd represents the path command
var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the directory builds write saved objects into",
	Long: `Path prints the directory decksmith writes saved objects into: the
saved_objects_dir from your config if set, otherwise the Tabletop Simulator
Saved Objects directory for this platform.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %v", err)
		}
		dir := cfg.SavedObjectsDir
		if dir == "" {
			dir, err = tts.SavedObjectsDir()
			if err != nil {
				return err
			}
		}
		fmt.Println(dir)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(pathCmd)
}
