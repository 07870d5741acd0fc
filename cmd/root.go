package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arcanaland/deckhand/internal/config"
)

var configPath string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "deckhand",
	Short: "Split tabletop save files into per-card files",
	Long: `Deckhand takes tabletop save files that hold a Bag of cards and writes every card
to its own JSON file, built from a card template, together with a manifest that
lists the cards in their original order. Cards without a GUID get one, and the
new GUIDs are written back into the save file.`,
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", config.GetConfigFilePath(), "path to the config file")

	RootCmd.AddCommand(splitCmd)
	RootCmd.AddCommand(inspectCmd)
	RootCmd.AddCommand(showCmd)
	RootCmd.AddCommand(configCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}
