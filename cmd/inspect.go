package cmd

import (
	"fmt"
	"os"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/deckhand/internal/validator"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Check a save file without writing anything",
	Long: `Inspect reports what split would do with a save file: the Bag it would use, the
card files it would write, and anything that would be changed or removed.
It exits with an error when split would skip the file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		// Check if path exists
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("save file not found: %s", path)
		}

		v := validator.NewValidator(path)
		results, err := v.Validate()
		if err != nil {
			return fmt.Errorf("inspection error: %v", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Inspection Results:")
		fmt.Fprintln(out, "-------------------")

		if results.BagGUID != "" {
			fmt.Fprintln(out, colorize.CyanString("Bag:   ")+colorize.HiWhiteString("%s", results.BagGUID))
		}
		fmt.Fprintln(out, colorize.CyanString("Cards: ")+colorize.HiWhiteString("%d", len(results.Cards)))
		for _, stem := range results.Cards {
			fmt.Fprintf(out, "  %s.json\n", stem)
		}

		if len(results.Warnings) > 0 {
			fmt.Fprintln(out, "\nWarnings:")
			for i, warn := range results.Warnings {
				fmt.Fprintf(out, "%d. %s\n", i+1, warn)
			}
		}

		if len(results.Errors) > 0 {
			fmt.Fprintf(out, "\n❌ '%s' would be skipped (%d errors):\n", path, len(results.Errors))
			for i, e := range results.Errors {
				fmt.Fprintf(out, "%d. %s\n", i+1, e)
			}
			return fmt.Errorf("inspection failed")
		}

		fmt.Fprintf(out, "\n✅ '%s' can be split.\n", path)
		return nil
	},
}
