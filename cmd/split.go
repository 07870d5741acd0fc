package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	colorize "github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/arcanaland/deckhand/internal/config"
	"github.com/arcanaland/deckhand/internal/logging"
	"github.com/arcanaland/deckhand/internal/pipeline"
	"github.com/arcanaland/deckhand/internal/template"
)

// splitCmd represents the split command
var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Split every save file in the source directory",
	Long: `Split reads each save file in the source directory, writes one file per card into
{output}/{file}.{bag guid}/ and a manifest {output}/{file}.{bag guid}.json, then
rewrites the save file with the GUIDs it assigned. Files that cannot be split are
reported and skipped.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		applySplitFlags(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}

		dryRun, _ := cmd.Flags().GetBool("dry-run")

		log, err := logging.New(cfg.LogLevel, os.Stderr)
		if err != nil {
			return fmt.Errorf("invalid log level: %v", err)
		}

		store := template.NewStore(cfg.TemplateDir, cfg.CardTemplate, cfg.ListTemplate, log)
		p := pipeline.New(pipeline.Options{
			SourceDir: cfg.SourceDir,
			OutputDir: cfg.OutputDir,
			Pattern:   cfg.Pattern,
			Passes:    cfg.Passes,
			DryRun:    dryRun,
		}, store, log)

		summary, err := p.Run()
		if err != nil {
			return err
		}

		printSummary(cmd.OutOrStdout(), summary)
		return nil
	},
}

func init() {
	splitCmd.Flags().String("source", "", "directory holding the save files")
	splitCmd.Flags().String("templates", "", "directory holding the card and list templates")
	splitCmd.Flags().String("output", "", "directory the card files and manifests are written to")
	splitCmd.Flags().String("pattern", "", "glob selecting save files in the source directory")
	splitCmd.Flags().Int("passes", 0, "number of times to run the whole batch")
	splitCmd.Flags().String("log-level", "", "log level (debug, info, warn, error)")
	splitCmd.Flags().Bool("dry-run", false, "report what would be written without writing anything")
}

// applySplitFlags overrides config values with flags given on the command line
func applySplitFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.SourceDir, _ = flags.GetString("source")
	}
	if flags.Changed("templates") {
		cfg.TemplateDir, _ = flags.GetString("templates")
	}
	if flags.Changed("output") {
		cfg.OutputDir, _ = flags.GetString("output")
	}
	if flags.Changed("pattern") {
		cfg.Pattern, _ = flags.GetString("pattern")
	}
	if flags.Changed("passes") {
		cfg.Passes, _ = flags.GetInt("passes")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
}

// printSummary renders one row per processed file followed by totals
func printSummary(w io.Writer, summary *pipeline.Summary) {
	if len(summary.Results) == 0 {
		fmt.Fprintln(w, "No save files found.")
		return
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"File", "Pass", "Status", "Bag", "Cards", "New GUIDs", "Removed", "Reason"})
	for _, r := range summary.Results {
		reason := ""
		if r.Err != nil {
			reason = r.Err.Error()
		}
		tw.AppendRow(table.Row{
			filepath.Base(r.Source),
			strconv.Itoa(r.Pass),
			statusString(r.Status),
			r.BagGUID,
			strconv.Itoa(len(r.Cards)),
			strconv.Itoa(len(r.Generated)),
			strconv.Itoa(r.Dropped),
			reason,
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
		{Number: 8, WidthMax: 60},
	})

	fmt.Fprintln(w, tw.Render())
	fmt.Fprintf(w, "%d processed, %d skipped, %d failed, %d card files written\n",
		summary.Count(pipeline.StatusProcessed),
		summary.Count(pipeline.StatusSkipped),
		summary.Count(pipeline.StatusFailed),
		summary.CardsWritten())
}

func statusString(s pipeline.Status) string {
	switch s {
	case pipeline.StatusProcessed:
		return colorize.GreenString(s.String())
	case pipeline.StatusSkipped:
		return colorize.YellowString(s.String())
	default:
		return colorize.RedString(s.String())
	}
}
