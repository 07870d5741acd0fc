package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcanaland/deckhand/internal/card"
	"github.com/arcanaland/deckhand/internal/save"
)

var showCmd = &cobra.Command{
	Use:   "show [card_file]",
	Short: "Display a card file written by split",
	Long: `Show prints the templated fields of a card file written by split, with the GM
notes wrapped to the width of the terminal.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("error reading card file: %v", err)
		}

		obj := save.NewObject()
		if err := json.Unmarshal(data, obj); err != nil {
			return fmt.Errorf("error parsing card file: %v", err)
		}

		displayCard(cmd.OutOrStdout(), card.FromObject(obj), terminalWidth())
		return nil
	},
}

// terminalWidth returns the width of stdout, or 80 when it is not a terminal
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// wrapText wraps text to a specified width
func wrapText(text string, width int) []string {
	// Ensure width is reasonable
	if width < 10 {
		width = 40
	}

	var result []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			result = append(result, "")
			continue
		}

		var currentLine string
		for _, word := range words {
			if currentLine == "" {
				currentLine = word
			} else if len([]rune(currentLine))+1+len([]rune(word)) <= width {
				currentLine += " " + word
			} else {
				result = append(result, currentLine)
				currentLine = word
			}
		}
		result = append(result, currentLine)
	}

	return result
}

// displayCard prints the card fields with colored labels
func displayCard(w io.Writer, c card.Card, width int) {
	name := c.Nickname
	if name == "" {
		name = "(no nickname)"
	}

	lines := []string{
		colorize.CyanString("Card:     ") + colorize.HiWhiteString("%s", name),
		colorize.CyanString("GUID:     ") + colorize.HiWhiteString("%s", c.GUID),
		colorize.CyanString("CardID:   ") + colorize.HiWhiteString("%d", c.CardID),
	}

	orientation := "upright"
	if c.Sideways {
		orientation = "sideways"
	}
	lines = append(lines, colorize.CyanString("Layout:   ")+colorize.HiWhiteString("%s", orientation))

	if len(c.CustomDeck) > 0 {
		decks := make([]string, 0, len(c.CustomDeck))
		for id := range c.CustomDeck {
			decks = append(decks, id)
		}
		sort.Strings(decks)
		lines = append(lines, colorize.CyanString("Decks:    ")+colorize.HiWhiteString("%s", strings.Join(decks, ", ")))
	}

	if c.GMNotes != "" {
		lines = append(lines, "", colorize.CyanString("GM notes:"))
		lines = append(lines, wrapText(c.GMNotes, width-4)...)
	}

	fmt.Fprintln(w)
	for _, line := range lines {
		fmt.Fprintf(w, "  %s\n", line)
	}
	fmt.Fprintln(w)
}
