// Package cli provides the pair listing command.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/palettelabs/shade/internal/appearance"
	"github.com/palettelabs/shade/internal/logging"
	"github.com/palettelabs/shade/internal/models"
	"github.com/palettelabs/shade/internal/prefs"
	"github.com/palettelabs/shade/internal/themes"
	"github.com/palettelabs/shade/internal/tui"
)

func init() {
	rootCmd.AddCommand(themesCmd)
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List the known palette pairs",
	Long:  "List every palette pair shade knows about, builtin and user-defined.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runThemesList(cmd)
	},
}

type pairSummary struct {
	ID      string `json:"id"`
	Light   string `json:"light"`
	Dark    string `json:"dark"`
	Source  string `json:"source"`
	Active  bool   `json:"active"`
	Variant string `json:"variant"`
}

func runThemesList(cmd *cobra.Command) error {
	ctx := cmd.Context()

	registry, err := themes.Load()
	if err != nil {
		return err
	}

	store := prefs.NewStore(prefs.DefaultPath(), registry, logging.Component("prefs"))
	activeID := ""
	if pair := registry.Default(); pair != nil {
		activeID = pair.ID
	}
	if id, ok := store.Load(); ok {
		activeID = id
	}

	mode := appearance.DefaultResolver().Resolve(ctx)

	pairs := registry.List()
	summaries := make([]pairSummary, 0, len(pairs))
	for _, pair := range pairs {
		summaries = append(summaries, pairSummary{
			ID:      pair.ID,
			Light:   pair.Light,
			Dark:    pair.Dark,
			Source:  sourceLabel(pair.Source),
			Active:  pair.ID == activeID,
			Variant: pair.Variant(mode),
		})
	}

	if IsJSONOutput() || IsJSONLOutput() {
		return WriteOutput(os.Stdout, summaries)
	}

	if hasTTY() {
		writeSwatchList(pairs, summaries, mode)
		return nil
	}

	headers := []string{"ID", "LIGHT", "DARK", "SOURCE", "ACTIVE"}
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{s.ID, s.Light, s.Dark, s.Source, formatYesNo(s.Active)})
	}
	return writeTable(os.Stdout, headers, rows)
}

// writeSwatchList renders the pair list with color swatches. Swatches
// carry ANSI sequences that would confuse tabwriter, so columns are
// padded by hand.
func writeSwatchList(pairs []*themes.Pair, summaries []pairSummary, mode models.Mode) {
	idWidth, variantWidth := 0, 0
	for _, s := range summaries {
		if len(s.ID) > idWidth {
			idWidth = len(s.ID)
		}
		if len(s.Variant) > variantWidth {
			variantWidth = len(s.Variant)
		}
	}

	for i, pair := range pairs {
		s := summaries[i]
		marker := " "
		if s.Active {
			marker = "*"
		}
		swatch := tui.Swatch(pair.PaletteFor(mode))
		fmt.Fprintf(os.Stdout, "%s %-*s  %-*s  %s  %s\n",
			marker, idWidth, s.ID, variantWidth, s.Variant, swatch, s.Source)
	}
}

func sourceLabel(source string) string {
	if source == "" || source == "builtin" {
		return "builtin"
	}
	return "user"
}
