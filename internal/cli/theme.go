// Package cli provides the theme query and switch command.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/palettelabs/shade/internal/appearance"
	"github.com/palettelabs/shade/internal/ghostty"
	"github.com/palettelabs/shade/internal/logging"
	"github.com/palettelabs/shade/internal/prefs"
	"github.com/palettelabs/shade/internal/themes"
	"github.com/palettelabs/shade/internal/tmux"
)

func init() {
	rootCmd.AddCommand(themeCmd)
}

var themeCmd = &cobra.Command{
	Use:   "theme [pair]",
	Short: "Show or switch the active palette pair",
	Long: `Without an argument, reports the active pair, its variant for the
current OS appearance, and where the selection came from. With a pair
id, switches to that pair: the selection is persisted, applied to
tmux, and synced into the Ghostty config.`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completePairIDs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return runThemeQuery(cmd)
		}
		return runThemeSwitch(cmd, args[0])
	},
}

// themeStatus is the query output shape.
type themeStatus struct {
	Pair          string `json:"pair"`
	Variant       string `json:"variant"`
	Mode          string `json:"mode"`
	Source        string `json:"source"`
	TmuxTheme     string `json:"tmux_theme,omitempty"`
	GhosttyConfig string `json:"ghostty_config,omitempty"`
}

func runThemeQuery(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg := GetConfig()

	registry, err := themes.Load()
	if err != nil {
		return err
	}

	store := prefs.NewStore(prefs.DefaultPath(), registry, logging.Component("prefs"))

	pair := registry.Default()
	source := "default"
	if id, ok := store.Load(); ok {
		if p, found := registry.Lookup(id); found {
			pair = p
			source = "preference"
		}
	}
	if pair == nil {
		return fmt.Errorf("no palette pairs available")
	}

	mode := appearance.DefaultResolver().Resolve(ctx)

	status := themeStatus{
		Pair:    pair.ID,
		Variant: pair.Variant(mode),
		Mode:    mode.String(),
		Source:  source,
	}
	if cfg.Tmux.Enabled {
		// Best effort: a missing server just leaves the field empty.
		if applied, err := tmux.NewLocalClient().CurrentTheme(ctx); err == nil {
			status.TmuxTheme = applied
		}
	}
	if cfg.Ghostty.ConfigPath != "" {
		status.GhosttyConfig = cfg.Ghostty.ConfigPath
	} else if path, ok := ghostty.FindConfig(); ok {
		status.GhosttyConfig = path
	}

	if IsJSONOutput() || IsJSONLOutput() {
		return WriteOutput(os.Stdout, status)
	}

	fmt.Fprintf(os.Stdout, "Pair:     %s (%s)\n", status.Pair, status.Source)
	fmt.Fprintf(os.Stdout, "Variant:  %s\n", status.Variant)
	fmt.Fprintf(os.Stdout, "Mode:     %s\n", status.Mode)
	if status.TmuxTheme != "" {
		fmt.Fprintf(os.Stdout, "Tmux:     %s\n", status.TmuxTheme)
	}
	if status.GhosttyConfig != "" {
		fmt.Fprintf(os.Stdout, "Ghostty:  %s\n", status.GhosttyConfig)
	}
	return nil
}

func runThemeSwitch(cmd *cobra.Command, id string) error {
	ctx := cmd.Context()

	sess, cleanup, err := buildSession()
	if err != nil {
		return err
	}
	defer cleanup()
	defer sess.Close()

	if err := sess.Switch(ctx, id); err != nil {
		if suggestion := suggestPair(sess.Registry().IDs(), id); suggestion != "" {
			return &PreflightError{
				Message: err.Error(),
				Hint:    fmt.Sprintf("did you mean %q?", suggestion),
			}
		}
		return err
	}

	pair := sess.Pair()
	status := themeStatus{
		Pair:    pair.ID,
		Variant: pair.Variant(sess.Mode()),
		Mode:    sess.Mode().String(),
		Source:  "preference",
	}

	if IsJSONOutput() || IsJSONLOutput() {
		return WriteOutput(os.Stdout, status)
	}

	fmt.Fprintf(os.Stdout, "Switched to %s (%s)\n", status.Pair, status.Variant)
	return nil
}

// suggestPair returns the closest pair id for a miss, or "".
func suggestPair(ids []string, input string) string {
	matches := fuzzy.Find(strings.ToLower(input), ids)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}

func completePairIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	registry, err := themes.Load()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var out []string
	for _, id := range registry.IDs() {
		if strings.HasPrefix(id, toComplete) {
			out = append(out, id)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
