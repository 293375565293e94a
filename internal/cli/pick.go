// Package cli provides the interactive pair picker command.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/palettelabs/shade/internal/appearance"
	"github.com/palettelabs/shade/internal/tui"
)

func init() {
	rootCmd.AddCommand(pickCmd)
}

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Pick a palette pair interactively",
	Long:  "Browse the known pairs with live color swatches and apply one.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPick(cmd)
	},
}

func runPick(cmd *cobra.Command) error {
	if IsNonInteractive() {
		return &PreflightError{
			Message:  "the picker requires an interactive terminal",
			Hint:     "Run without --non-interactive and with a TTY, or switch directly",
			NextStep: "shade theme <pair>",
		}
	}

	ctx := cmd.Context()

	sess, cleanup, err := buildSession()
	if err != nil {
		return err
	}
	defer cleanup()
	defer sess.Close()

	registry := sess.Registry()
	activeID := ""
	if pair := registry.Default(); pair != nil {
		activeID = pair.ID
	}
	if st := sess.Status(ctx); st.Pair != "" {
		activeID = st.Pair
	}

	result, err := tui.Run(tui.Config{
		Pairs:  registry.List(),
		Active: activeID,
		Mode:   appearance.DefaultResolver().Resolve(ctx),
	})
	if err != nil {
		return fmt.Errorf("run picker: %w", err)
	}
	if result.Aborted {
		if !IsJSONOutput() && !IsJSONLOutput() {
			fmt.Fprintln(os.Stdout, "No pair selected.")
		}
		return nil
	}

	if err := sess.Switch(ctx, result.Selected); err != nil {
		return err
	}

	pair := sess.Pair()
	if IsJSONOutput() || IsJSONLOutput() {
		return WriteOutput(os.Stdout, themeStatus{
			Pair:    pair.ID,
			Variant: pair.Variant(sess.Mode()),
			Mode:    sess.Mode().String(),
			Source:  "preference",
		})
	}

	fmt.Fprintf(os.Stdout, "Switched to %s (%s)\n", pair.ID, pair.Variant(sess.Mode()))
	return nil
}
