// Package cli provides the palette install command.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Write Ghostty theme files for the known pairs",
	Long: `Write a Ghostty theme file for every palette variant shade knows
about. Files that already exist are never touched, so local edits
survive reruns. Does nothing when no Ghostty config directory exists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, cleanup, err := buildSession()
		if err != nil {
			return err
		}
		defer cleanup()
		defer sess.Close()

		progress := startProgress("Installing palettes")
		report, err := sess.InstallPalettes(cmd.Context())
		if err != nil {
			progress.Fail(err)
			return fmt.Errorf("install palettes: %w", err)
		}
		progress.Done()

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, map[string]any{
				"written": report.Written,
				"skipped": report.Skipped,
			})
		}

		if len(report.Written) == 0 && len(report.Skipped) == 0 {
			fmt.Fprintln(os.Stdout, "No Ghostty config directory found, nothing installed.")
			return nil
		}
		for _, name := range report.Written {
			fmt.Fprintf(os.Stdout, "wrote   %s\n", name)
		}
		for _, name := range report.Skipped {
			fmt.Fprintf(os.Stdout, "skipped %s (exists)\n", name)
		}
		fmt.Fprintf(os.Stdout, "%d written, %d skipped\n", len(report.Written), len(report.Skipped))
		return nil
	},
}
