// Package cli provides the one-shot Ghostty sync command.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(syncCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Rewrite the Ghostty theme line for the active pair",
	Long: `Rewrite the theme line in the Ghostty config to match the active
palette pair and ask a running Ghostty to reload. A missing config
file or theme line is a no-op; shade never creates the file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, cleanup, err := buildSession()
		if err != nil {
			return err
		}
		defer cleanup()
		defer sess.Close()

		path, updated, err := sess.Sync(cmd.Context())
		if err != nil {
			return fmt.Errorf("sync ghostty config: %w", err)
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, map[string]any{
				"path":    path,
				"updated": updated,
			})
		}

		switch {
		case path == "":
			fmt.Fprintln(os.Stdout, "No Ghostty config found, nothing to sync.")
		case updated:
			fmt.Fprintf(os.Stdout, "Updated %s\n", path)
		default:
			fmt.Fprintf(os.Stdout, "Already in sync: %s\n", path)
		}
		return nil
	},
}
