// Package cli provides first-run setup.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/palettelabs/shade/internal/config"
	"github.com/palettelabs/shade/internal/ghostty"
	"github.com/palettelabs/shade/internal/tmux"
)

var initForce bool

// configDirFunc resolves the config directory; tests override it.
var configDirFunc = defaultConfigDir

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration",
	Long: `Create the shade config directory with a commented config.yaml and
an empty themes overlay directory. Existing files are left alone
unless --force is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		results := []initResult{
			checkPrerequisites(cmd.Context()),
			createConfigFile(),
			createThemesDir(),
		}

		if IsJSONOutput() || IsJSONLOutput() {
			out := make([]map[string]string, 0, len(results))
			for _, r := range results {
				out = append(out, map[string]string{
					"name":    r.name,
					"status":  r.status,
					"message": r.message,
				})
			}
			return WriteOutput(os.Stdout, out)
		}

		failed := false
		for _, r := range results {
			fmt.Fprintf(os.Stdout, "%s  %s: %s\n", formatInitStatus(r.status), r.name, r.message)
			if r.status == "failed" {
				failed = true
			}
		}
		if failed {
			return fmt.Errorf("init did not complete cleanly")
		}
		return nil
	},
}

type initResult struct {
	name    string
	status  string // done, skipped, failed
	message string
}

func formatInitStatus(status string) string {
	switch status {
	case "done":
		return colorize("done   ", colorGreen)
	case "skipped":
		return colorize("skipped", colorYellow)
	default:
		return colorize("failed ", colorRed)
	}
}

func checkPrerequisites(ctx context.Context) initResult {
	result := initResult{name: "Check host tools"}

	if _, err := exec.LookPath("tmux"); err != nil {
		result.status = "failed"
		result.message = "tmux not found in PATH"
		return result
	}

	tmuxState := "tmux found, no server running yet"
	if sessions, err := tmux.NewLocalClient().ListSessions(ctx); err == nil && len(sessions) > 0 {
		tmuxState = "tmux server running"
	}

	result.status = "done"
	if _, ok := ghostty.FindConfig(); ok {
		result.message = tmuxState + ", Ghostty config found"
	} else {
		result.message = tmuxState + ", no Ghostty config (sync will be a no-op)"
	}
	return result
}

func createConfigFile() initResult {
	result := initResult{name: "Write config file"}

	dir := configDirFunc()
	if err := os.MkdirAll(dir, 0700); err != nil {
		result.status = "failed"
		result.message = fmt.Sprintf("create %s: %v", dir, err)
		return result
	}

	path := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(path); err == nil && !initForce {
		result.status = "skipped"
		result.message = fmt.Sprintf("%s exists, use --force to overwrite", path)
		return result
	}

	if err := os.WriteFile(path, []byte(configTemplate), 0600); err != nil {
		result.status = "failed"
		result.message = fmt.Sprintf("write %s: %v", path, err)
		return result
	}

	result.status = "done"
	result.message = fmt.Sprintf("wrote %s", path)
	return result
}

func createThemesDir() initResult {
	result := initResult{name: "Create themes directory"}

	dir := filepath.Join(configDirFunc(), "themes")
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		result.status = "skipped"
		result.message = fmt.Sprintf("%s exists", dir)
		return result
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		result.status = "failed"
		result.message = fmt.Sprintf("create %s: %v", dir, err)
		return result
	}

	result.status = "done"
	result.message = fmt.Sprintf("created %s, drop pair YAML files here to add or override pairs", dir)
	return result
}

func defaultConfigDir() string {
	return config.Dir()
}

const configTemplate = `# Shade Configuration File
# Location: $XDG_CONFIG_HOME/shade/config.yaml (~/.config/shade/config.yaml)
# Every key is optional; the values below are the defaults.

poll:
  # How often the OS appearance is re-read.
  interval: 2s

tmux:
  # Apply palette pairs to the running tmux server.
  enabled: true
  # Show a status-line message after a switch.
  notify: true

ghostty:
  # Rewrite the theme line in the Ghostty config on startup and switch.
  sync: true
  # Explicit config path; leave empty to autodetect.
  config_path: ""
  # Ask a running Ghostty to reload after a sync changed the file.
  reload: true

history:
  # Record theme activity in a local SQLite journal (shade history).
  enabled: true
  # Journal location; leave empty for the XDG data directory.
  path: ""

logging:
  # One of: trace, debug, info, warn, error.
  level: info
  # console or json; leave empty to pick based on the terminal.
  format: ""
`
