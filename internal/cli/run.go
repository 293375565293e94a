// Package cli provides the foreground daemon command.
package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/palettelabs/shade/internal/logging"
	"github.com/palettelabs/shade/internal/prefs"
	"github.com/palettelabs/shade/internal/shaded"
)

var runInstallPalettes bool

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runInstallPalettes, "install-palettes", true, "write missing Ghostty theme files on startup")
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the appearance sync daemon in the foreground",
	Long: `Run the shade daemon: applies the selected pair, polls the OS
appearance, and watches the preference file so switches made from
other processes take effect immediately. Stops on SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		sess, cleanup, err := buildSession()
		if err != nil {
			return err
		}
		defer cleanup()
		defer sess.Close()

		daemon, err := shaded.New(GetConfig(), logging.Component("shaded"), shaded.Options{
			Session:         sess,
			PreferencePath:  prefs.DefaultPath(),
			InstallPalettes: runInstallPalettes,
			Version:         version,
		})
		if err != nil {
			return err
		}
		return daemon.Run(ctx)
	},
}
