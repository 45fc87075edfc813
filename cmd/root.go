package cmd

import (
	"os"

	"lstack/pkg/logging"

	"github.com/spf13/cobra"
)

var (
	configPath string
	debug      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lstack",
	Short: "Install, run and query a local cloud emulator for tests",
	Long: `lstack installs a local multi-service cloud emulator, starts it once,
waits until it reports readiness and tells you where each emulated service
listens. Test suites embed the same lifecycle through the fixture package;
the CLI is for running the emulator by hand and inspecting it.`,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. a failed install)
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logging.LevelInfo
		if debug {
			level = logging.LevelDebug
		}
		logging.InitForCLI(level, os.Stderr)
	},
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "lstack version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Load configuration from this file instead of ~/.config/lstack and ./.lstack")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
	rootCmd.AddCommand(newInstallCmd())
	rootCmd.AddCommand(newUpCmd())
	rootCmd.AddCommand(newPortsCmd())
	rootCmd.AddCommand(newEndpointCmd())
}
