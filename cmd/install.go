package cmd

import (
	"fmt"

	"lstack/internal/app"
	"lstack/pkg/fixture"

	"github.com/spf13/cobra"
)

func newInstallCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Fetch and build the emulator unless it is already installed",
		Long: `Clones the emulator's repository into the install directory and runs its
build command. Nothing happens when the install marker file is already
present, unless --force is given, in which case the install directory is
wiped and the emulator is installed from scratch.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(configPath)
			if err != nil {
				return err
			}
			f, err := fixture.New(fixture.WithConfig(cfg))
			if err != nil {
				return err
			}
			defer f.Close()

			if force {
				err = f.Reinstall(cmd.Context())
			} else {
				err = f.Install(cmd.Context())
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Emulator installed in %s\n", cfg.Install.Dir)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Reinstall even if the emulator is already installed")
	return cmd
}
