package cmd

import (
	"fmt"

	"lstack/pkg/logging"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

// For mocking in tests
var clipboardWriteAll = clipboard.WriteAll

func newEndpointCmd() *cobra.Command {
	var copyToClipboard bool
	cmd := &cobra.Command{
		Use:   "endpoint <service>",
		Short: "Print the URL of one emulated service",
		Long: `Prints the base URL of a single service, e.g. "lstack endpoint s3".
S3 is addressed through a wildcard host name that resolves to the loopback
address, so bucket names can be used as virtual hosts.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, _, err := staticResolver()
			if err != nil {
				return err
			}
			url, err := resolver.Resolve(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)

			if copyToClipboard {
				if err := clipboardWriteAll(url); err != nil {
					return fmt.Errorf("failed to copy to clipboard: %w", err)
				}
				logging.Info("CLI", "Copied %s to the clipboard", url)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&copyToClipboard, "copy", false, "Also copy the URL to the clipboard")
	return cmd
}
