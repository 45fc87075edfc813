package cmd

import (
	"fmt"
	"sort"

	"lstack/internal/endpoint"
	"lstack/internal/tui"

	"github.com/spf13/cobra"
)

func newPortsCmd() *cobra.Command {
	var asEnv bool
	cmd := &cobra.Command{
		Use:   "ports",
		Short: "List the endpoint of every emulated service",
		Long: `Reads the service ports from the installed emulator's configuration and
prints the URL each service is reachable at once the emulator runs.
With --env the output is a list of TEST_<SERVICE>_URL assignments suitable
for eval or an .env file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, _, err := staticResolver()
			if err != nil {
				return err
			}
			urls, err := resolver.All()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asEnv {
				names := make([]string, 0, len(urls))
				for svc := range urls {
					names = append(names, svc)
				}
				sort.Strings(names)
				for _, svc := range names {
					fmt.Fprintf(out, "%s=%s\n", endpoint.EnvName(svc), urls[svc])
				}
				return nil
			}
			fmt.Fprintln(out, tui.RenderEndpointTable(tui.SortedEndpoints(urls), 0, -1))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asEnv, "env", false, "Print TEST_<SERVICE>_URL=<url> lines")
	return cmd
}
