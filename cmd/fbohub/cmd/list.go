package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/propilot/fbohub/internal/cmd/output"
	"github.com/propilot/fbohub/pkg/constants"
)

// newListCommand prints the stored records for a location.
func newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <location-code>",
		Short: "Show the stored facility records for a location",
		Example: `  # Human-readable table
  fbohub list KSFO

  # Machine-readable output
  fbohub list KSFO -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			explicit := viper.GetString("output")
			if _, err := output.ParseFormat(explicit); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), constants.CommandTimeout)
			defer cancel()

			app, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer app.close(ctx)

			records, err := app.manager.Records(ctx, args[0])
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No records for %s; run `fbohub import` or `fbohub sync %s`\n",
					args[0], args[0])
				return nil
			}

			return output.FormatRecords(cmd.OutOrStdout(), records, output.DetectFormat(explicit))
		},
	}

	return cmd
}
