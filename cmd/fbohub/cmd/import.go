package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/propilot/fbohub"
	"github.com/propilot/fbohub/pkg/constants"
)

// newImportCommand applies the baseline dataset to the local store.
func newImportCommand() *cobra.Command {
	var (
		force bool
		dir   string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load the bundled baseline dataset into the local store",
		Long: `Import parses the baseline facility dataset and reconciles it into the
local store. Records you have edited locally keep their changes; the
import only fills gaps and adds facilities you do not have yet.

Datasets carry a version number. An import is skipped when the store
already holds the same or a newer version, unless --force is given.`,
		Example: `  # Apply the embedded baseline
  fbohub import

  # Re-apply even if the stored version is current
  fbohub import --force

  # Import a dataset bundle from disk
  fbohub import --dir ./dataset`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), constants.CommandTimeout)
			defer cancel()

			app, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer app.close(ctx)

			opts := []fbohub.ImportOption{}
			if force {
				opts = append(opts, fbohub.WithImportForce())
			}
			if dir != "" {
				opts = append(opts, fbohub.WithImportDir(dir))
			}

			result, err := app.manager.ImportBaseline(ctx, opts...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !result.Ran {
				fmt.Fprintf(out, "Dataset version %d already applied; use --force to re-import\n", result.Version)
				return nil
			}
			fmt.Fprintf(out, "Imported %d records across %d locations (dataset version %d)\n",
				result.Imported, result.Locations, result.Version)
			if result.Skipped > 0 {
				fmt.Fprintf(out, "Skipped %d malformed rows\n", result.Skipped)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "re-import even when the dataset version is already applied")
	cmd.Flags().StringVar(&dir, "dir", "", "import a dataset bundle from a directory instead of the embedded baseline")

	return cmd
}
