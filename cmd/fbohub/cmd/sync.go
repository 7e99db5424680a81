package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/propilot/fbohub"
	"github.com/propilot/fbohub/pkg/constants"
)

// newSyncCommand reconciles one or all locations against the remote store.
func newSyncCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "sync [location-code]",
		Short: "Reconcile local records with the shared remote store",
		Long: `Sync fetches the remote records for a location, merges them into the
local store, and pushes queued local edits back out. Without a remote
configured the local tier is still deduplicated and re-persisted.`,
		Example: `  # Sync a single location
  fbohub sync KSFO --remote-uri mongodb://localhost:27017

  # Sync every location in the store
  fbohub sync --all`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && len(args) == 0 {
				return errors.New("provide a location code or --all")
			}
			if all && len(args) > 0 {
				return errors.New("--all does not take a location code")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), constants.CommandTimeout)
			defer cancel()

			app, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer app.close(ctx)

			out := cmd.OutOrStdout()
			if all {
				results, err := app.manager.SyncAll(ctx)
				if err != nil {
					return err
				}
				if len(results) == 0 {
					fmt.Fprintln(out, "No locations in the store; run `fbohub import` first")
					return nil
				}
				for i := range results {
					printSyncResult(out, &results[i])
				}
				return nil
			}

			result, err := app.manager.SyncLocation(ctx, args[0])
			if err != nil {
				return err
			}
			printSyncResult(out, result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "sync every location present in the local store")

	return cmd
}

func printSyncResult(w io.Writer, result *fbohub.SyncResult) {
	fmt.Fprintf(w, "%s: merged %d, added %d, pushed %d", result.LocationCode,
		result.Merged, result.Added, result.Pushed)
	if result.PushFailed > 0 {
		fmt.Fprintf(w, ", push failed %d", result.PushFailed)
	}
	if result.RemoteErr != nil {
		fmt.Fprintf(w, " (remote unavailable: %v)", result.RemoteErr)
	}
	fmt.Fprintln(w)
}
