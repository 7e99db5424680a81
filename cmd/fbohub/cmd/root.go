// Package cmd implements the fbohub command tree.
package cmd

import (
	"context"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/propilot/fbohub/pkg/constants"
	"github.com/propilot/fbohub/pkg/logging"
)

// BuildInfo carries version metadata stamped at build time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Execute builds the command tree and runs it with the given context.
func Execute(ctx context.Context, info BuildInfo) error {
	return newRootCommand(info).ExecuteContext(ctx)
}

func newRootCommand(info BuildInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fbohub",
		Short: "Reconcile FBO facility records across baseline, local, and remote tiers",
		Long: `fbohub keeps a local collection of FBO (fixed-base operator) facility
records reconciled against the bundled baseline dataset and a shared
remote store. Local edits always survive; near-duplicate names collapse
into one record per facility.

Configuration comes from flags, FBOHUB_* environment variables, and an
optional .env file, in that order of precedence.`,
		Example: `  # Load the bundled baseline into the local store
  fbohub import

  # Show the collection for an airport
  fbohub list KSFO

  # Reconcile one location against the remote store
  fbohub sync KSFO --remote-uri mongodb://localhost:27017

  # Serve the HTTP API
  fbohub serve --port 8080`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("store", constants.DefaultStoreFile, "SQLite store path (:memory: for ephemeral)")
	flags.String("remote-uri", "", "MongoDB URI of the shared remote store")
	flags.String("remote-db", "fbohub", "MongoDB database name")
	flags.String("device", "", "Label stamped on records edited from this device")
	flags.String("log-level", "", "Log level (trace, debug, info, warn, error)")
	flags.StringP("output", "o", "", "Output format (table, json, yaml, wide)")

	cmd.AddCommand(
		newImportCommand(),
		newSyncCommand(),
		newListCommand(),
		newServeCommand(),
		newVersionCommand(info),
	)
	return cmd
}

// initConfig wires flags, FBOHUB_* environment variables, and .env into
// viper. Flags win over environment, environment over .env.
func initConfig(cmd *cobra.Command) error {
	// A missing .env is fine.
	_ = godotenv.Load()

	viper.SetEnvPrefix("FBOHUB")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if err := viper.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
		return err
	}
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	if level := viper.GetString("log-level"); level != "" {
		cfg := logging.DefaultConfig()
		cfg.Level = level
		logging.Configure(cfg)
	}
	return nil
}
