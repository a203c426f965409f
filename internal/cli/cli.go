// Copyright (c) 2026 Massimiliano Mantione
// radicle-graphql - GraphQL API over the Radicle registry schema
// This source code is licensed under the MIT license found in the LICENSE file.

// Package cli sets up the command-line interface for the radicle-graphql
// server using the Cobra library: the root command, the serve, migrate,
// maintain and version subcommands, and their flags.
package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/massimiliano-mantione/radicle-graphql/internal/api"
	"github.com/massimiliano-mantione/radicle-graphql/internal/config"
	"github.com/massimiliano-mantione/radicle-graphql/internal/db"
	"github.com/massimiliano-mantione/radicle-graphql/internal/graph"
	"github.com/massimiliano-mantione/radicle-graphql/internal/logging"
	"github.com/spf13/cobra"
)

var (
	version   = "dev" // set by the linker
	gitCommit = "dev" // set at build time with the short commit SHA
	buildDate = ""    // set at build time (RFC3339)
)

var cfgFile string
var appConfig config.Config

// SetVersion lets the entrypoint pass the build-time version through.
func SetVersion(v, commit, date string) {
	if v != "" {
		version = v
	}
	if commit != "" {
		gitCommit = commit
	}
	if date != "" {
		buildDate = date
	}
}

// Execute builds the command tree and runs it.
func Execute() error {
	return NewRootCmd().Execute()
}

// setup loads the configuration and initializes logging and storage. It
// runs as PreRunE of every command that touches the database.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	appConfig, err = config.Load(cmd, &cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logging.SetLevel(appConfig.LogLevel)

	if !db.IsInitialized() {
		if err := db.InitDB(appConfig.DB.Type, appConfig.DB.DSN); err != nil {
			return fmt.Errorf("initializing database: %w", err)
		}
	}
	return nil
}

// NewRootCmd constructs the root command and its subcommands.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "radicle-graphql",
		Short:         "GraphQL API server over the Radicle registry schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
	cmd.PersistentFlags().String("db.type", "", "database engine (sqlite, postgres, mysql)")
	cmd.PersistentFlags().String("db.dsn", "", "database DSN")
	cmd.PersistentFlags().String("listen", "", "listen address for the GraphQL endpoint")
	cmd.PersistentFlags().String("log_level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newMaintainCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "serve",
		Short:   "Run the GraphQL HTTP server",
		PreRunE: setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := api.NewServer(db.DefaultStore(), graph.NewSchema(), nil)

			httpSrv := &http.Server{
				Addr:              appConfig.Listen,
				Handler:           server.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logging.Infof("serving GraphQL on %s", appConfig.Listen)
				errCh <- httpSrv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			logging.Infof("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return httpSrv.Shutdown(shutdownCtx)
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations and exit",
		// setup opens the store, which applies migrations on the way in.
		PreRunE: setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.Infof("migrations up to date for %s", appConfig.DB.Type)
			return nil
		},
	}
}

func newMaintainCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "maintain",
		Short:   "Run engine-specific database housekeeping",
		PreRunE: setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := db.DefaultStore().Maintain(cmd.Context()); err != nil {
				return fmt.Errorf("maintenance failed: %w", err)
			}
			logging.Infof("maintenance completed for %s", appConfig.DB.Type)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "radicle-graphql %s (commit %s", version, gitCommit)
			if buildDate != "" {
				fmt.Fprintf(cmd.OutOrStdout(), ", built %s", buildDate)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ")")
		},
	}
}
