package main

import (
	"context"
	"fmt"

	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the CV registry server",
		Long: `Start an HTTP server that stores CV snapshots in the configured storage and exports them.
Writes require a bearer token when JWT_SECRET is set.`,
		Args: cobra.NoArgs,
		RunE: runApp(opts, func(_ context.Context, cmd *cobra.Command, a *app, _ []string) error {
			if a.cfg.Storage == config.StorageRemote {
				return fmt.Errorf("the registry cannot use remote storage")
			}
			jwtConfig, err := config.OptionalJWTConfig()
			if err != nil {
				return fmt.Errorf("failed to create JWT config: %w", err)
			}
			if !cmd.Flags().Changed("port") {
				port = a.cfg.Port
			}

			srv, err := server.New(server.Config{
				Port:     port,
				Adapter:  a.adapter,
				Exporter: newExporter(a.cfg, a.log),
				JWT:      jwtConfig,
				Log:      a.log,
			})
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}
			return srv.Start()
		}),
	}
	cmd.Flags().IntVar(&port, "port", 8080, "Port to listen on (default from config)")
	return cmd
}
